package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/activity"
	"github.com/trezcool/shule/core/session"
)

func registerActivityAPI(g *echo.Group, api *schoolApi) {
	staff := roleMiddleware(session.Teacher)

	ag := g.Group("/activities", capabilityMiddleware(session.CapActivities))
	ag.GET("", api.listActivities)
	ag.POST("", api.addActivity, staff)
	ag.GET("/:id", api.getActivity)
	ag.DELETE("/:id", api.removeActivity, staff)
	ag.GET("/:id/participants", api.listParticipants)
	ag.POST("/:id/participants", api.registerParticipant, staff)
	ag.DELETE("/:id/participants/:pid", api.removeParticipant, staff)
}

func (api *schoolApi) listActivities(ctx echo.Context) error {
	var filter activity.QueryFilter
	if !bindQuery(ctx, &filter) {
		return ctx.JSON(http.StatusOK, []activity.Activity{})
	}
	activities, err := api.app.Activities.List(filter)
	if err != nil {
		return errors.Wrap(err, "listing activities")
	}
	return ctx.JSON(http.StatusOK, activities)
}

func (api *schoolApi) addActivity(ctx echo.Context) error {
	var data activity.NewActivity
	if err := api.bindDraft(ctx, &data, "NewActivity"); err != nil {
		return err
	}
	a, err := api.app.AddActivity(data)
	if err != nil {
		return errors.Wrap(err, "adding activity")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *schoolApi) getActivity(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	a, err := api.app.Activities.Get(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *schoolApi) removeActivity(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	return noContent(ctx, api.app.Activities.Remove(id))
}

func (api *schoolApi) listParticipants(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if _, err := api.app.Activities.Get(id); err != nil {
		return err
	}
	participants, err := api.app.Activities.Participants(id)
	if err != nil {
		return errors.Wrap(err, "listing participants")
	}
	return ctx.JSON(http.StatusOK, participants)
}

func (api *schoolApi) registerParticipant(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data activity.NewParticipant
	if err := api.bindDraft(ctx, &data, "NewParticipant"); err != nil {
		return err
	}
	p, err := api.app.RegisterParticipant(id, data)
	if err != nil {
		return errors.Wrap(err, "registering participant")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *schoolApi) removeParticipant(ctx echo.Context) error {
	pid, err := paramID(ctx, "pid")
	if err != nil {
		return err
	}
	return noContent(ctx, api.app.Activities.RemoveParticipant(pid))
}
