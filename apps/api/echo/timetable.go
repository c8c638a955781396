package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/session"
	"github.com/trezcool/shule/core/timetable"
)

func registerTimetableAPI(g *echo.Group, api *schoolApi) {
	tg := g.Group("/timetable", capabilityMiddleware(session.CapTimetable))
	tg.GET("", api.listTimetables)
	tg.POST("", api.setTimetable)
	tg.DELETE("/:id", api.removeTimetable)
}

// listTimetables returns the one matching timetable when class, section and day are all given.
func (api *schoolApi) listTimetables(ctx echo.Context) error {
	var filter timetable.QueryFilter
	if !bindQuery(ctx, &filter) {
		return ctx.JSON(http.StatusOK, []timetable.Timetable{})
	}
	if filter.Class != "" && filter.Section != "" && filter.Day != "" {
		tt, err := api.app.Timetables.Find(filter.Class, filter.Section, filter.Day)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, tt)
	}

	tts, err := api.app.Timetables.List(filter)
	if err != nil {
		return errors.Wrap(err, "listing timetables")
	}
	return ctx.JSON(http.StatusOK, tts)
}

func (api *schoolApi) setTimetable(ctx echo.Context) error {
	var data timetable.NewTimetable
	if err := api.bindDraft(ctx, &data, "NewTimetable"); err != nil {
		return err
	}
	tt, err := api.app.Timetables.Set(data)
	if err != nil {
		return errors.Wrap(err, "setting timetable")
	}
	return ctx.JSON(http.StatusOK, tt)
}

func (api *schoolApi) removeTimetable(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	return noContent(ctx, api.app.Timetables.Remove(id))
}
