package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/session"
	"github.com/trezcool/shule/core/transport"
)

func registerTransportAPI(g *echo.Group, api *schoolApi) {
	tg := g.Group("/transport")

	mg := tg.Group("", capabilityMiddleware(session.CapTransport))
	mg.GET("/vehicles", api.listVehicles)
	mg.POST("/vehicles", api.addVehicle)
	mg.DELETE("/vehicles/:id", api.removeVehicle)
	mg.GET("/vehicles/:id/stops", api.listStops)
	mg.POST("/stops", api.addStop)
	mg.DELETE("/stops/:id", api.removeStop)
	mg.GET("/allocations", api.listAllocations)
	mg.POST("/allocations", api.allocate)
	mg.DELETE("/allocations/:id", api.removeAllocation)

	trg := tg.Group("", capabilityMiddleware(session.CapTransportTracking))
	trg.GET("/tracking", api.tracking)
	trg.GET("/journeys", api.journeyLogs)
	trg.POST("/journeys", api.startJourney, roleMiddleware(session.Teacher))
	trg.POST("/journeys/:id/end", api.endJourney, roleMiddleware(session.Teacher))
}

func (api *schoolApi) listVehicles(ctx echo.Context) error {
	vehicles, err := api.app.Transport.FilterVehicles(ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "listing vehicles")
	}
	return ctx.JSON(http.StatusOK, vehicles)
}

func (api *schoolApi) addVehicle(ctx echo.Context) error {
	var data transport.NewVehicle
	if err := api.bindDraft(ctx, &data, "NewVehicle"); err != nil {
		return err
	}
	v, err := api.app.Transport.AddVehicle(data)
	if err != nil {
		return errors.Wrap(err, "adding vehicle")
	}
	return ctx.JSON(http.StatusCreated, v)
}

func (api *schoolApi) removeVehicle(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	return noContent(ctx, api.app.Transport.RemoveVehicle(id))
}

func (api *schoolApi) listStops(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if _, err := api.app.Transport.GetVehicle(id); err != nil {
		return err
	}
	stops, err := api.app.Transport.ListStops(id)
	if err != nil {
		return errors.Wrap(err, "listing stops")
	}
	return ctx.JSON(http.StatusOK, stops)
}

func (api *schoolApi) addStop(ctx echo.Context) error {
	var data transport.NewStop
	if err := api.bindDraft(ctx, &data, "NewStop"); err != nil {
		return err
	}
	s, err := api.app.Transport.AddStop(data)
	if err != nil {
		return errors.Wrap(err, "adding stop")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *schoolApi) removeStop(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	return noContent(ctx, api.app.Transport.RemoveStop(id))
}

func (api *schoolApi) listAllocations(ctx echo.Context) error {
	var filter transport.AllocationFilter
	if !bindQuery(ctx, &filter) {
		return ctx.JSON(http.StatusOK, []transport.Allocation{})
	}
	allocs, err := api.app.Transport.ListAllocations(filter)
	if err != nil {
		return errors.Wrap(err, "listing allocations")
	}
	return ctx.JSON(http.StatusOK, allocs)
}

func (api *schoolApi) allocate(ctx echo.Context) error {
	var data transport.NewAllocation
	if err := api.bindDraft(ctx, &data, "NewAllocation"); err != nil {
		return err
	}
	a, err := api.app.AllocateTransport(data)
	if err != nil {
		return errors.Wrap(err, "allocating transport")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *schoolApi) removeAllocation(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	return noContent(ctx, api.app.Transport.RemoveAllocation(id))
}

func (api *schoolApi) tracking(ctx echo.Context) error {
	tracked, err := api.app.Transport.Tracking(ctx.QueryParam("search"))
	if err != nil {
		return errors.Wrap(err, "tracking vehicles")
	}
	return ctx.JSON(http.StatusOK, tracked)
}

func (api *schoolApi) journeyLogs(ctx echo.Context) error {
	var filter transport.JourneyFilter
	if !bindQuery(ctx, &filter) {
		return ctx.JSON(http.StatusOK, []transport.JourneyLog{})
	}
	logs, err := api.app.Transport.JourneyLogs(filter)
	if err != nil {
		return errors.Wrap(err, "listing journeys")
	}
	return ctx.JSON(http.StatusOK, logs)
}

func (api *schoolApi) startJourney(ctx echo.Context) error {
	var data transport.NewJourney
	if err := api.bindDraft(ctx, &data, "NewJourney"); err != nil {
		return err
	}
	j, err := api.app.Transport.StartJourney(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "starting journey")
	}
	return ctx.JSON(http.StatusCreated, j)
}

func (api *schoolApi) endJourney(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data transport.JourneyEnd
	if err := api.bindDraft(ctx, &data, "JourneyEnd"); err != nil {
		return err
	}
	j, err := api.app.Transport.EndJourney(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "ending journey")
	}
	return ctx.JSON(http.StatusOK, j)
}
