package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/fee"
	"github.com/trezcool/shule/core/session"
)

func registerFeeAPI(g *echo.Group, api *schoolApi) {
	fg := g.Group("/fees", capabilityMiddleware(session.CapFees))
	fg.GET("", api.listFees)
	fg.POST("", api.addFee)
	fg.DELETE("/:id", api.removeFee)
	fg.POST("/:id/payments", api.collectFee)
}

func (api *schoolApi) listFees(ctx echo.Context) error {
	var filter fee.QueryFilter
	if !bindQuery(ctx, &filter) {
		return ctx.JSON(http.StatusOK, []fee.Fee{})
	}
	fees, err := api.app.Fees.List(filter)
	if err != nil {
		return errors.Wrap(err, "listing fees")
	}
	return ctx.JSON(http.StatusOK, fees)
}

func (api *schoolApi) addFee(ctx echo.Context) error {
	var data fee.NewFee
	if err := api.bindDraft(ctx, &data, "NewFee"); err != nil {
		return err
	}
	f, err := api.app.Fees.Add(data)
	if err != nil {
		return errors.Wrap(err, "adding fee")
	}
	return ctx.JSON(http.StatusCreated, f)
}

func (api *schoolApi) removeFee(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	return noContent(ctx, api.app.Fees.Remove(id))
}

func (api *schoolApi) studentFees(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	payments, err := api.app.StudentFees(id)
	if err != nil {
		return errors.Wrap(err, "listing student fees")
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *schoolApi) collectFee(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data fee.NewPayment
	if err := api.bindDraft(ctx, &data, "NewPayment"); err != nil {
		return err
	}
	p, err := api.app.CollectFee(id, data)
	if err != nil {
		return errors.Wrap(err, "collecting fee")
	}
	return ctx.JSON(http.StatusCreated, p)
}
