package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/session"
)

func registerAttendanceAPI(g *echo.Group, api *schoolApi) {
	ag := g.Group("/attendance", capabilityMiddleware(session.CapAttendance))
	ag.GET("", api.attendanceSheet)
	ag.POST("", api.takeAttendance)
}

// SheetRequest selects the register of a class section on a day.
type SheetRequest struct {
	Date    string `query:"date" validate:"required,datetime=2006-01-02"`
	Class   string `query:"class" validate:"required"`
	Section string `query:"section" validate:"required"`
}

func (api *schoolApi) attendanceSheet(ctx echo.Context) error {
	var req SheetRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to SheetRequest")
	}
	req.Class = core.CleanString(req.Class)
	req.Section = strings.ToUpper(core.CleanString(req.Section))
	if err := api.app.Validate.Struct(req); err != nil {
		return err
	}

	sheet, err := api.app.AttendanceSheet(req.Date, req.Class, req.Section)
	if err != nil {
		return errors.Wrap(err, "getting attendance sheet")
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (api *schoolApi) takeAttendance(ctx echo.Context) error {
	var data attendance.Register
	if err := api.bindDraft(ctx, &data, "Register"); err != nil {
		return err
	}
	marks, err := api.app.TakeAttendance(data)
	if err != nil {
		return errors.Wrap(err, "taking attendance")
	}
	return ctx.JSON(http.StatusCreated, marks)
}
