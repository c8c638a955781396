package echoapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/session"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func registerReportAPI(g *echo.Group, api *schoolApi) {
	rg := g.Group("/reports", capabilityMiddleware(session.CapReports))
	rg.GET("/:kind", api.generateReport)
	rg.GET("/:kind/export", api.exportReport)
}

// ReportRequest are the query parameters of a report.
type ReportRequest struct {
	Class     string `query:"class"`
	Section   string `query:"section"`
	StudentID int    `query:"student"`
	Start     string `query:"start"`
	End       string `query:"end"`
}

func (api *schoolApi) report(ctx echo.Context) (report.Report, error) {
	kind, err := report.ParseKind(ctx.Param("kind"))
	if err != nil {
		return report.Report{}, err
	}
	var req ReportRequest
	if err := ctx.Bind(&req); err != nil {
		return report.Report{}, errors.Wrap(err, "binding to ReportRequest")
	}
	filters := report.Filters{Class: req.Class, Section: req.Section, StudentID: req.StudentID}
	return api.app.Reports.Generate(kind, filters, report.DateRange{Start: req.Start, End: req.End})
}

func (api *schoolApi) generateReport(ctx echo.Context) error {
	rep, err := api.report(ctx)
	if err != nil {
		return errors.Wrap(err, "generating report")
	}
	return ctx.JSON(http.StatusOK, rep)
}

func (api *schoolApi) exportReport(ctx echo.Context) error {
	rep, err := api.report(ctx)
	if err != nil {
		return errors.Wrap(err, "generating report")
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(rep, &buf); err != nil {
		return errors.Wrap(err, "exporting report")
	}
	filename := fmt.Sprintf("%s-report-%s.xlsx", rep.Type, ctx.QueryParam("end"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
