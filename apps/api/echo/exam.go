package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/exam"
	"github.com/trezcool/shule/core/session"
)

func registerExamAPI(g *echo.Group, api *schoolApi) {
	eg := g.Group("/exams", capabilityMiddleware(session.CapExams))
	eg.GET("", api.listExams)
	eg.POST("", api.addExam)
	eg.DELETE("/:id", api.removeExam)
	eg.GET("/:id/results", api.examResults)
	eg.POST("/:id/results", api.recordResults)
}

func (api *schoolApi) listExams(ctx echo.Context) error {
	var filter exam.QueryFilter
	if !bindQuery(ctx, &filter) {
		return ctx.JSON(http.StatusOK, []exam.Exam{})
	}
	exams, err := api.app.Exams.List(filter)
	if err != nil {
		return errors.Wrap(err, "listing exams")
	}
	return ctx.JSON(http.StatusOK, exams)
}

func (api *schoolApi) addExam(ctx echo.Context) error {
	var data exam.NewExam
	if err := api.bindDraft(ctx, &data, "NewExam"); err != nil {
		return err
	}
	e, err := api.app.Exams.Add(data)
	if err != nil {
		return errors.Wrap(err, "adding exam")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *schoolApi) removeExam(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	return noContent(ctx, api.app.Exams.Remove(id))
}

func (api *schoolApi) examResults(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if _, err := api.app.Exams.Get(id); err != nil {
		return err
	}
	results, err := api.app.Exams.Results(id, 0)
	if err != nil {
		return errors.Wrap(err, "listing results")
	}
	return ctx.JSON(http.StatusOK, results)
}

func (api *schoolApi) recordResults(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data exam.NewResults
	if err := api.bindDraft(ctx, &data, "NewResults"); err != nil {
		return err
	}
	results, err := api.app.RecordResults(id, data.Results)
	if err != nil {
		return errors.Wrap(err, "recording results")
	}
	return ctx.JSON(http.StatusCreated, results)
}
