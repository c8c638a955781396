package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/directory"
	"github.com/trezcool/shule/core/session"
)

func registerDirectoryAPI(g *echo.Group, api *schoolApi) {
	sg := g.Group("/students")
	sg.GET("", api.listStudents, capabilityMiddleware(session.CapStudents))
	sg.POST("", api.addStudent, capabilityMiddleware(session.CapStudents))
	sg.DELETE("/:id", api.removeStudent, capabilityMiddleware(session.CapStudents))
	sg.GET("/:id/fees", api.studentFees, capabilityMiddleware(session.CapFees))

	stg := g.Group("/staff", capabilityMiddleware(session.CapStaff))
	stg.GET("", api.listStaff)
	stg.POST("", api.addStaff)
	stg.DELETE("/:id", api.removeStaff)

	cg := g.Group("/classes", capabilityMiddleware(session.CapClasses))
	cg.GET("", api.listClasses)
	cg.POST("", api.addClass)
	cg.DELETE("/:id", api.removeClass)
}

func (api *schoolApi) directoryFilter(ctx echo.Context) (directory.QueryFilter, bool) {
	var filter directory.QueryFilter
	if !bindQuery(ctx, &filter) {
		return filter, false
	}
	filter.Clean()
	return filter, true
}

func (api *schoolApi) listStudents(ctx echo.Context) error {
	filter, ok := api.directoryFilter(ctx)
	if !ok {
		return ctx.JSON(http.StatusOK, []directory.Student{})
	}
	students, err := api.app.Directory.ListStudents(filter)
	if err != nil {
		return errors.Wrap(err, "listing students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *schoolApi) addStudent(ctx echo.Context) error {
	var data directory.NewStudent
	if err := api.bindDraft(ctx, &data, "NewStudent"); err != nil {
		return err
	}
	s, err := api.app.Directory.AddStudent(data)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *schoolApi) removeStudent(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	return noContent(ctx, api.app.RemoveStudent(id))
}

func (api *schoolApi) listStaff(ctx echo.Context) error {
	filter, ok := api.directoryFilter(ctx)
	if !ok {
		return ctx.JSON(http.StatusOK, []directory.Staff{})
	}
	staff, err := api.app.Directory.ListStaff(filter)
	if err != nil {
		return errors.Wrap(err, "listing staff")
	}
	return ctx.JSON(http.StatusOK, staff)
}

func (api *schoolApi) addStaff(ctx echo.Context) error {
	var data directory.NewStaff
	if err := api.bindDraft(ctx, &data, "NewStaff"); err != nil {
		return err
	}
	s, err := api.app.Directory.AddStaff(data)
	if err != nil {
		return errors.Wrap(err, "adding staff")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *schoolApi) removeStaff(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	return noContent(ctx, api.app.RemoveStaff(id))
}

func (api *schoolApi) listClasses(ctx echo.Context) error {
	filter, ok := api.directoryFilter(ctx)
	if !ok {
		return ctx.JSON(http.StatusOK, []directory.Class{})
	}
	classes, err := api.app.Directory.ListClasses(filter)
	if err != nil {
		return errors.Wrap(err, "listing classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *schoolApi) addClass(ctx echo.Context) error {
	var data directory.NewClass
	if err := api.bindDraft(ctx, &data, "NewClass"); err != nil {
		return err
	}
	c, err := api.app.Directory.AddClass(data)
	if err != nil {
		return errors.Wrap(err, "adding class")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *schoolApi) removeClass(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	return noContent(ctx, api.app.Directory.RemoveClass(id))
}
