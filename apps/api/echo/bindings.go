package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// validatable is a draft that cleans then validates itself.
type validatable interface {
	Validate(validate *validator.Validate) error
}

// bindDraft binds the request body to data and validates it.
func (api *schoolApi) bindDraft(ctx echo.Context, data validatable, name string) error {
	if err := ctx.Bind(data); err != nil {
		return errors.Wrapf(err, "binding to %s", name)
	}
	return data.Validate(api.app.Validate)
}

// paramID parses the integer path parameter name; anything else is a 404.
func paramID(ctx echo.Context, name ...string) (int, error) {
	key := "id"
	if len(name) > 0 {
		key = name[0]
	}
	id, err := strconv.Atoi(ctx.Param(key))
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}

// bindQuery binds query parameters to filter and reports whether they parsed.
func bindQuery(ctx echo.Context, filter interface{}) bool {
	return ctx.Bind(filter) == nil
}

func noContent(ctx echo.Context, err error) error {
	if err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
