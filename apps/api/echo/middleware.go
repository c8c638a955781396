package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/shule/core/session"
)

// capabilityMiddleware lets through callers whose role is granted c.
func capabilityMiddleware(c session.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := getContextIdentity(ctx)
			if err != nil {
				return err
			}
			if session.Can(id.Role, c) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// roleMiddleware lets through callers holding role (or admins).
func roleMiddleware(role session.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := getContextIdentity(ctx)
			if err != nil {
				return err
			}
			if session.HasPermission(id.Role, role) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
