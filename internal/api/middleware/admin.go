package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/PierreClouet/WorkEat/internal/core/ports"
)

// RequireAdmin gates a route on the session identity's admin flag. Must run
// after Session.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(ctxIdentity).(ports.SessionIdentity)
			if !ok || !identity.IsAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
