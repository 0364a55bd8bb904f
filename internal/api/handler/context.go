package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/PierreClouet/WorkEat/internal/core/ports"
)

// Context keys populated by the session middleware.
const (
	CtxIdentity     = "identity"
	CtxSessionToken = "session_token"
)

// ctxIdentity extracts the session identity injected by the session
// middleware. Its absence on a protected route means the middleware did not
// run — fail fast with 401 before any service call.
func ctxIdentity(c echo.Context) (ports.SessionIdentity, error) {
	identity, ok := c.Get(CtxIdentity).(ports.SessionIdentity)
	if !ok || identity.AccountID == "" {
		return ports.SessionIdentity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return identity, nil
}

// ctxSessionToken returns the raw session token the middleware resolved, or
// an empty string when the request carried none.
func ctxSessionToken(c echo.Context) string {
	token, _ := c.Get(CtxSessionToken).(string)
	return token
}
