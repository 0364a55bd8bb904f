package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/PierreClouet/WorkEat/internal/core/domain"
	"github.com/PierreClouet/WorkEat/internal/core/ports"
)

// Context keys mirrored by the handler package.
const (
	ctxIdentity     = "identity"
	ctxSessionToken = "session_token"
)

// Session resolves the bearer token against the session store and injects
// the identity into context. Requests without a valid session are rejected
// with 401.
func Session(sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			identity, err := sessions.Resolve(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrNotLoggedIn) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
				}
				return err
			}

			c.Set(ctxIdentity, identity)
			c.Set(ctxSessionToken, token)
			return next(c)
		}
	}
}

// OptionalSession resolves a session when one is presented but lets the
// request through either way. Logout needs this: the handler itself reports
// "not logged in" with the contract's 400 rather than the middleware's 401.
func OptionalSession(sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return next(c)
			}

			identity, err := sessions.Resolve(c.Request().Context(), token)
			if err != nil {
				return next(c)
			}

			c.Set(ctxIdentity, identity)
			c.Set(ctxSessionToken, token)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
