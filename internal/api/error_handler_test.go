package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/PierreClouet/WorkEat/internal/core/domain"
)

func TestHTTPErrorHandler_Mappings(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "User not found"},
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound, "account not found"},
		{"duplicate account", domain.ErrAccountExists, http.StatusBadRequest, "already exists"},
		{"foreign account", domain.ErrNotAccountOwner, http.StatusForbidden, "Stop trying to delete another account"},
		{"not logged in", domain.ErrNotLoggedIn, http.StatusUnauthorized, "User not logged in."},
		{"wrapped domain error", errors.Join(errors.New("delete account"), domain.ErrNotAccountOwner), http.StatusForbidden, "Stop trying"},
		{"echo error", echo.NewHTTPError(http.StatusTeapot, "teapot"), http.StatusTeapot, "teapot"},
		{"unexpected error", errors.New("mongo: socket closed"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Fatalf("expected %q in body %q", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHTTPErrorHandler_NeverLeaksInternalDetail(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("dial tcp 10.0.0.5:27017: connection refused"), c)

	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Fatalf("internal detail leaked to client: %s", rec.Body.String())
	}
}
