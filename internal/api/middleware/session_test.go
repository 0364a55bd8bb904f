package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/PierreClouet/WorkEat/internal/core/domain"
	"github.com/PierreClouet/WorkEat/internal/core/ports"
)

type fakeSessionStore struct {
	sessions map[string]ports.SessionIdentity
}

func (s *fakeSessionStore) Create(_ context.Context, _ ports.SessionIdentity) (string, error) {
	return "", nil
}

func (s *fakeSessionStore) Resolve(_ context.Context, token string) (ports.SessionIdentity, error) {
	identity, ok := s.sessions[token]
	if !ok {
		return ports.SessionIdentity{}, domain.ErrNotLoggedIn
	}
	return identity, nil
}

func (s *fakeSessionStore) Destroy(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func TestSession_ValidToken(t *testing.T) {
	e := echo.New()
	store := &fakeSessionStore{sessions: map[string]ports.SessionIdentity{
		"good": {AccountID: "id1", Username: "a@x.com", IsAdmin: true},
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Session(store)
	handler := mw(func(c echo.Context) error {
		called = true
		identity, ok := c.Get(ctxIdentity).(ports.SessionIdentity)
		if !ok || identity.Username != "a@x.com" {
			t.Fatalf("identity not injected: %+v", c.Get(ctxIdentity))
		}
		if c.Get(ctxSessionToken) != "good" {
			t.Fatalf("token not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestSession_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(&fakeSessionStore{sessions: map[string]ports.SessionIdentity{}})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSession_InvalidScheme(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(&fakeSessionStore{sessions: map[string]ports.SessionIdentity{}})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSession_RevokedSession(t *testing.T) {
	e := echo.New()
	store := &fakeSessionStore{sessions: map[string]ports.SessionIdentity{
		"good": {AccountID: "id1", Username: "a@x.com"},
	}}
	_ = store.Destroy(context.Background(), "good")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(store)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("revoked session must not authorize")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOptionalSession_NoToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := OptionalSession(&fakeSessionStore{sessions: map[string]ports.SessionIdentity{}})
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(ctxIdentity) != nil {
			t.Fatalf("no identity expected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestOptionalSession_ValidToken(t *testing.T) {
	e := echo.New()
	store := &fakeSessionStore{sessions: map[string]ports.SessionIdentity{
		"good": {AccountID: "id1", Username: "a@x.com"},
	}}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := OptionalSession(store)
	handler := mw(func(c echo.Context) error {
		identity, ok := c.Get(ctxIdentity).(ports.SessionIdentity)
		if !ok || identity.AccountID != "id1" {
			t.Fatalf("identity not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
