package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rentledger/deposit-system/internal/core/domain"
	"github.com/rentledger/deposit-system/internal/core/ports"
)

type stubSessionManager struct {
	sessions map[string]ports.Identity
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{sessions: make(map[string]ports.Identity)}
}

func (m *stubSessionManager) Issue(_ context.Context, identity ports.Identity) (string, error) {
	token := "token-" + identity.UserID
	m.sessions[token] = identity
	return token, nil
}

func (m *stubSessionManager) Resolve(_ context.Context, token string) (*ports.Identity, error) {
	identity, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &identity, nil
}

func (m *stubSessionManager) Revoke(_ context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func TestSession_ValidCookie(t *testing.T) {
	e := echo.New()
	manager := newStubSessionManager()
	token, _ := manager.Issue(context.Background(), ports.Identity{UserID: "u1", Email: "t@x.com", Role: "tenant"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Session(manager)(func(c echo.Context) error {
		called = true
		if c.Get("user_id") != "u1" {
			t.Fatalf("user_id not set")
		}
		if c.Get("email") != "t@x.com" {
			t.Fatalf("email not set")
		}
		if c.Get("role") != "tenant" {
			t.Fatalf("role not set")
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

func TestSession_MissingCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(newStubSessionManager())(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", he.Code)
	}
}

func TestSession_UnknownToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(newStubSessionManager())(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", he.Code)
	}
}
