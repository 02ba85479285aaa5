package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentledger/deposit-system/internal/api/middleware"
	"github.com/rentledger/deposit-system/internal/core/domain"
	"github.com/rentledger/deposit-system/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password, role string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	return s.registerFn(ctx, email, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubSessions struct {
	sessions map[string]ports.Identity
	issued   int
}

func newStubSessions() *stubSessions {
	return &stubSessions{sessions: make(map[string]ports.Identity)}
}

func (m *stubSessions) Issue(_ context.Context, identity ports.Identity) (string, error) {
	m.issued++
	token := "token-" + identity.UserID
	m.sessions[token] = identity
	return token, nil
}

func (m *stubSessions) Resolve(_ context.Context, token string) (*ports.Identity, error) {
	identity, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &identity, nil
}

func (m *stubSessions) Revoke(_ context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func newTestContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newAuthTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newAuthTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password, role string) (*domain.User, error) {
			if email != "alice@example.com" || role != domain.RoleTenant {
				t.Fatalf("unexpected args: %s %s", email, role)
			}
			return &domain.User{ID: "u1", Email: email, Role: role}, nil
		},
	}
	h := NewAuthHandler(stub, newStubSessions(), time.Hour)

	c, rec := newTestContext(e, http.MethodPost, "/api/register", `{"email":"alice@example.com","password":"secret","role":"tenant"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Registration successful" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_Register_InvalidInput(t *testing.T) {
	e := newAuthTestEcho()
	h := NewAuthHandler(&stubAuthService{}, newStubSessions(), time.Hour)

	cases := []string{
		`{"email":"not-an-email","password":"secret","role":"tenant"}`,
		`{"email":"alice@example.com","password":"secret","role":"admin"}`,
		`{"email":"alice@example.com","role":"tenant"}`,
		`{}`,
	}
	for _, body := range cases {
		c, _ := newTestContext(e, http.MethodPost, "/api/register", body)
		err := h.Register(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400 HTTPError, got %v", body, err)
		}
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	e := newAuthTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password, role string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, newStubSessions(), time.Hour)

	c, _ := newTestContext(e, http.MethodPost, "/api/register", `{"email":"bob@example.com","password":"pw","role":"tenant"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	e := newAuthTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return &domain.User{ID: "u1", Email: email, Role: domain.RoleTenant}, nil
		},
	}
	sessions := newStubSessions()
	h := NewAuthHandler(stub, sessions, time.Hour)

	c, rec := newTestContext(e, http.MethodPost, "/api/login", `{"email":"alice@example.com","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if sessions.issued != 1 {
		t.Fatalf("expected one session issued, got %d", sessions.issued)
	}

	res := rec.Result()
	var sessionCookie *http.Cookie
	for _, cookie := range res.Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatalf("expected session cookie to be set")
	}
	if !sessionCookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newAuthTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, newStubSessions(), time.Hour)

	c, _ := newTestContext(e, http.MethodPost, "/api/login", `{"email":"alice@example.com","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout_RevokesSession(t *testing.T) {
	e := newAuthTestEcho()
	sessions := newStubSessions()
	token, _ := sessions.Issue(context.Background(), ports.Identity{UserID: "u1", Email: "t@x.com", Role: domain.RoleTenant})
	h := NewAuthHandler(&stubAuthService{}, sessions, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, err := sessions.Resolve(context.Background(), token); err == nil {
		t.Fatalf("expected session to be revoked")
	}
}
