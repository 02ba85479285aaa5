package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentledger/deposit-system/internal/api/metrics"
	"github.com/rentledger/deposit-system/internal/api/middleware"
	"github.com/rentledger/deposit-system/internal/core/domain"
	"github.com/rentledger/deposit-system/internal/core/ports"
)

// AuthHandler handles registration, login, and logout. Login establishes a
// server-side session and hands the sealed token to the client as a cookie.
type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionManager
	sessionTTL  time.Duration
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionManager, sessionTTL time.Duration) *AuthHandler {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthHandler{authService: authService, sessions: sessions, sessionTTL: sessionTTL}
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=tenant landlord agent"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("invalid_input").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Role); err != nil {
		switch err {
		case domain.ErrUserExists:
			metrics.AuthFailuresTotal.WithLabelValues("duplicate_email").Inc()
		case domain.ErrInvalidRole:
			metrics.AuthFailuresTotal.WithLabelValues("invalid_role").Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Registration successful"})
}

// Login authenticates a user and establishes a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("invalid_credentials").Inc()
		return err
	}

	token, err := h.sessions.Issue(c.Request().Context(), ports.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return err
	}

	c.SetCookie(middleware.NewSessionCookie(token, h.sessionTTL))
	return c.JSON(http.StatusOK, messageResponse{Message: "Login successful"})
}

// Logout revokes the caller's session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if err := h.sessions.Revoke(c.Request().Context(), cookie.Value); err != nil && err != domain.ErrSessionNotFound {
			return err
		}
	}

	c.SetCookie(middleware.ExpiredSessionCookie())
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}
