package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentledger/deposit-system/internal/api/metrics"
	"github.com/rentledger/deposit-system/internal/core/ports"
)

// SessionCookieName is the cookie carrying the sealed session token.
const SessionCookieName = "deposit_session"

// Session resolves the caller's identity from the session cookie and injects
// it into the request context. Requests without a resolvable session are
// rejected with 403, matching the API's unauthorized contract.
func Session(manager ports.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				metrics.AuthFailuresTotal.WithLabelValues("session").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Unauthorized")
			}

			identity, err := manager.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("session").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Unauthorized")
			}

			c.Set("user_id", identity.UserID)
			c.Set("email", identity.Email)
			c.Set("role", identity.Role)

			return next(c)
		}
	}
}

// NewSessionCookie builds the cookie set on a successful login.
func NewSessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie builds the clearing cookie set on logout.
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
