package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentledger/deposit-system/internal/core/ports"
)

// ctxIdentity assembles the caller identity injected by the Session
// middleware and performs a fast-fail check before any service call: a
// non-empty role and user id prove the middleware ran.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	role, _ := c.Get("role").(string)
	userID, _ := c.Get("user_id").(string)
	email, _ := c.Get("email").(string)

	if role == "" || userID == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusForbidden, "Unauthorized")
	}

	return ports.Identity{UserID: userID, Email: email, Role: role}, nil
}
