package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rentledger/deposit-system/internal/core/domain"
)

// messageResponse is the canonical envelope for all API responses, errors
// included.
type messageResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, messageResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors: deterministic HTTP codes. Business-rule failures
	// are 400 with a descriptive message; authorization failures are 403.
	switch {
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusForbidden, "Unauthorized"
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "Invalid amount"
	case errors.Is(err, domain.ErrInvalidDeduction):
		return http.StatusBadRequest, "Invalid deduction amount"
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "Invalid input"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "Registration failed: Email already exists"
	case errors.Is(err, domain.ErrNoPendingDeposit):
		return http.StatusBadRequest, "No pending deposit to respond to"
	case errors.Is(err, domain.ErrNoRespondedDeposit):
		return http.StatusBadRequest, "No responded deposit awaiting a decision"
	case errors.Is(err, domain.ErrDepositNotFound):
		return http.StatusBadRequest, "Deposit not found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Server error"
}
