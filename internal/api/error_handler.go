package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bankaccess/account-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "account not found"
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "email already used"
	case errors.Is(err, domain.ErrNationalIDTaken):
		return http.StatusConflict, "national id already used"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrAccountBlocked):
		return http.StatusForbidden, "account is blocked"
	case errors.Is(err, domain.ErrNotLoggedIn):
		return http.StatusUnauthorized, "account is not logged in"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusUnauthorized, "insufficient balance"
	case errors.Is(err, domain.ErrAlreadyLoggedOut):
		return http.StatusConflict, "account is already logged out"
	case errors.Is(err, domain.ErrAlreadyBlocked):
		return http.StatusConflict, "national id is already blocked"
	case errors.Is(err, domain.ErrBlockNotFound):
		return http.StatusNotFound, "national id is not blocked"
	case errors.Is(err, domain.ErrBlocklistUnavailable):
		return http.StatusServiceUnavailable, "blocked-status could not be determined"
	case errors.Is(err, domain.ErrBlockCallFailed):
		return http.StatusBadGateway, "blocklist call failed"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
