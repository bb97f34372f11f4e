package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Message
// is included where a human-readable explanation is safe to show.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Preserves the upstream status of unclassified backend failures.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors → deterministic HTTP codes. Authentication
	// failures carry one deliberately generic message on every path.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid_credentials", Message: "Invalid username or password"}
	case errors.Is(err, domain.ErrAuthServiceUnavailable):
		return http.StatusServiceUnavailable, errorResponse{Error: "auth_service_unavailable", Message: "Authentication service is unavailable. Please contact the administrator."}
	case errors.Is(err, domain.ErrSessionInvalid):
		return http.StatusUnauthorized, errorResponse{Error: "session_invalid", Message: "Session is no longer valid"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "forbidden"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user_not_found"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: "user_exists"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found"}
	case errors.Is(err, domain.ErrInvalidPayload):
		return http.StatusBadRequest, errorResponse{Error: "invalid_payload"}
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, errorResponse{Error: "invalid_transition", Message: err.Error()}
	case errors.Is(err, domain.ErrResetTokenInvalid):
		return http.StatusBadRequest, errorResponse{Error: "reset_invalid", Message: "Reset code or token is invalid or has expired"}
	}

	// Configuration problems are fatal operator errors; the response names
	// the missing keys but never any value.
	var ce *domain.ConfigurationError
	if errors.As(err, &ce) {
		log.Error().Strs("missing", ce.Missing).Msg("configuration error")
		return http.StatusInternalServerError, errorResponse{Error: "configuration_error", Message: ce.Error()}
	}

	// Backend failures keep their original status where it is usable.
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		log.Warn().Int("upstream_status", ue.StatusCode).Str("path", c.Path()).Msg("upstream error")
		status := ue.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		return status, errorResponse{Error: "upstream_error", Message: ue.Message}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
