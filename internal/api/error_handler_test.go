package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err      error
		code     int
		errField string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{domain.ErrAuthServiceUnavailable, http.StatusServiceUnavailable, "auth_service_unavailable"},
		{domain.ErrSessionInvalid, http.StatusUnauthorized, "session_invalid"},
		{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{domain.ErrUserExists, http.StatusConflict, "user_exists"},
		{domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{domain.ErrInvalidPayload, http.StatusBadRequest, "invalid_payload"},
		{domain.ErrResetTokenInvalid, http.StatusBadRequest, "reset_invalid"},
		{fmt.Errorf("%w (from pending to completed)", domain.ErrInvalidTransition), http.StatusUnprocessableEntity, "invalid_transition"},
	}

	for _, tc := range cases {
		code, resp := handleError(t, tc.err)
		if code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if resp.Error != tc.errField {
			t.Fatalf("%v: expected error %q, got %q", tc.err, tc.errField, resp.Error)
		}
	}
}

func TestErrorHandler_GenericCredentialsMessage(t *testing.T) {
	// The same message regardless of which internal path rejected the login.
	_, resp := handleError(t, domain.ErrInvalidCredentials)
	if resp.Message != "Invalid username or password" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestErrorHandler_ConfigurationErrorNamesKeysOnly(t *testing.T) {
	code, resp := handleError(t, &domain.ConfigurationError{Missing: []string{"SUPABASE_URL", "SUPABASE_SERVICE_KEY"}})
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if !strings.Contains(resp.Message, "SUPABASE_URL") {
		t.Fatalf("missing keys must be named: %q", resp.Message)
	}
}

func TestErrorHandler_UpstreamStatusPreserved(t *testing.T) {
	code, resp := handleError(t, &domain.UpstreamError{StatusCode: http.StatusConflict, Message: "duplicate key"})
	if code != http.StatusConflict {
		t.Fatalf("expected preserved 409, got %d", code)
	}
	if resp.Error != "upstream_error" || resp.Message != "duplicate key" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	// Unusable upstream statuses collapse to 502.
	code, _ = handleError(t, &domain.UpstreamError{StatusCode: 0, Message: "connection refused"})
	if code != http.StatusBadGateway {
		t.Fatalf("expected 502 for unusable status, got %d", code)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, resp := handleError(t, echo.NewHTTPError(http.StatusUnauthorized, "token expired"))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if resp.Error != "token expired" {
		t.Fatalf("unexpected error field: %q", resp.Error)
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	code, resp := handleError(t, errors.New("pq: column does not exist"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if strings.Contains(resp.Message, "column") || strings.Contains(resp.Error, "column") {
		t.Fatalf("internal details must not leak: %+v", resp)
	}
}
