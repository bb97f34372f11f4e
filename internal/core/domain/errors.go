package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrForbidden = errors.New("access forbidden")
var ErrAuthServiceUnavailable = errors.New("authentication service unavailable")
var ErrSessionInvalid = errors.New("session invalid")
var ErrResetTokenInvalid = errors.New("reset token invalid or expired")
var ErrNotFound = errors.New("resource not found")
var ErrInvalidPayload = errors.New("invalid payload")
var ErrInvalidTransition = errors.New("invalid status transition")

// ConfigurationError reports missing required secrets. Fatal at startup,
// never retried, and its message never contains secret values.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %v", e.Missing)
}

// UpstreamError wraps any non-2xx response from the remote backend that is
// not otherwise classified. The original status code is preserved so the
// transport layer can propagate it.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}
