package handler

import (
	"strings"
	"testing"
)

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	type payload struct {
		PhoneNumber string `json:"phone_number" validate:"required"`
		Method      string `json:"method" validate:"required,oneof=email whatsapp"`
	}

	err := NewValidator().Validate(&payload{Method: "carrier-pigeon"})
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	msg := err.Error()
	if !strings.Contains(msg, "phone_number is required") {
		t.Fatalf("field name must come from the json tag: %q", msg)
	}
	if !strings.Contains(msg, "method must be one of: email whatsapp") {
		t.Fatalf("all failing fields must be reported together: %q", msg)
	}
}

func TestValidator_AcceptsValidPayload(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := NewValidator().Validate(&payload{Email: "alice@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
