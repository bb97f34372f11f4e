package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func rbacContext(role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}
	return c, rec
}

func TestRBAC_AllowsListedRole(t *testing.T) {
	c, rec := rbacContext("ADMIN")

	called := false
	err := RBAC("ADMIN", "AGENT")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)

	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("listed role must pass, code=%d called=%v", rec.Code, called)
	}
}

func TestRBAC_RejectsUnlistedRole(t *testing.T) {
	c, rec := rbacContext("CLIENT")

	err := RBAC("ADMIN", "AGENT")(func(c echo.Context) error {
		t.Fatalf("next must not be called")
		return nil
	})(c)

	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_RejectsMissingRole(t *testing.T) {
	c, rec := rbacContext("")

	err := RBAC("ADMIN")(func(c echo.Context) error {
		t.Fatalf("next must not be called")
		return nil
	})(c)

	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
