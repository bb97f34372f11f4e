package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

// sessionHeader carries the session record ID on guarded requests.
const sessionHeader = "X-Session-ID"

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - a CLIENT role without a client_id claim is structurally valid but
//     operationally unusable; reject with 401.
func ctxActor(c echo.Context) (ports.Actor, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	clientID, _ := c.Get("client_id").(string)
	if role == domain.RoleClient && clientID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing client identity")
	}

	return ports.Actor{Role: role, ClientID: clientID}, nil
}
