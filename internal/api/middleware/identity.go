package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

// sessionHeader is the request header naming the caller's session record.
const sessionHeader = "X-Session-ID"

// Identity enriches the request context with fields the bearer token does
// not carry (client_id, business_name), read from the caller's session
// record. The token stays the capability; the record supplies the profile.
// Requests without a session header pass through unenriched.
func Identity(store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := c.Request().Header.Get(sessionHeader)
			if sessionID == "" {
				return next(c)
			}

			fields, err := store.Get(c.Request().Context(), sessionID)
			if err != nil {
				// Enrichment is best-effort; the role gate decides access.
				return next(c)
			}

			if v := fields[domain.KeyClientID]; v != "" {
				c.Set("client_id", v)
			}
			if v := fields[domain.KeyBusinessName]; v != "" {
				c.Set("business_name", v)
			}

			return next(c)
		}
	}
}
