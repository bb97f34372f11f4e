package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodbao/admin-api/internal/api/metrics"
	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

type SessionHandler struct {
	service ports.SessionService
}

// loginRedirect builds the login entry point URL with the invalidation
// reason and a cache-busting timestamp, so a cached authenticated page can
// never be served back.
func loginRedirect(reason string) string {
	return fmt.Sprintf("/login?reason=%s&t=%d", reason, time.Now().UnixMilli())
}

func NewSessionHandler(service ports.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

type startSessionRequest struct {
	Token        string `json:"token" validate:"required"`
	Username     string `json:"username" validate:"required"`
	Role         string `json:"role" validate:"required"`
	ClientID     string `json:"client_id"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
}

type startSessionResponse struct {
	SessionID  string `json:"session_id"`
	SessionKey string `json:"session_key"`
}

// Start mints a session record for an already-issued token. Login does this
// implicitly; this route lets a client re-establish its record after the
// store evicted it.
//
// @Summary      Start a session
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      startSessionRequest  true  "Token and user identity"
// @Success      201   {object}  startSessionResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/session [post]
func (h *SessionHandler) Start(c echo.Context) error {
	var req startSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	sessionID, sessionKey, err := h.service.Start(c.Request().Context(), &ports.LoginResult{
		Token: req.Token,
		User: &domain.User{
			Username:     req.Username,
			Role:         req.Role,
			ClientID:     req.ClientID,
			BusinessName: req.BusinessName,
			Email:        req.Email,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, startSessionResponse{
		SessionID:  sessionID,
		SessionKey: sessionKey,
	})
}

type validateResponse struct {
	Valid bool `json:"valid"`
	// Reason is set only when Valid is false: missing, invalid, or expired.
	Reason string `json:"reason,omitempty"`
	// Redirect is the login entry point the client must replace its history
	// entry with, carrying the reason and a cache-busting timestamp.
	Redirect string `json:"redirect,omitempty"`
	// CreditExpired is reported when the detached credit check finished
	// before the response was written; the client redirects to billing.
	CreditExpired bool `json:"credit_expired,omitempty"`
}

// Validate runs the session guard. It fails closed: only a complete,
// fresh session record passes.
//
// @Summary      Validate the current session
// @Tags         session
// @Produce      json
// @Param        X-Session-ID  header    string  true   "Session record ID"
// @Param        username      query     string  false  "Direct-URL auth parameter; skips all checks"
// @Param        page          query     string  false  "Current page context (billing pages skip the credit gate)"
// @Success      200           {object}  validateResponse
// @Router       /api/session/validate [get]
func (h *SessionHandler) Validate(c echo.Context) error {
	in := ports.GuardInput{
		SessionID:      c.Request().Header.Get(sessionHeader),
		DirectUsername: c.QueryParam("username"),
		BillingPage:    c.QueryParam("page") == "billing",
	}

	verdict, err := h.service.Validate(c.Request().Context(), in)
	if err != nil {
		return err
	}

	if !verdict.Valid {
		metrics.SessionValidationsTotal.WithLabelValues(verdict.Reason).Inc()
		return c.JSON(http.StatusOK, validateResponse{
			Valid:    false,
			Reason:   verdict.Reason,
			Redirect: loginRedirect(verdict.Reason),
		})
	}

	result := "valid"
	if in.DirectUsername != "" {
		result = "bypass"
	}
	metrics.SessionValidationsTotal.WithLabelValues(result).Inc()

	resp := validateResponse{Valid: true}

	// The credit check is fire-and-forget relative to the guard decision;
	// report it only if it happened to finish already. The client may also
	// poll /api/session/credit-status for the definitive answer.
	if verdict.CreditCheck != nil {
		if expired, done, err := verdict.CreditCheck.TryWait(); done && err == nil {
			resp.CreditExpired = expired
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// CreditStatus runs the credit-expiry gate synchronously and reports the
// outcome. Intended for the billing redirect decision.
//
// @Summary      Check the client's credit expiry
// @Tags         session
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session record ID"
// @Success      200           {object}  validateResponse
// @Router       /api/session/credit-status [get]
func (h *SessionHandler) CreditStatus(c echo.Context) error {
	in := ports.GuardInput{SessionID: c.Request().Header.Get(sessionHeader)}

	verdict, err := h.service.Validate(c.Request().Context(), in)
	if err != nil {
		return err
	}
	if !verdict.Valid {
		return c.JSON(http.StatusOK, validateResponse{
			Valid:    false,
			Reason:   verdict.Reason,
			Redirect: loginRedirect(verdict.Reason),
		})
	}

	resp := validateResponse{Valid: true}
	if verdict.CreditCheck != nil {
		expired, err := verdict.CreditCheck.Wait(c.Request().Context())
		if err != nil {
			return err
		}
		resp.CreditExpired = expired
		if expired {
			resp.Redirect = "/billing?expired=true"
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout clears the session record atomically.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Param        X-Session-ID  header    string  true  "Session record ID"
// @Success      200           {object}  messageResponse
// @Router       /api/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	sessionID := c.Request().Header.Get(sessionHeader)
	if sessionID != "" {
		if err := h.service.Logout(c.Request().Context(), sessionID); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}
