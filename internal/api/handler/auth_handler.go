package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodbao/admin-api/internal/api/metrics"
	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

// ConfigReporter reports which secrets are configured, never their values.
type ConfigReporter interface {
	Presence() map[string]bool
}

type AuthHandler struct {
	authService    ports.AuthService
	sessionService ports.SessionService
	configReport   ConfigReporter
}

func NewAuthHandler(authService ports.AuthService, sessionService ports.SessionService, configReport ConfigReporter) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
		configReport:   configReport,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token      string          `json:"token"`
	User       *domain.User    `json:"user"`
	SessionID  string          `json:"session_id"`
	SessionKey string          `json:"session_key"`
	Debug      map[string]bool `json:"debug,omitempty"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Role     string `json:"role"     validate:"required,oneof=ADMIN AGENT CLIENT"`
	ClientID string `json:"client_id"`
}

// Login authenticates a user and returns the bearer token plus a fresh
// session record.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body   body      loginRequest  true   "Login credentials"
// @Param        debug  query     bool          false  "Include a configuration presence report"
// @Success      200    {object}  loginResponse
// @Failure      401    {object}  errorResponse
// @Failure      503    {object}  errorResponse
// @Router       /api/auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	start := time.Now()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}

	sessionID, sessionKey, err := h.sessionService.Start(c.Request().Context(), result)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	resp := loginResponse{
		Token:      result.Token,
		User:       result.User,
		SessionID:  sessionID,
		SessionKey: sessionKey,
	}

	// ?debug=true reports whether each secret is present. Values are never
	// included; this exists for operability only.
	if c.QueryParam("debug") == "true" && h.configReport != nil {
		resp.Debug = h.configReport.Presence()
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.LoginDuration.Observe(time.Since(start).Seconds())
	return c.JSON(http.StatusOK, resp)
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAuthServiceUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

// Register provisions a new user account. ADMIN only.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Email, req.Role, req.ClientID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}
