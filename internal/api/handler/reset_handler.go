package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodbao/admin-api/internal/api/metrics"
	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

type ResetHandler struct {
	service ports.ResetService
}

func NewResetHandler(service ports.ResetService) *ResetHandler {
	return &ResetHandler{service: service}
}

type resetRequest struct {
	Email       string `json:"email"        validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number"`
	Method      string `json:"method" validate:"required,oneof=email whatsapp"`
}

type verifyCodeRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Code        string `json:"code"         validate:"required,len=6"`
}

type verifyCodeResponse struct {
	ResetToken string `json:"reset_token"`
}

type resetPasswordRequest struct {
	ResetToken  string `json:"reset_token"  validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// genericResetMessage is returned on every reset request, registered
// account or not, so the endpoint cannot be used to enumerate users.
const genericResetMessage = "If the account is registered, reset instructions have been sent."

// Request starts a password reset over email or WhatsApp.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetRequest  true  "Contact and delivery method"
// @Success      200   {object}  messageResponse
// @Router       /api/request-password-reset [post]
func (h *ResetHandler) Request(c echo.Context) error {
	var req resetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if req.Method == domain.ResetMethodEmail && req.Email == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "email is required"})
	}
	if req.Method == domain.ResetMethodWhatsApp && req.PhoneNumber == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "phone_number is required"})
	}

	// The service never reports whether the contact exists; the response is
	// identical either way.
	if err := h.service.RequestReset(c.Request().Context(), ports.ResetRequestInput{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Method:      req.Method,
	}); err != nil {
		return err
	}

	metrics.ResetRequestsTotal.WithLabelValues(req.Method).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: genericResetMessage})
}

// VerifyCode exchanges a WhatsApp reset code for a reset token.
//
// @Summary      Verify a WhatsApp reset code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyCodeRequest  true  "Phone number and code"
// @Success      200   {object}  verifyCodeResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/verify-reset-code [post]
func (h *ResetHandler) VerifyCode(c echo.Context) error {
	var req verifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	token, err := h.service.VerifyCode(c.Request().Context(), req.PhoneNumber, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, verifyCodeResponse{ResetToken: token})
}

// ResetPassword consumes a reset token and sets a new password.
//
// @Summary      Complete a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Token and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/reset-password [post]
func (h *ResetHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.service.ResetPassword(c.Request().Context(), req.ResetToken, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}
