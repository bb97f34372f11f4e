package ports

import (
	"context"

	"github.com/foodbao/admin-api/internal/core/domain"
)

// ResetRepository persists password-reset tokens server-side.
type ResetRepository interface {
	Insert(ctx context.Context, reset *domain.PasswordReset) error
	// DeleteCodes removes the user's WhatsApp reset codes. The WhatsApp flow
	// calls this before inserting so only one active code exists; email
	// tokens are untouched and may coexist.
	DeleteCodes(ctx context.Context, userID string) error
	FindByToken(ctx context.Context, token string) (*domain.PasswordReset, error)
	FindByCode(ctx context.Context, userID, code string) (*domain.PasswordReset, error)
	Delete(ctx context.Context, id string) error
}

// ResetRequestInput identifies the account and delivery method for a reset.
type ResetRequestInput struct {
	Email       string
	PhoneNumber string
	Method      string
}

// ResetService implements the password-reset flows. RequestReset never
// reveals whether the contact is registered.
type ResetService interface {
	RequestReset(ctx context.Context, in ResetRequestInput) error
	VerifyCode(ctx context.Context, phoneNumber, code string) (token string, err error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}
