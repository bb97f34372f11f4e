package domain

import "time"

// ResetTokenTTL is the fixed lifetime of a password-reset token.
const ResetTokenTTL = 15 * time.Minute

// Reset delivery methods.
const (
	ResetMethodEmail    = "email"
	ResetMethodWhatsApp = "whatsapp"
)

// PasswordReset is a server-side reset token. For the WhatsApp flow exactly
// one active code exists per user (prior codes are deleted before insert);
// the email flow allows historical rows to coexist.
type PasswordReset struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ResetCode string    `json:"reset_code,omitempty"`
	Method    string    `json:"reset_method"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token is past its lifetime.
func (p *PasswordReset) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
