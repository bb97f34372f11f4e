package domain

import "time"

const (
	RoleAdmin  = "ADMIN"
	RoleAgent  = "AGENT"
	RoleClient = "CLIENT"
)

// User models an authenticated actor in the admin panel. The canonical
// profile merges the row fetched from the remote user table with the user
// object returned by the remote password-verification procedure.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Status       string    `json:"status,omitempty"`
	ClientID     string    `json:"client_id,omitempty"`
	BusinessName string    `json:"business_name,omitempty"`
	CreditExpiry time.Time `json:"credit_expiry,omitempty"`
	LastLogin    time.Time `json:"last_login,omitempty"`
}

// IsStaff reports whether the role unlocks cross-client navigation and data.
// The gate is best-effort UX only; the remote backend applies its own
// row-level rules.
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleAgent
}
