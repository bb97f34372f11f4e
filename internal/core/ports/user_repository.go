package ports

import (
	"context"

	"github.com/foodbao/admin-api/internal/core/domain"
)

// UserRepository reads and updates rows in the remote user table.
type UserRepository interface {
	// FindByUsername performs an exact, case-sensitive match.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// SearchByUsername performs a single case-insensitive substring search
	// and returns the first row only.
	SearchByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateLastLogin is best-effort: callers must not fail on its error.
	UpdateLastLogin(ctx context.Context, username string) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

// VerifyResult is the interpreted outcome of the remote verification RPC.
// User carries the raw object as returned, with whatever field casing the
// remote side chose.
type VerifyResult struct {
	Success bool
	Message string
	User    map[string]any
}

// PasswordVerifier invokes the remote password-verification procedure with
// service-level credentials. No hashing or comparison happens locally.
type PasswordVerifier interface {
	Verify(ctx context.Context, username, password string) (*VerifyResult, error)
}
