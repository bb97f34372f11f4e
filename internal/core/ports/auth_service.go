package ports

import (
	"context"

	"github.com/foodbao/admin-api/internal/core/domain"
)

// LoginResult is the successful outcome of an authentication attempt.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthService implements login and admin user provisioning.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, username, password, email, role, clientID string) (*domain.User, error)
}
