package service

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
	"github.com/foodbao/admin-api/internal/token"
)

// AuthService implements login against the remote user table and admin user
// provisioning. Password verification for login is fully delegated to the
// remote procedure; only provisioning hashes locally.
type AuthService struct {
	repo     ports.UserRepository
	verifier ports.PasswordVerifier
	codec    *token.Codec
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, verifier ports.PasswordVerifier, codec *token.Codec, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, verifier: verifier, codec: codec, log: log}
}

// Login locates the user, delegates password verification, and mints the
// bearer token. The lookup tries exactly four deterministic case variants in
// fixed order and falls back to a single fuzzy search only when all four
// miss. Failure messages are deliberately generic: the response never
// distinguishes "unknown user" from "wrong password".
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	found, err := s.locate(ctx, username)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.ErrInvalidCredentials
	}

	// Verify with the located username, not necessarily the typed one.
	verdict, err := s.verifier.Verify(ctx, found.Username, password)
	if err != nil {
		if errors.Is(err, domain.ErrAuthServiceUnavailable) {
			return nil, err
		}
		var ue *domain.UpstreamError
		if errors.As(err, &ue) {
			return nil, err
		}
		return nil, domain.ErrInvalidCredentials
	}
	if verdict == nil || !verdict.Success {
		if verdict != nil && verdict.Message != "" {
			s.log.Debug().Str("username", found.Username).Str("remote_message", verdict.Message).Msg("verification rejected")
		}
		return nil, domain.ErrInvalidCredentials
	}

	// The RPC's user object is canonical; client_id and business_name come
	// from the originally fetched row.
	profile := reconcileProfile(verdict.User, found)

	tok, err := s.codec.Mint(profile.ID, profile.Username, profile.Role)
	if err != nil {
		return nil, err
	}

	// Best-effort: a failed last-login update never fails the login.
	if err := s.repo.UpdateLastLogin(ctx, profile.Username); err != nil {
		s.log.Warn().Err(err).Str("username", profile.Username).Msg("last-login update failed")
	}

	s.log.Info().Str("username", profile.Username).Str("role", profile.Role).Msg("login succeeded")
	return &ports.LoginResult{Token: tok, User: profile}, nil
}

// locate runs the fixed-order variant lookups, then the fuzzy fallback.
// Returns (nil, nil) when every strategy is exhausted.
func (s *AuthService) locate(ctx context.Context, username string) (*domain.User, error) {
	for _, variant := range usernameVariants(username) {
		user, err := s.repo.FindByUsername(ctx, variant)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	user, err := s.repo.SearchByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	return nil, nil
}

// usernameVariants returns the four deterministic case variants in their
// fixed lookup order: as-entered, upper, lower, capitalized. Duplicates are
// kept so the attempt order stays exactly as specified.
func usernameVariants(username string) [4]string {
	return [4]string{
		username,
		strings.ToUpper(username),
		strings.ToLower(username),
		capitalize(username),
	}
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Register provisions a new user row with a locally bcrypt-hashed password.
// ADMIN-only at the transport layer.
func (s *AuthService) Register(ctx context.Context, username, password, email, role, clientID string) (*domain.User, error) {
	if username == "" || password == "" || role == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role != domain.RoleAdmin && role != domain.RoleAgent && role != domain.RoleClient {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		Role:         role,
		Status:       "ACTIVE",
		ClientID:     clientID,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", created.Role).Msg("user provisioned")
	return created, nil
}
