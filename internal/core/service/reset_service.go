package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

// ResetService implements the password-reset flows. Requests are
// enumeration-resistant: the caller learns nothing about whether the contact
// is registered.
type ResetService struct {
	users ports.UserRepository
	repo  ports.ResetRepository
	queue ports.NotificationQueue
	log   zerolog.Logger
	now   func() time.Time
}

func NewResetService(users ports.UserRepository, repo ports.ResetRepository, queue ports.NotificationQueue, log zerolog.Logger) *ResetService {
	return &ResetService{users: users, repo: repo, queue: queue, log: log, now: time.Now}
}

// RequestReset creates and sends a reset token. It returns nil for unknown
// contacts too; only the downstream side effect differs. The WhatsApp flow
// deletes the user's prior codes first so exactly one is active; the email
// flow keeps historical rows (existing behaviour, deliberately preserved).
func (s *ResetService) RequestReset(ctx context.Context, in ports.ResetRequestInput) error {
	user, err := s.locateByContact(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("method", in.Method).Msg("reset requested for unknown contact")
			return nil
		}
		// Upstream trouble is also swallowed into the generic response; the
		// user cannot retry their way into an enumeration oracle.
		s.log.Warn().Err(err).Msg("reset lookup failed")
		return nil
	}

	reset := &domain.PasswordReset{
		UserID:    user.ID,
		Username:  user.Username,
		Token:     uuid.NewString(),
		Method:    in.Method,
		CreatedAt: s.now().UTC(),
	}
	reset.ExpiresAt = reset.CreatedAt.Add(domain.ResetTokenTTL)

	if in.Method == domain.ResetMethodWhatsApp {
		reset.ResetCode = sixDigitCode()
		if err := s.repo.DeleteCodes(ctx, user.ID); err != nil {
			s.log.Warn().Err(err).Msg("prior reset-code cleanup failed")
		}
	}

	if err := s.repo.Insert(ctx, reset); err != nil {
		s.log.Error().Err(err).Msg("reset token insert failed")
		return nil
	}

	s.queue.Enqueue(s.buildNotification(user, reset))
	s.log.Info().Str("method", in.Method).Str("user_id", user.ID).Msg("reset token issued")
	return nil
}

func (s *ResetService) locateByContact(ctx context.Context, in ports.ResetRequestInput) (*domain.User, error) {
	if in.Method == domain.ResetMethodWhatsApp {
		return s.users.FindByPhone(ctx, in.PhoneNumber)
	}
	return s.users.FindByEmail(ctx, in.Email)
}

func (s *ResetService) buildNotification(user *domain.User, reset *domain.PasswordReset) domain.Notification {
	now := s.now().UTC()
	if reset.Method == domain.ResetMethodWhatsApp {
		return domain.Notification{
			UserKey:   user.ID,
			Channel:   domain.ChannelWhatsApp,
			Recipient: user.Phone,
			Body:      fmt.Sprintf("Your FoodBao password reset code is %s. It expires in 15 minutes.", reset.ResetCode),
			CreatedAt: now,
		}
	}
	return domain.Notification{
		UserKey:   user.ID,
		Channel:   domain.ChannelEmail,
		Recipient: user.Email,
		Subject:   "FoodBao password reset",
		Body: fmt.Sprintf("A password reset was requested for your account.\n\n"+
			"Reset token: %s\n\nThe token expires in 15 minutes. If you did not request this, ignore this message.", reset.Token),
		CreatedAt: now,
	}
}

// VerifyCode exchanges a WhatsApp reset code for the reset token.
func (s *ResetService) VerifyCode(ctx context.Context, phoneNumber, code string) (string, error) {
	if phoneNumber == "" || code == "" {
		return "", domain.ErrResetTokenInvalid
	}

	user, err := s.users.FindByPhone(ctx, phoneNumber)
	if err != nil {
		return "", domain.ErrResetTokenInvalid
	}

	reset, err := s.repo.FindByCode(ctx, user.ID, code)
	if err != nil {
		return "", domain.ErrResetTokenInvalid
	}
	if reset.Expired(s.now()) {
		return "", domain.ErrResetTokenInvalid
	}
	return reset.Token, nil
}

// ResetPassword consumes an unexpired token: the new password is hashed and
// written to the remote user table, then the token row is deleted.
func (s *ResetService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" || len(newPassword) < 6 {
		return domain.ErrResetTokenInvalid
	}

	reset, err := s.repo.FindByToken(ctx, resetToken)
	if err != nil {
		return domain.ErrResetTokenInvalid
	}
	if reset.Expired(s.now()) {
		return domain.ErrResetTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, reset.Username, string(hash)); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, reset.ID); err != nil {
		s.log.Warn().Err(err).Msg("consumed reset token cleanup failed")
	}

	s.log.Info().Str("user_id", reset.UserID).Msg("password reset completed")
	return nil
}

// sixDigitCode returns a zero-padded random code in [000000, 999999].
func sixDigitCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
