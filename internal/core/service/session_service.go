package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

// SessionService owns the session lifecycle. The session key is a random
// per-login marker separate from the bearer token: the token carries no
// server-side revocation, so destroying the key on logout is what stops a
// cached page from re-entering an authenticated area.
type SessionService struct {
	store  ports.SessionStore
	credit ports.CreditChecker
	log    zerolog.Logger
	now    func() time.Time
}

func NewSessionService(store ports.SessionStore, credit ports.CreditChecker, log zerolog.Logger) *SessionService {
	return &SessionService{store: store, credit: credit, log: log, now: time.Now}
}

// Start persists a fresh session record after a successful login and returns
// the session ID plus the newly generated session key.
func (s *SessionService) Start(ctx context.Context, result *ports.LoginResult) (string, string, error) {
	sessionID := uuid.NewString()
	sessionKey := uuid.NewString()

	fields := map[string]string{
		domain.KeyToken:          result.Token,
		domain.KeyUsername:       result.User.Username,
		domain.KeyRole:           result.User.Role,
		domain.KeySessionKey:     sessionKey,
		domain.KeySessionCreated: strconv.FormatInt(s.now().UnixMilli(), 10),
	}
	if result.User.ClientID != "" {
		fields[domain.KeyClientID] = result.User.ClientID
	}
	if result.User.BusinessName != "" {
		fields[domain.KeyBusinessName] = result.User.BusinessName
	}
	if result.User.Email != "" {
		fields[domain.KeyEmail] = result.User.Email
	}

	if err := s.store.Put(ctx, sessionID, fields); err != nil {
		return "", "", err
	}
	return sessionID, sessionKey, nil
}

// Validate is the guard. It fails closed: any missing or ambiguous field
// invalidates the session, and invalidation clears the whole record before
// the reason is reported. The credit-expiry gate runs as a detached task
// that never blocks the synchronous pass/fail decision.
func (s *SessionService) Validate(ctx context.Context, in ports.GuardInput) (*ports.Verdict, error) {
	// Deep-link bypass: a recognised direct-URL auth parameter skips all
	// checks. Deliberate, preserved behaviour.
	if in.DirectUsername != "" {
		return &ports.Verdict{Valid: true}, nil
	}

	fields, err := s.store.Get(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	if fields[domain.KeyToken] == "" || fields[domain.KeyUsername] == "" {
		return s.invalidate(ctx, in.SessionID, domain.ReasonMissing)
	}

	sessionKey := fields[domain.KeySessionKey]
	createdRaw := fields[domain.KeySessionCreated]
	if sessionKey == "" || createdRaw == "" {
		return s.invalidate(ctx, in.SessionID, domain.ReasonInvalid)
	}

	createdMillis, err := strconv.ParseInt(createdRaw, 10, 64)
	if err != nil {
		return s.invalidate(ctx, in.SessionID, domain.ReasonInvalid)
	}

	age := s.now().Sub(time.UnixMilli(createdMillis))
	if age > domain.MaxSessionAge {
		return s.invalidate(ctx, in.SessionID, domain.ReasonExpired)
	}

	verdict := &ports.Verdict{Valid: true}

	// Clients only, and never on billing pages themselves.
	if fields[domain.KeyRole] == domain.RoleClient && !in.BillingPage && s.credit != nil {
		verdict.CreditCheck = s.startCreditCheck(fields[domain.KeyUsername])
	}

	return verdict, nil
}

// startCreditCheck kicks off the detached credit-expiry task. The handle
// lets tests await the outcome deterministically even though production
// treats it as fire-and-forget.
func (s *SessionService) startCreditCheck(username string) *ports.CreditCheck {
	check := ports.NewCreditCheck()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		expiry, err := s.credit.CreditExpiry(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("credit-expiry check failed")
			check.Complete(false, err)
			return
		}

		// Date-only comparison; time of day is ignored.
		today := s.now().UTC().Truncate(24 * time.Hour)
		expiryDay := expiry.UTC().Truncate(24 * time.Hour)
		check.Complete(expiryDay.Before(today), nil)
	}()
	return check
}

func (s *SessionService) invalidate(ctx context.Context, sessionID, reason string) (*ports.Verdict, error) {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Str("reason", reason).Msg("session clear failed during invalidation")
	}
	s.log.Info().Str("reason", reason).Msg("session invalidated")
	return &ports.Verdict{Valid: false, Reason: reason}, nil
}

// Logout clears the entire session record atomically.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

// Snapshot returns the current session fields for display purposes.
func (s *SessionService) Snapshot(ctx context.Context, sessionID string) (map[string]string, error) {
	return s.store.Get(ctx, sessionID)
}
