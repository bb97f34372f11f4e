package ports

import (
	"context"
	"time"
)

// SessionStore is the key-value backing for session records. Production uses
// Redis; tests inject an in-memory fake. Clear must remove every field of
// the record atomically.
type SessionStore interface {
	Put(ctx context.Context, sessionID string, fields map[string]string) error
	Get(ctx context.Context, sessionID string) (map[string]string, error)
	Clear(ctx context.Context, sessionID string) error
}

// CreditChecker looks up a client user's credit-expiry date from the remote
// backend.
type CreditChecker interface {
	CreditExpiry(ctx context.Context, username string) (time.Time, error)
}

// GuardInput carries the per-request context the guard evaluates.
type GuardInput struct {
	SessionID string
	// DirectUsername is the deep-link auth parameter; when present all
	// checks are skipped.
	DirectUsername string
	// BillingPage suppresses the credit-expiry gate on billing pages.
	BillingPage bool
}

// Verdict is the guard's decision. CreditCheck is non-nil only when the
// asynchronous credit-expiry gate was started; it completes independently of
// the synchronous pass/fail result.
type Verdict struct {
	Valid       bool
	Reason      string
	CreditCheck *CreditCheck
}

// CreditCheck is the handle of the detached credit-expiry task. Production
// code fires and forgets; tests may Wait for a deterministic outcome.
type CreditCheck struct {
	done    chan struct{}
	expired bool
	err     error
}

func NewCreditCheck() *CreditCheck {
	return &CreditCheck{done: make(chan struct{})}
}

// Complete records the task outcome and releases waiters. Call once.
func (c *CreditCheck) Complete(expired bool, err error) {
	c.expired = expired
	c.err = err
	close(c.done)
}

// Wait blocks until the task completes or ctx is done, then reports whether
// the user's credit has expired.
func (c *CreditCheck) Wait(ctx context.Context) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-c.done:
		return c.expired, c.err
	}
}

// TryWait reports the outcome without blocking. done is false while the task
// is still running.
func (c *CreditCheck) TryWait() (expired bool, done bool, err error) {
	select {
	case <-c.done:
		return c.expired, true, c.err
	default:
		return false, false, nil
	}
}

// SessionService owns the session lifecycle: record creation after login,
// the guard, and logout.
type SessionService interface {
	Start(ctx context.Context, result *LoginResult) (sessionID, sessionKey string, err error)
	Validate(ctx context.Context, in GuardInput) (*Verdict, error)
	Logout(ctx context.Context, sessionID string) error
	Snapshot(ctx context.Context, sessionID string) (map[string]string, error)
}
