package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

// NotifyDedup abstracts the duplicate-send suppressor (Redis).
type NotifyDedup interface {
	IsDuplicate(ctx context.Context, channel, recipient, body string) (bool, error)
	Mark(ctx context.Context, channel, recipient, body string) error
}

// OutboxPublisher mirrors delivered notifications to an external broker.
// Optional; a nil publisher disables mirroring.
type OutboxPublisher interface {
	Publish(ctx context.Context, n domain.Notification) error
}

type notificationService struct {
	email    ports.EmailSender
	whatsapp ports.WhatsAppSender
	dedup    NotifyDedup
	auditLog ports.NotificationLog
	outbox   OutboxPublisher
	log      zerolog.Logger
}

// NewNotificationService returns a NotificationService implementation.
// dedup, auditLog, and outbox may be nil; each degrades independently.
func NewNotificationService(
	email ports.EmailSender,
	whatsapp ports.WhatsAppSender,
	dedup NotifyDedup,
	auditLog ports.NotificationLog,
	outbox OutboxPublisher,
	log zerolog.Logger,
) ports.NotificationService {
	return &notificationService{
		email:    email,
		whatsapp: whatsapp,
		dedup:    dedup,
		auditLog: auditLog,
		outbox:   outbox,
		log:      log,
	}
}

// Deliver sends one notification through its channel's provider.
// Duplicates within the dedup window are silently skipped; the audit log and
// outbox mirror are both non-fatal.
func (s *notificationService) Deliver(ctx context.Context, n domain.Notification) error {
	if s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, n.Channel, n.Recipient, n.Body)
		if err != nil {
			s.log.Warn().Err(err).Str("channel", n.Channel).Msg("dedup check failed, delivering anyway")
		} else if isDup {
			s.log.Debug().Str("channel", n.Channel).Str("user_key", n.UserKey).Msg("duplicate notification skipped")
			return nil
		}
	}

	sendErr := s.send(ctx, n)

	if s.dedup != nil && sendErr == nil {
		if err := s.dedup.Mark(ctx, n.Channel, n.Recipient, n.Body); err != nil {
			s.log.Warn().Err(err).Msg("failed to set dedup key")
		}
	}

	s.record(ctx, n, sendErr)

	if s.outbox != nil && sendErr == nil {
		if err := s.outbox.Publish(ctx, n); err != nil {
			s.log.Warn().Err(err).Msg("outbox mirror failed")
		}
	}

	return sendErr
}

func (s *notificationService) send(ctx context.Context, n domain.Notification) error {
	switch n.Channel {
	case domain.ChannelEmail:
		if s.email == nil {
			return fmt.Errorf("email provider not configured")
		}
		return s.email.SendEmail(ctx, n.Recipient, n.Subject, n.Body)
	case domain.ChannelWhatsApp:
		if s.whatsapp == nil {
			return fmt.Errorf("whatsapp provider not configured")
		}
		return s.whatsapp.SendWhatsApp(ctx, n.Recipient, n.Body)
	default:
		return fmt.Errorf("unknown notification channel %q", n.Channel)
	}
}

// record writes the audit-trail entry. Failures are logged, never raised.
func (s *notificationService) record(ctx context.Context, n domain.Notification, sendErr error) {
	if s.auditLog == nil {
		return
	}
	rec := &domain.NotificationRecord{
		UserKey:   n.UserKey,
		Channel:   n.Channel,
		Recipient: n.Recipient,
		Outcome:   "sent",
		SentAt:    time.Now().UTC(),
	}
	if sendErr != nil {
		rec.Outcome = "failed"
		rec.Error = sendErr.Error()
	}
	if err := s.auditLog.Record(ctx, rec); err != nil {
		s.log.Warn().Err(err).Msg("failed to write notification audit record")
	}
}
