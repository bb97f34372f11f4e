package ports

import (
	"context"

	"github.com/foodbao/admin-api/internal/core/domain"
)

// EmailSender delivers one email. Implementations must be safe for
// concurrent use by dispatcher workers.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// WhatsAppSender delivers one WhatsApp message through the configured
// gateway.
type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, phone, message string) error
}

// NotificationLog is the audit trail of delivery attempts. Writes are
// non-fatal: callers log and continue on error.
type NotificationLog interface {
	Record(ctx context.Context, rec *domain.NotificationRecord) error
}

// NotificationService delivers a single queued notification.
type NotificationService interface {
	Deliver(ctx context.Context, n domain.Notification) error
}

// NotificationQueue accepts notifications for asynchronous delivery.
// Enqueue is fire-and-forget relative to the caller's request.
type NotificationQueue interface {
	Enqueue(n domain.Notification)
}
