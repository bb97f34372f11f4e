package domain

import "time"

// Notification channels.
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

// Notification is a transactional message queued for delivery. UserKey
// shards dispatch so that messages for one recipient stay ordered.
type Notification struct {
	UserKey   string    `json:"user_key"`
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationRecord is the audit-log entry written after a delivery attempt.
type NotificationRecord struct {
	UserKey   string    `json:"user_key"`
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Outcome   string    `json:"outcome"`
	Error     string    `json:"error,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}
