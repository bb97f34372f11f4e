package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/foodbao/admin-api/internal/core/domain"
)

const notificationCollection = "notification_log"

// NotificationLog is the audit trail of notification delivery attempts.
type NotificationLog struct {
	coll *mongo.Collection
}

func NewNotificationLog(db *mongo.Database) *NotificationLog {
	return &NotificationLog{coll: db.Collection(notificationCollection)}
}

type notificationDoc struct {
	UserKey   string `bson:"user_key"`
	Channel   string `bson:"channel"`
	Recipient string `bson:"recipient"`
	Outcome   string `bson:"outcome"`
	Error     string `bson:"error,omitempty"`
	SentAt    int64  `bson:"sent_at"`
}

func (l *NotificationLog) Record(ctx context.Context, rec *domain.NotificationRecord) error {
	doc := notificationDoc{
		UserKey:   rec.UserKey,
		Channel:   rec.Channel,
		Recipient: rec.Recipient,
		Outcome:   rec.Outcome,
		Error:     rec.Error,
		SentAt:    rec.SentAt.Unix(),
	}
	if _, err := l.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert notification record: %w", err)
	}
	return nil
}
