package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
)

const outboxQueue = "notifications.outbound"

// AMQPPublisher mirrors each notification to a durable RabbitMQ queue so an
// external worker fleet can also consume them. Publishing is best-effort:
// errors are logged and returned, never allowed to interrupt the request
// flow that produced the notification.
type AMQPPublisher struct {
	url string
	log zerolog.Logger
}

// NewAMQPPublisher returns nil when no broker URL is configured; callers
// treat a nil publisher as "outbox disabled".
func NewAMQPPublisher(url string, log zerolog.Logger) *AMQPPublisher {
	if url == "" {
		return nil
	}
	return &AMQPPublisher{url: url, log: log}
}

// Publish sends one notification to the outbox queue. Messages are marked
// persistent so they survive broker restarts.
func (p *AMQPPublisher) Publish(ctx context.Context, n domain.Notification) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn().Err(err).Msg("amqp dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn().Err(err).Msg("amqp channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(outboxQueue, true, false, false, false, nil); err != nil {
		p.log.Warn().Err(err).Msg("amqp queue declare failed")
		return err
	}

	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = ch.PublishWithContext(pubCtx, "", outboxQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.log.Warn().Err(err).Msg("amqp publish failed")
		return err
	}
	return nil
}
