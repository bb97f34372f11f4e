package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/api/metrics"
	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the user key, so messages for one recipient are delivered in
// order. Enqueue is fire-and-forget relative to the enqueuing request.
type Dispatcher struct {
	workers []chan domain.Notification
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Notification, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a notification to the worker responsible for its user key.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(n domain.Notification) {
	d.workers[d.shardIndex(n.UserKey)] <- n
}

// shardIndex maps a user key deterministically to a worker index.
func (d *Dispatcher) shardIndex(userKey string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userKey))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Deliver(ctx, n); err != nil {
				metrics.NotificationsTotal.WithLabelValues(n.Channel, "failed").Inc()
				d.log.Error().Err(err).
					Str("channel", n.Channel).
					Str("user_key", n.UserKey).
					Int("worker_id", id).
					Msg("notification delivery failed")
			} else {
				metrics.NotificationsTotal.WithLabelValues(n.Channel, "sent").Inc()
			}
		}
	}
}
