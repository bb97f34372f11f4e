package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
)

type recordingService struct {
	mu        sync.Mutex
	delivered []domain.Notification
	done      chan struct{}
	expect    int
}

func newRecordingService(expect int) *recordingService {
	return &recordingService{done: make(chan struct{}), expect: expect}
}

func (s *recordingService) Deliver(_ context.Context, n domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered = append(s.delivered, n)
	if len(s.delivered) == s.expect {
		close(s.done)
	}
	return nil
}

func (s *recordingService) wait(t *testing.T) []domain.Notification {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for deliveries")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, len(s.delivered))
	copy(out, s.delivered)
	return out
}

func TestDispatcher_DeliversAll(t *testing.T) {
	service := newRecordingService(3)
	d := NewDispatcher(4, service, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, key := range []string{"u1", "u2", "u3"} {
		d.Enqueue(domain.Notification{UserKey: key, Channel: domain.ChannelEmail, Recipient: key + "@x.io"})
	}

	delivered := service.wait(t)
	if len(delivered) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(delivered))
	}
}

func TestDispatcher_SameUserKeyStaysOrdered(t *testing.T) {
	const n = 20
	service := newRecordingService(n)
	d := NewDispatcher(8, service, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < n; i++ {
		d.Enqueue(domain.Notification{
			UserKey: "u1", Channel: domain.ChannelEmail,
			Recipient: "u1@x.io", Body: string(rune('a' + i)),
		})
	}

	delivered := service.wait(t)
	for i := 0; i < n; i++ {
		if delivered[i].Body != string(rune('a'+i)) {
			t.Fatalf("delivery %d out of order: got %q", i, delivered[i].Body)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, newRecordingService(0), zerolog.Nop())

	first := d.shardIndex("user-42")
	for i := 0; i < 10; i++ {
		if d.shardIndex("user-42") != first {
			t.Fatalf("shard index must be stable per key")
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newRecordingService(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
