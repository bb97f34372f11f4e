package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker suppresses duplicate notification sends within dedupTTL.
// Key format: notify:<channel>:<recipient>:<body-hash>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact notification was already sent.
func (d *DedupChecker) IsDuplicate(ctx context.Context, channel, recipient, body string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(channel, recipient, body)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this notification has been sent (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, channel, recipient, body string) error {
	return d.client.Set(ctx, d.key(channel, recipient, body), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(channel, recipient, body string) string {
	sum := sha256.Sum256([]byte(body))
	return fmt.Sprintf("notify:%s:%s:%s", channel, recipient, hex.EncodeToString(sum[:8]))
}
