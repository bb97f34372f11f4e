// Package redis provides the Redis bootstrap, the session record store, and
// the notification dedup checker.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config is the connection surface the environment provides. Password is
// empty for unauthenticated instances.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Connect builds a client and proves connectivity with a bounded ping.
// Session validation fails closed when Redis is unreachable, so a broken
// connection is caught here at startup instead of on the first guard request.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: pingTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
