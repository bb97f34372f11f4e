// Package mongo holds the MongoDB bootstrap plus the repositories for
// password-reset tokens and the notification audit log.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// appName shows up in the server logs and in currentOp output, which makes
// this service's connections identifiable on a shared cluster.
const appName = "foodbao-admin-api"

const connectTimeout = 10 * time.Second

// Config is the connection surface the environment provides.
type Config struct {
	URI      string
	Database string
	// ConnectTimeout bounds the dial plus the verification ping.
	ConnectTimeout time.Duration
}

// Connect dials the cluster and verifies it with a primary-read ping before
// handing out the database handle. A client that cannot reach a primary is
// useless to the reset and audit repositories, so failure here is fatal to
// startup.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI).SetAppName(appName)
	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
