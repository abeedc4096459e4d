// Package redis implements the best-effort cache sink.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jobfeeds/jobs-ingest/internal/jobs"
)

const (
	keyPrefix = "job:"
	entryTTL  = time.Hour
)

// Config controls the cache store client.
type Config struct {
	Addr     string
	Password string
	DB       int
}

type client interface {
	SetEx(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Ping(ctx context.Context) *goredis.StatusCmd
	Close() error
}

// Cache writes each record under "job:<id>" with a fixed 1-hour
// expiration. Entries are a convenience copy; losing one is harmless
// because the durable and document sinks hold the same record.
type Cache struct {
	client client
	logger *zap.Logger
}

// New connects a Cache and verifies the server responds.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Cache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Cache{client: rdb, logger: logger}, nil
}

// NewWithClient constructs a Cache from an existing client (primarily
// for testing).
func NewWithClient(c client, logger *zap.Logger) *Cache {
	return &Cache{client: c, logger: logger}
}

// Name identifies the sink.
func (c *Cache) Name() string { return "redis" }

// Write serializes the record's field map as JSON and stores it with
// the fixed TTL.
func (c *Cache) Write(ctx context.Context, rec jobs.Record) error {
	payload, err := json.Marshal(rec.Fields())
	if err != nil {
		return fmt.Errorf("serialize job %s: %w", rec.ID, err)
	}
	if err := c.client.SetEx(ctx, keyPrefix+rec.ID, payload, entryTTL).Err(); err != nil {
		return fmt.Errorf("cache job %s: %w", rec.ID, err)
	}
	return nil
}

// Close releases the client connection.
func (c *Cache) Close(_ context.Context) error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("close redis client: %w", err)
	}
	return nil
}
