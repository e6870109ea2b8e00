// Package cache holds read-model caches backed by Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewCache stores JSON-encoded views of type T under a key prefix. A zero TTL
// keeps entries until they are deleted. Cache failures are logged and treated
// as misses.
type ViewCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewViewCache binds a cache for T to client.
func NewViewCache[T any](client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *ViewCache[T] {
	return &ViewCache[T]{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (c *ViewCache[T]) key(id string) string {
	return c.prefix + id
}

// Get returns the cached view for id, or false on a miss.
func (c *ViewCache[T]) Get(ctx context.Context, id string) (T, bool) {
	var v T
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("view cache read failed", slog.String("key", c.key(id)), slog.Any("error", err))
		}
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn("view cache decode failed", slog.String("key", c.key(id)), slog.Any("error", err))
		return v, false
	}
	return v, true
}

// Set stores value under id.
func (c *ViewCache[T]) Set(ctx context.Context, id string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("view cache encode failed", slog.String("key", c.key(id)), slog.Any("error", err))
		return
	}
	if err := c.client.Set(ctx, c.key(id), data, c.ttl).Err(); err != nil {
		c.logger.Warn("view cache write failed", slog.String("key", c.key(id)), slog.Any("error", err))
	}
}

// Delete evicts id.
func (c *ViewCache[T]) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.logger.Warn("view cache delete failed", slog.String("key", c.key(id)), slog.Any("error", err))
	}
}
