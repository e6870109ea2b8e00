// Package infra constructs the Postgres and Redis clients shared by the
// repositories and bootstraps the schema they expect.
package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrMissingURL is returned when a backend is requested without a URL.
var ErrMissingURL = errors.New("connection url is required")

const (
	poolMaxConnIdle   = 5 * time.Minute
	poolHealthCheck   = 30 * time.Second
	connectRetryLimit = 3
)

// NewPostgresPool connects to Postgres and verifies the connection. The ping
// is retried a few times so the API can start alongside the database.
func NewPostgresPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, fmt.Errorf("postgres: %w", ErrMissingURL)
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	cfg.MaxConnIdleTime = poolMaxConnIdle
	cfg.HealthCheckPeriod = poolHealthCheck

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pingWithRetry(ctx, pool.Ping); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

func pingWithRetry(ctx context.Context, ping func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= connectRetryLimit; attempt++ {
		if err = ping(ctx); err == nil {
			return nil
		}
		if attempt == connectRetryLimit {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}
	return err
}
