package infra

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	StatusOK       = "ok"
	StatusDisabled = "disabled"

	healthTimeout = 2 * time.Second
)

// Health pings the configured backends. Either may be nil in development.
type Health struct {
	DB    *pgxpool.Pool
	Cache *redis.Client
}

// Check reports per-backend status and whether all configured backends are up.
func (h Health) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	status := map[string]string{"postgres": StatusDisabled, "redis": StatusDisabled}
	healthy := true
	if h.DB != nil {
		status["postgres"] = StatusOK
		if err := h.DB.Ping(ctx); err != nil {
			status["postgres"] = err.Error()
			healthy = false
		}
	}
	if h.Cache != nil {
		status["redis"] = StatusOK
		if err := h.Cache.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
			healthy = false
		}
	}
	return status, healthy
}
