package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/finance_tracker/internal/config"
	"github.com/finance-tracker/finance_tracker/internal/infra"
	"github.com/finance-tracker/finance_tracker/internal/logging"
	"github.com/finance-tracker/finance_tracker/internal/server"
)

const connectTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.AppName, cfg.IsDev())
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	db, cache, err := connect(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("connect backends", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}
	if cache != nil {
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Warn("close redis", "error", err)
			}
		}()
	}

	srv, err := server.New(cfg, db, cache, logger)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}

// connect opens Postgres and Redis. In development either may be left
// unconfigured, in which case nil is returned for it.
func connect(ctx context.Context, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, *redis.Client, error) {
	var (
		db    *pgxpool.Pool
		cache *redis.Client
		err   error
	)
	if cfg.DatabaseURL != "" {
		db, err = infra.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := infra.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("postgres connected")
	}
	if cfg.RedisURL != "" {
		cache, err = infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			if db != nil {
				db.Close()
			}
			return nil, nil, err
		}
		logger.Info("redis connected")
	}
	return db, cache, nil
}
