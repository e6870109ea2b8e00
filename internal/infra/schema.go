package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is idempotent. Entries reference their owner; seq preserves
// insertion order for listing.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS incomes (
		seq        BIGSERIAL UNIQUE,
		id         UUID PRIMARY KEY,
		owner_id   UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		amount     NUMERIC(14,2) NOT NULL CHECK (amount >= 0),
		category   TEXT NOT NULL,
		date       TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS incomes_owner_date_idx ON incomes (owner_id, date)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		seq        BIGSERIAL UNIQUE,
		id         UUID PRIMARY KEY,
		owner_id   UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		amount     NUMERIC(14,2) NOT NULL CHECK (amount >= 0),
		category   TEXT NOT NULL,
		date       TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS expenses_owner_date_idx ON expenses (owner_id, date)`,
}

// EnsureSchema creates the users, incomes and expenses tables when missing.
// It never alters existing tables.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range schema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return tx.Commit(ctx)
}
