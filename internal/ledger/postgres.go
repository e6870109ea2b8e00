package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresStore keeps incomes and expenses in two tables of identical shape.
// Amounts travel as text so NUMERIC precision survives the round trip.
type PostgresStore struct {
	db *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore constructs a Postgres-backed entry store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func tableFor(kind Kind) (string, error) {
	switch kind {
	case KindIncome:
		return "incomes", nil
	case KindExpense:
		return "expenses", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Insert records a new entry.
func (s *PostgresStore) Insert(ctx context.Context, entry Entry) error {
	table, err := tableFor(entry.Kind)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(entry.ID)
	if err != nil {
		return fmt.Errorf("parse entry id: %w", err)
	}
	ownerID, err := uuid.Parse(entry.OwnerID)
	if err != nil {
		return fmt.Errorf("parse owner id: %w", err)
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, owner_id, amount, category, date, created_at)
        VALUES ($1, $2, $3::numeric, $4, $5, $6)`, table)
	_, err = s.db.Exec(ctx, query, id, ownerID, entry.Amount.String(), entry.Category, entry.Date.UTC(), entry.CreatedAt.UTC())
	return err
}

// Sum totals the matching amounts; no rows yields zero.
func (s *PostgresStore) Sum(ctx context.Context, kind Kind, ownerID string, since time.Time) (decimal.Decimal, error) {
	table, err := tableFor(kind)
	if err != nil {
		return decimal.Zero, err
	}
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return decimal.Zero, nil
	}
	where, args := filter(owner, since)
	query := fmt.Sprintf(`SELECT COALESCE(SUM(amount), 0)::text FROM %s WHERE %s`, table, where)

	var raw string
	if err := s.db.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		return decimal.Zero, err
	}
	total, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse sum %q: %w", raw, err)
	}
	return total, nil
}

// List returns matching entries in insertion order.
func (s *PostgresStore) List(ctx context.Context, kind Kind, ownerID string, since time.Time) ([]Entry, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return []Entry{}, nil
	}
	where, args := filter(owner, since)
	query := fmt.Sprintf(`SELECT id, owner_id, amount::text, category, date, created_at
        FROM %s WHERE %s ORDER BY seq`, table, where)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var (
			id, ownerUUID   uuid.UUID
			amount          string
			date, createdAt time.Time
			e               Entry
		)
		if err := rows.Scan(&id, &ownerUUID, &amount, &e.Category, &date, &createdAt); err != nil {
			return nil, err
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		e.ID = id.String()
		e.OwnerID = ownerUUID.String()
		e.Kind = kind
		e.Date = date.UTC()
		e.CreatedAt = createdAt.UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func filter(owner uuid.UUID, since time.Time) (string, []any) {
	if since.IsZero() {
		return "owner_id = $1", []any{owner}
	}
	return "owner_id = $1 AND date >= $2", []any{owner, since.UTC()}
}
