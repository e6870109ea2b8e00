package ledger

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/finance_tracker/internal/identity"
	"github.com/finance-tracker/finance_tracker/internal/infra"
)

// postgresStore returns a store and a freshly created owner, skipping the
// test when DATABASE_URL is unset.
func postgresStore(t *testing.T) (*PostgresStore, string) {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := infra.NewPostgresPool(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, infra.EnsureSchema(ctx, pool))

	owner := uuid.NewString()
	require.NoError(t, identity.NewPostgresRepository(pool).Create(ctx, identity.User{
		ID: owner, Name: "Ada", Email: owner + "@example.com", PasswordHash: "x", CreatedAt: time.Now(),
	}))
	t.Cleanup(func() { cleanupOwner(pool, owner) })
	return NewPostgresStore(pool), owner
}

func cleanupOwner(pool *pgxpool.Pool, owner string) {
	_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, owner)
}

func insertEntry(t *testing.T, store Store, owner string, kind Kind, amount string, date time.Time) Entry {
	t.Helper()
	e := Entry{
		ID:        uuid.NewString(),
		OwnerID:   owner,
		Kind:      kind,
		Amount:    decimal.RequireFromString(amount),
		Category:  "misc",
		Date:      date.UTC().Truncate(time.Microsecond),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, store.Insert(context.Background(), e))
	return e
}

func TestPostgresStoreSumAndListFilterSince(t *testing.T) {
	store, owner := postgresStore(t)
	ctx := context.Background()
	cutoff := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	late := insertEntry(t, store, owner, KindExpense, "10.25", cutoff.Add(48*time.Hour))
	insertEntry(t, store, owner, KindExpense, "20", cutoff.Add(-time.Second))
	boundary := insertEntry(t, store, owner, KindExpense, "30", cutoff)
	insertEntry(t, store, owner, KindIncome, "500", cutoff)

	entries, err := store.List(ctx, KindExpense, owner, cutoff)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, late.ID, entries[0].ID)
	assert.Equal(t, boundary.ID, entries[1].ID)
	assert.Equal(t, late.Date, entries[0].Date)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("10.25")))
	assert.Equal(t, KindExpense, entries[0].Kind)

	total, err := store.Sum(ctx, KindExpense, owner, cutoff)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("40.25")), "got %s", total)

	all, err := store.Sum(ctx, KindExpense, owner, time.Time{})
	require.NoError(t, err)
	assert.True(t, all.Equal(decimal.RequireFromString("60.25")), "got %s", all)
}

func TestPostgresStoreEmptyAndUnknownOwner(t *testing.T) {
	store, owner := postgresStore(t)
	ctx := context.Background()

	total, err := store.Sum(ctx, KindIncome, owner, time.Time{})
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	entries, err := store.List(ctx, KindIncome, "not-a-uuid", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = store.Insert(ctx, Entry{ID: uuid.NewString(), OwnerID: owner, Kind: "gift"})
	assert.ErrorIs(t, err, ErrUnknownKind)
}
