package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownKind is returned for a kind other than income or expense.
var ErrUnknownKind = errors.New("unknown entry kind")

// Kind distinguishes the two parallel entry ledgers.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindIncome, KindExpense:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Entry is a single income or expense record owned by a user.
type Entry struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"-"`
	Kind      Kind            `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Store is the persistence contract for entries. A zero since means no lower
// bound; otherwise only entries with Date >= since match. List returns entries
// in insertion order.
type Store interface {
	Insert(ctx context.Context, entry Entry) error
	Sum(ctx context.Context, kind Kind, ownerID string, since time.Time) (decimal.Decimal, error)
	List(ctx context.Context, kind Kind, ownerID string, since time.Time) ([]Entry, error)
}
