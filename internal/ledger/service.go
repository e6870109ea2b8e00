package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/finance_tracker/internal/apperr"
)

const (
	CodeInvalidKind      = "InvalidKind"
	CodeInvalidAmount    = "InvalidAmount"
	CodeCategoryRequired = "CategoryRequired"
	CodeOwnerRequired    = "OwnerRequired"
)

// Amounts are stored as NUMERIC(14,2).
const amountScale = 2

var (
	validate = validator.New()

	maxAmount = decimal.New(1, 12)
)

// RecordInput captures a new income or expense.
type RecordInput struct {
	OwnerID  string `validate:"required"`
	Kind     Kind   `validate:"required,oneof=income expense"`
	Amount   decimal.Decimal
	Category string `validate:"required"`
	Date     time.Time
}

// RecordHook runs after an entry has been stored.
type RecordHook func(ctx context.Context, entry Entry)

// Service aggregates entries for reporting and accepts new ones.
type Service struct {
	store Store
	now   func() time.Time

	mu    sync.RWMutex
	hooks []RecordHook
}

// NewService builds a ledger service over store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// OnRecord registers a hook invoked after every successful Record.
func (s *Service) OnRecord(hook RecordHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Record validates and stores a new entry. Date defaults to now.
func (s *Service) Record(ctx context.Context, in RecordInput) (Entry, error) {
	in.Category = strings.TrimSpace(in.Category)
	if err := validate.Struct(in); err != nil {
		return Entry{}, validationError(err)
	}
	if err := checkAmount(in.Amount); err != nil {
		return Entry{}, err
	}

	now := s.now().UTC()
	if in.Date.IsZero() {
		in.Date = now
	}
	entry := Entry{
		ID:        uuid.NewString(),
		OwnerID:   in.OwnerID,
		Kind:      in.Kind,
		Amount:    in.Amount,
		Category:  in.Category,
		Date:      in.Date,
		CreatedAt: now,
	}
	if err := s.store.Insert(ctx, entry); err != nil {
		return Entry{}, apperr.Internal(fmt.Errorf("insert %s: %w", entry.Kind, err))
	}

	s.mu.RLock()
	hooks := s.hooks
	s.mu.RUnlock()
	for _, hook := range hooks {
		hook(ctx, entry)
	}
	return entry, nil
}

// Sum totals the owner's entries of kind dated at or after since. No matches is zero.
func (s *Service) Sum(ctx context.Context, kind Kind, ownerID string, since time.Time) (decimal.Decimal, error) {
	total, err := s.store.Sum(ctx, kind, ownerID, since)
	if err != nil {
		return decimal.Zero, storeError("sum", kind, err)
	}
	return total, nil
}

// List returns the owner's entries of kind dated at or after since, in insertion order.
func (s *Service) List(ctx context.Context, kind Kind, ownerID string, since time.Time) ([]Entry, error) {
	entries, err := s.store.List(ctx, kind, ownerID, since)
	if err != nil {
		return nil, storeError("list", kind, err)
	}
	return entries, nil
}

// Totals is an owner's all-time income and expense sums.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Net is income minus expenses.
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expenses)
}

// Totals sums both ledgers for ownerID over all time.
func (s *Service) Totals(ctx context.Context, ownerID string) (Totals, error) {
	income, err := s.Sum(ctx, KindIncome, ownerID, time.Time{})
	if err != nil {
		return Totals{}, err
	}
	expenses, err := s.Sum(ctx, KindExpense, ownerID, time.Time{})
	if err != nil {
		return Totals{}, err
	}
	return Totals{Income: income, Expenses: expenses}, nil
}

// checkAmount accepts only amounts the NUMERIC(14,2) column stores exactly.
func checkAmount(amount decimal.Decimal) error {
	switch {
	case amount.IsNegative():
		return apperr.Validation(CodeInvalidAmount)
	case !amount.Equal(amount.Truncate(amountScale)):
		return apperr.Validation(CodeInvalidAmount)
	case amount.GreaterThanOrEqual(maxAmount):
		return apperr.Validation(CodeInvalidAmount)
	}
	return nil
}

func storeError(op string, kind Kind, err error) error {
	if errors.Is(err, ErrUnknownKind) {
		return apperr.Validation(CodeInvalidKind).Wrap(err)
	}
	return apperr.Internal(fmt.Errorf("%s %s: %w", op, kind, err))
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "Kind":
			return apperr.Validation(CodeInvalidKind).Wrap(err)
		case "Category":
			return apperr.Validation(CodeCategoryRequired).Wrap(err)
		case "OwnerID":
			return apperr.Validation(CodeOwnerRequired).Wrap(err)
		}
	}
	return apperr.Validation("InvalidEntry").Wrap(err)
}
