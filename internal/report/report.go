// Package report builds time-windowed income/expense reports and the home
// summary.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/finance_tracker/internal/apperr"
	"github.com/finance-tracker/finance_tracker/internal/cache"
	"github.com/finance-tracker/finance_tracker/internal/identity"
	"github.com/finance-tracker/finance_tracker/internal/ledger"
)

const (
	TypeYearly  = "yearly"
	TypeMonthly = "monthly"
	TypeWeekly  = "weekly"

	CodeInvalidReportType = "InvalidReportType"
	CodeUserNotFound      = "UserNotFound"
)

// Window is the reporting interval; End is the time it was resolved.
type Window struct {
	Type  string
	Start time.Time
	End   time.Time
}

// Report lists the entries of both kinds inside a window.
type Report struct {
	Type     string         `json:"type"`
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Incomes  []ledger.Entry `json:"incomes"`
	Expenses []ledger.Entry `json:"expenses"`
}

// Summary is the home view: all-time totals for one user.
type Summary struct {
	Name          string          `json:"name"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for window boundaries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSummaryCache caches home summaries until the owner records a new entry.
func WithSummaryCache(c *cache.ViewCache[Summary]) Option {
	return func(s *Service) { s.summaries = c }
}

// Service is the report engine.
type Service struct {
	entries   *ledger.Service
	users     identity.Repository
	summaries *cache.ViewCache[Summary]
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(entries *ledger.Service, users identity.Repository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		entries: entries,
		users:   users,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Window resolves reportType against the current time. Calendar boundaries
// are taken in the clock's location.
func (s *Service) Window(reportType string) (Window, error) {
	now := s.now()
	var start time.Time
	switch reportType {
	case TypeYearly:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case TypeMonthly:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case TypeWeekly:
		start = now.Add(-7 * 24 * time.Hour)
	default:
		return Window{}, apperr.Validation(CodeInvalidReportType)
	}
	return Window{Type: reportType, Start: start, End: now}, nil
}

// Generate lists the user's incomes and expenses dated at or after the
// window start.
func (s *Service) Generate(ctx context.Context, userID, reportType string) (Report, error) {
	w, err := s.Window(reportType)
	if err != nil {
		return Report{}, err
	}

	var incomes, expenses []ledger.Entry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incomes, err = s.entries.List(gctx, ledger.KindIncome, userID, w.Start)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.entries.List(gctx, ledger.KindExpense, userID, w.Start)
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	return Report{
		Type:     w.Type,
		Start:    w.Start,
		End:      w.End,
		Incomes:  nonNil(incomes),
		Expenses: nonNil(expenses),
	}, nil
}

// Summary returns the user's name with all-time totals.
func (s *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	if s.summaries != nil {
		if cached, ok := s.summaries.Get(ctx, userID); ok {
			return cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return Summary{}, apperr.NotFound(CodeUserNotFound)
		}
		return Summary{}, apperr.Internal(fmt.Errorf("lookup user: %w", err))
	}

	totals, err := s.entries.Totals(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{
		Name:          user.Name,
		TotalAmount:   totals.Net(),
		TotalIncome:   totals.Income,
		TotalExpenses: totals.Expenses,
	}

	if s.summaries != nil {
		s.summaries.Set(ctx, userID, summary)
	}
	return summary, nil
}

// InvalidateSummary drops the cached summary of the entry's owner. It has the
// shape of a ledger.RecordHook.
func (s *Service) InvalidateSummary(ctx context.Context, entry ledger.Entry) {
	if s.summaries == nil {
		return
	}
	s.summaries.Delete(ctx, entry.OwnerID)
	s.logger.Debug("summary invalidated", slog.String("user_id", entry.OwnerID))
}

func nonNil(entries []ledger.Entry) []ledger.Entry {
	if entries == nil {
		return []ledger.Entry{}
	}
	return entries
}
