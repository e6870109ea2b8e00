// Package notification publishes user-facing activity events.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/finance_tracker/internal/ledger"
)

const (
	// KindEntryRecorded is sent whenever an income or expense is stored.
	KindEntryRecorded = "entry_recorded"
)

// Message describes a notification payload. Destination is the user id.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes notifications to the structured logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification",
		slog.String("kind", message.Kind),
		slog.String("destination", message.Destination),
		slog.String("body", message.Body),
	)
	return nil
}

// OnEntryRecorded returns a ledger hook that notifies the owner of each new
// entry. Delivery failures are logged and never fail the write.
func OnEntryRecorded(n Notifier, logger *slog.Logger) ledger.RecordHook {
	return func(ctx context.Context, entry ledger.Entry) {
		msg := Message{
			Kind:        KindEntryRecorded,
			Destination: entry.OwnerID,
			Body:        fmt.Sprintf("%s of %s recorded under %s", entry.Kind, entry.Amount.StringFixed(2), entry.Category),
		}
		if err := n.Send(ctx, msg); err != nil {
			logger.Warn("notification delivery failed",
				slog.String("kind", msg.Kind),
				slog.String("user_id", entry.OwnerID),
				slog.Any("error", err),
			)
		}
	}
}
