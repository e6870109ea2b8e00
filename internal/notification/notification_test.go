package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/finance_tracker/internal/ledger"
	"github.com/finance-tracker/finance_tracker/internal/logging"
)

type recordingNotifier struct {
	sent []Message
	err  error
}

func (r *recordingNotifier) Send(_ context.Context, m Message) error {
	r.sent = append(r.sent, m)
	return r.err
}

func TestOnEntryRecordedNotifiesOwner(t *testing.T) {
	n := &recordingNotifier{}
	svc := ledger.NewService(ledger.NewInMemory())
	svc.OnRecord(OnEntryRecorded(n, logging.Discard()))

	_, err := svc.Record(context.Background(), ledger.RecordInput{
		OwnerID: "u1", Kind: ledger.KindExpense, Amount: decimal.RequireFromString("12.5"), Category: "food", Date: time.Now(),
	})
	require.NoError(t, err)

	require.Len(t, n.sent, 1)
	assert.Equal(t, KindEntryRecorded, n.sent[0].Kind)
	assert.Equal(t, "u1", n.sent[0].Destination)
	assert.Equal(t, "expense of 12.50 recorded under food", n.sent[0].Body)
}

func TestOnEntryRecordedIgnoresDeliveryFailure(t *testing.T) {
	n := &recordingNotifier{err: errors.New("smtp down")}
	svc := ledger.NewService(ledger.NewInMemory())
	svc.OnRecord(OnEntryRecorded(n, logging.Discard()))

	_, err := svc.Record(context.Background(), ledger.RecordInput{
		OwnerID: "u1", Kind: ledger.KindIncome, Amount: decimal.NewFromInt(1), Category: "gift",
	})
	assert.NoError(t, err)
	assert.Len(t, n.sent, 1)
}

func TestLoggerNotifierNilSafe(t *testing.T) {
	var n *LoggerNotifier
	assert.NoError(t, n.Send(context.Background(), Message{Kind: KindEntryRecorded}))
	assert.NoError(t, NewLoggerNotifier(logging.Discard()).Send(context.Background(), Message{Kind: KindEntryRecorded}))
}
