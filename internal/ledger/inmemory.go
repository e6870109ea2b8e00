package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type inMemoryStore struct {
	mu      sync.RWMutex
	entries map[Kind][]Entry
}

// NewInMemory creates a concurrency-safe in-memory store useful for unit tests
// and local development.
func NewInMemory() Store {
	return &inMemoryStore{entries: make(map[Kind][]Entry)}
}

func (s *inMemoryStore) Insert(_ context.Context, entry Entry) error {
	if _, err := ParseKind(string(entry.Kind)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Kind] = append(s.entries[entry.Kind], entry)
	return nil
}

func (s *inMemoryStore) Sum(_ context.Context, kind Kind, ownerID string, since time.Time) (decimal.Decimal, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return decimal.Zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, e := range s.entries[kind] {
		if matches(e, ownerID, since) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (s *inMemoryStore) List(_ context.Context, kind Kind, ownerID string, since time.Time) ([]Entry, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0)
	for _, e := range s.entries[kind] {
		if matches(e, ownerID, since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func matches(e Entry, ownerID string, since time.Time) bool {
	if e.OwnerID != ownerID {
		return false
	}
	return since.IsZero() || !e.Date.Before(since)
}
