package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore keeps resolution records in memory.
type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.ResolutionRecord
}

// NewHistoryStore creates an empty in-memory history.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Save stores a record, replacing any earlier record with the same ID.
func (s *HistoryStore) Save(_ context.Context, rec domain.ResolutionRecord) error {
	if rec.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == rec.ID {
			s.records[i] = rec
			return nil
		}
	}
	s.records = append(s.records, rec)
	return nil
}

// Recent returns up to limit records, newest first.
func (s *HistoryStore) Recent(_ context.Context, limit int) ([]domain.ResolutionRecord, error) {
	s.mu.RLock()
	out := make([]domain.ResolutionRecord, len(s.records))
	copy(out, s.records)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close is a no-op.
func (s *HistoryStore) Close() error {
	return nil
}
