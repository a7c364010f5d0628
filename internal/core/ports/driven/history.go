package driven

import (
	"context"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

// HistoryStore persists resolution attempts.
type HistoryStore interface {
	// Save records one resolution attempt.
	Save(ctx context.Context, rec domain.ResolutionRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.ResolutionRecord, error)

	// Close releases resources.
	Close() error
}
