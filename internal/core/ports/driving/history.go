package driving

import (
	"context"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

// HistoryService exposes past resolutions.
type HistoryService interface {
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.ResolutionRecord, error)
}
