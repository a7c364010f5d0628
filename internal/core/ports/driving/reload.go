package driving

import (
	"context"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

// ReloadService keeps the corpus in step with the data directory.
type ReloadService interface {
	// Watch reloads the corpus whenever corpus files change, until ctx is cancelled.
	Watch(ctx context.Context) error

	// OnReload registers a callback run after every successful reload.
	OnReload(fn func(*domain.Corpus))
}
