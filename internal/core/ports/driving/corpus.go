package driving

import (
	"context"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

// CorpusService owns the lifetime of the in-memory corpus.
type CorpusService interface {
	// Snapshot returns the current corpus, loading it on first use.
	Snapshot(ctx context.Context) (*domain.Corpus, error)

	// Reload builds a fresh corpus from the data directory and swaps it in.
	// In-flight readers keep the snapshot they already hold.
	Reload(ctx context.Context) (*domain.Corpus, error)

	// MedicineNames returns the distinct match keys of the tabular corpus.
	// Order is unspecified.
	MedicineNames(ctx context.Context) ([]string, error)

	// IsLoaded reports whether a corpus with records or documents is in use.
	IsLoaded() bool

	// DataDir returns the directory the corpus is loaded from.
	DataDir() string
}
