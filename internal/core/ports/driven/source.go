package driven

import (
	"context"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

// SourceScanner lists the corpus files in a directory.
type SourceScanner interface {
	// Scan returns every readable corpus file in dir, sorted by name.
	// A missing directory is reported with an error satisfying os.IsNotExist.
	Scan(ctx context.Context, dir string) ([]domain.SourceFile, error)
}

// SourceWatcher reports changes to corpus files.
type SourceWatcher interface {
	// Watch streams changes under dir until ctx is cancelled.
	// The channel is closed when watching stops.
	Watch(ctx context.Context, dir string) (<-chan domain.SourceChange, error)

	// Close releases watcher resources.
	Close() error
}
