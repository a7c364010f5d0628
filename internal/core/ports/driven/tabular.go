package driven

import (
	"context"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

// TabularReader parses one structured file into a Table.
// Each reader handles specific file extensions (e.g., .csv, .xlsx).
type TabularReader interface {
	// SupportedExtensions returns the lower-case extensions, dot included.
	SupportedExtensions() []string

	// Read parses the file. Column names in the result are normalised
	// (lower-cased, spaces replaced by underscores). A file that cannot be
	// parsed returns an error wrapping domain.ErrSourceUnreadable.
	Read(ctx context.Context, file domain.SourceFile) (*domain.Table, error)
}
