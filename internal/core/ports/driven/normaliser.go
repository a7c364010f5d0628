package driven

import (
	"context"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

// DocumentNormaliser extracts the full text of an unstructured document.
// Each normaliser handles specific file extensions (e.g., .pdf, .txt).
type DocumentNormaliser interface {
	// SupportedExtensions returns the lower-case extensions, dot included.
	SupportedExtensions() []string

	// Normalise extracts the document text, pages concatenated in order.
	Normalise(ctx context.Context, file domain.SourceFile) (*domain.DocumentRecord, error)
}
