package driving

import (
	"context"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

// ResolverService turns free text into a single medicine match.
type ResolverService interface {
	// Resolve normalises a typed query and resolves the candidate name.
	// An unresolved query returns a Resolution with a nil Match, not an error.
	Resolve(ctx context.Context, query string) (*domain.Resolution, error)

	// ResolveOCR analyses raw OCR text, extracts a candidate name and resolves it.
	ResolveOCR(ctx context.Context, text domain.OCRText) (*domain.OCRResolution, error)
}

// TextAnalyser exposes the deterministic text-cleaning functions.
type TextAnalyser interface {
	// ParseQuery strips filler words from a typed query.
	ParseQuery(query string) domain.ParsedQuery

	// AnalyseOCR extracts a candidate name and a medicine likelihood from OCR text.
	AnalyseOCR(text domain.OCRText) domain.OCRAnalysis

	// Classify scores how likely text is to describe a medicine.
	Classify(text string) domain.Likelihood
}
