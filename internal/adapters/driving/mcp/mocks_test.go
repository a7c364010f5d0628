package mcp

import (
	"context"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

// mockResolverService is a mock implementation of driving.ResolverService.
type mockResolverService struct {
	resolution *domain.Resolution
	ocr        *domain.OCRResolution
	err        error

	lastQuery string
	lastOCR   domain.OCRText
}

func (m *mockResolverService) Resolve(_ context.Context, query string) (*domain.Resolution, error) {
	m.lastQuery = query
	return m.resolution, m.err
}

func (m *mockResolverService) ResolveOCR(_ context.Context, text domain.OCRText) (*domain.OCRResolution, error) {
	m.lastOCR = text
	return m.ocr, m.err
}

// mockTextAnalyser is a mock implementation of driving.TextAnalyser.
type mockTextAnalyser struct {
	likelihood domain.Likelihood
}

func (m *mockTextAnalyser) ParseQuery(query string) domain.ParsedQuery {
	return domain.ParsedQuery{MedicineName: query, OriginalQuery: query}
}

func (m *mockTextAnalyser) AnalyseOCR(text domain.OCRText) domain.OCRAnalysis {
	return domain.OCRAnalysis{RawText: text.RawText}
}

func (m *mockTextAnalyser) Classify(_ string) domain.Likelihood {
	return m.likelihood
}

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	corpus *domain.Corpus
	names  []string
	err    error
}

func (m *mockCorpusService) Snapshot(_ context.Context) (*domain.Corpus, error) {
	return m.corpus, m.err
}

func (m *mockCorpusService) Reload(_ context.Context) (*domain.Corpus, error) {
	return m.corpus, m.err
}

func (m *mockCorpusService) MedicineNames(_ context.Context) ([]string, error) {
	return m.names, m.err
}

func (m *mockCorpusService) DataDir() string {
	return "/data"
}

func (m *mockCorpusService) IsLoaded() bool {
	return m.corpus != nil && !m.corpus.IsEmpty()
}

func panadolMatch() *domain.MatchResult {
	return &domain.MatchResult{
		BrandName:    "Panadol",
		GenericName:  "Paracetamol",
		Composition:  "Paracetamol 500mg",
		Uses:         "Pain relief, fever reduction",
		SideEffects:  "Nausea, allergic reactions (rare)",
		Manufacturer: "GSK Pakistan",
		Confidence:   1,
		Source:       domain.TabularSource(),
	}
}
