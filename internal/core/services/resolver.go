package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
	"github.com/custodia-labs/medlens/internal/core/ports/driving"
	"github.com/custodia-labs/medlens/internal/logger"
)

// Ensure ResolverService implements the interface.
var _ driving.ResolverService = (*ResolverService)(nil)

// ResolverService applies the tabular-first precedence rules over the
// current corpus snapshot. It holds no corpus state of its own.
type ResolverService struct {
	corpus       driving.CorpusService
	tabular      RecordMatcher
	documents    DocumentSearcher
	text         *TextService
	shortCircuit float64

	history driven.HistoryStore
	now     func() time.Time
}

// NewResolverService creates a resolver. shortCircuit is the tabular
// confidence above which document search is skipped.
func NewResolverService(
	corpus driving.CorpusService,
	tabular RecordMatcher,
	documents DocumentSearcher,
	text *TextService,
	shortCircuit float64,
) *ResolverService {
	if text == nil {
		text = NewTextService(domain.DefaultMedicineThreshold)
	}
	return &ResolverService{
		corpus:       corpus,
		tabular:      tabular,
		documents:    documents,
		text:         text,
		shortCircuit: shortCircuit,
		now:          time.Now,
	}
}

// SetHistoryStore enables recording of every resolution. Nil disables it.
func (s *ResolverService) SetHistoryStore(store driven.HistoryStore) {
	s.history = store
}

// ResolveName matches an already-normalised candidate name.
//
// A tabular match above the short-circuit confidence is returned without
// consulting documents. Otherwise both results are compared and the tabular
// one wins unless the document match is strictly more confident.
// Returns (nil, nil) when nothing clears its threshold.
func (s *ResolverService) ResolveName(ctx context.Context, candidate string) (*domain.MatchResult, error) {
	corpus, err := s.corpus.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveIn(corpus, candidate), nil
}

func (s *ResolverService) resolveIn(corpus *domain.Corpus, candidate string) *domain.MatchResult {
	if candidate == "" || corpus == nil {
		return nil
	}

	var tab *domain.MatchResult
	if corpus.HasTabular() {
		tab = s.tabular.Match(candidate, corpus.Medicines)
	}
	if tab != nil && tab.Confidence > s.shortCircuit {
		logger.Debug("Resolve %q: tabular %.2f short-circuits", candidate, tab.Confidence)
		return tab
	}

	var doc *domain.MatchResult
	if corpus.HasDocuments() {
		doc = s.documents.Match(candidate, corpus.Documents)
	}

	switch {
	case tab != nil && doc != nil:
		if doc.Confidence > tab.Confidence {
			return doc
		}
		return tab
	case tab != nil:
		return tab
	default:
		return doc
	}
}

// Resolve normalises a typed query and resolves the resulting candidate.
func (s *ResolverService) Resolve(ctx context.Context, query string) (*domain.Resolution, error) {
	parsed := s.text.ParseQuery(query)
	match, err := s.ResolveName(ctx, parsed.MedicineName)
	if err != nil {
		return nil, err
	}

	res := &domain.Resolution{
		Query:     query,
		Candidate: parsed.MedicineName,
		Match:     match,
	}
	s.record(ctx, res)
	return res, nil
}

// ResolveOCR extracts a candidate from OCR text and resolves it.
// An empty extracted name yields an unresolved result.
func (s *ResolverService) ResolveOCR(ctx context.Context, text domain.OCRText) (*domain.OCRResolution, error) {
	analysis := s.text.AnalyseOCR(text)

	match, err := s.ResolveName(ctx, analysis.MedicineName)
	if err != nil {
		return nil, err
	}

	res := &domain.OCRResolution{
		Analysis: analysis,
		Resolution: domain.Resolution{
			Query:     text.RawText,
			Candidate: analysis.MedicineName,
			Match:     match,
		},
	}
	s.record(ctx, &res.Resolution)
	return res, nil
}

func (s *ResolverService) record(ctx context.Context, res *domain.Resolution) {
	if s.history == nil {
		return
	}
	rec := domain.NewResolutionRecord(uuid.New().String(), res, s.now())
	if err := s.history.Save(ctx, rec); err != nil {
		logger.Warn("Could not record resolution history: %v", err)
	}
}

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is used when a caller asks for a non-positive count.
const DefaultHistoryLimit = 20

// HistoryService reads past resolutions.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a history service. A nil store reports
// ErrHistoryUnavailable.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to limit records, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.ResolutionRecord, error) {
	if s.store == nil {
		return nil, domain.ErrHistoryUnavailable
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.store.Recent(ctx, limit)
}
