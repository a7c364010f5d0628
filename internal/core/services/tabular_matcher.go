package services

import (
	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/fuzzy"
	"github.com/custodia-labs/medlens/internal/logger"
)

// RecordMatcher finds the best tabular record for a candidate name.
type RecordMatcher interface {
	Match(candidate string, records []domain.MedicineRecord) *domain.MatchResult
}

// Ensure TabularMatcher implements the interface.
var _ RecordMatcher = (*TabularMatcher)(nil)

// TabularMatcher scores a candidate against every record's match key with
// the Indel ratio and keeps the best record at or above the threshold.
type TabularMatcher struct {
	threshold float64
}

// NewTabularMatcher creates a matcher with a 0-100 threshold.
func NewTabularMatcher(threshold int) *TabularMatcher {
	return &TabularMatcher{threshold: float64(threshold)}
}

// Match returns the best record as a MatchResult, or nil when no record
// reaches the threshold. Ties keep the earliest record.
func (m *TabularMatcher) Match(candidate string, records []domain.MedicineRecord) *domain.MatchResult {
	if len(records) == 0 {
		return nil
	}

	keys := make([]string, len(records))
	for i := range records {
		keys[i] = records[i].Key
	}

	idx, score := fuzzy.Best(candidate, keys, fuzzy.Ratio)
	if idx < 0 || score < m.threshold {
		logger.Debug("Tabular: best score %.1f below threshold %.0f", score, m.threshold)
		return nil
	}

	rec := records[idx]
	logger.Debug("Tabular: %q matched %q (score %.1f)", candidate, rec.Key, score)

	return &domain.MatchResult{
		BrandName:    firstNonEmpty(rec.BrandName, rec.Key, candidate, domain.NotAvailable),
		GenericName:  orNotAvailable(rec.GenericName),
		Composition:  orNotAvailable(rec.Composition),
		Uses:         orNotAvailable(rec.Uses),
		SideEffects:  orNotAvailable(rec.SideEffects),
		Manufacturer: orNotAvailable(rec.Manufacturer),
		Confidence:   domain.ClampConfidence(score / 100),
		Source:       domain.TabularSource(),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func orNotAvailable(v string) string {
	if v == "" {
		return domain.NotAvailable
	}
	return v
}
