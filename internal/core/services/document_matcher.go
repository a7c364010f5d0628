package services

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/fuzzy"
	"github.com/custodia-labs/medlens/internal/logger"
)

// Sentinels used for fields a document match cannot supply.
const (
	documentGenericName = "Information from document"
	documentSideEffects = "Refer to full document"
	snippetEllipsis     = "..."
)

// DocumentSearcher finds the best document context for a candidate name.
type DocumentSearcher interface {
	Match(candidate string, docs []domain.DocumentRecord) *domain.MatchResult
}

// Ensure DocumentMatcher implements the interface.
var _ DocumentSearcher = (*DocumentMatcher)(nil)

// DocumentMatcher locates a candidate name in document text and scores the
// surrounding window with the partial ratio.
type DocumentMatcher struct {
	threshold     float64
	before, after int
	snippet       int
}

// NewDocumentMatcher creates a matcher from the match settings.
func NewDocumentMatcher(settings domain.MatchSettings) *DocumentMatcher {
	return &DocumentMatcher{
		threshold: float64(settings.DocumentThreshold),
		before:    settings.WindowBefore,
		after:     settings.WindowAfter,
		snippet:   settings.SnippetLength,
	}
}

// Match returns the highest-scoring window across all documents, or nil
// when no document contains the name or the best score does not exceed
// the threshold. The first document wins ties.
func (m *DocumentMatcher) Match(candidate string, docs []domain.DocumentRecord) *domain.MatchResult {
	if candidate == "" || len(docs) == 0 {
		return nil
	}

	needle := strings.ToLower(candidate)
	var best *domain.MatchResult
	bestScore := 0.0

	for i := range docs {
		window, ok := ContextWindow(docs[i].Content, needle, m.before, m.after)
		if !ok {
			continue
		}
		score := fuzzy.PartialRatio(candidate, window)
		logger.Debug("Document %s: window score %.1f", docs[i].Filename, score)
		if score <= bestScore {
			continue
		}
		bestScore = score
		best = &domain.MatchResult{
			BrandName:    titleCase(candidate),
			GenericName:  documentGenericName,
			Composition:  domain.NotAvailable,
			Uses:         truncateRunes(window, m.snippet) + snippetEllipsis,
			SideEffects:  documentSideEffects,
			Manufacturer: domain.NotAvailable,
			Confidence:   domain.ClampConfidence(score / 100),
			Source:       domain.DocumentSource(docs[i].Filename),
		}
	}

	if best == nil || bestScore <= m.threshold {
		return nil
	}
	return best
}

// ContextWindow finds the first case-insensitive occurrence of needle in
// content and returns the lower-cased text from before runes ahead of it to
// after runes past its start, clamped to the content bounds. needle must
// already be lower-case.
func ContextWindow(content, needle string, before, after int) (string, bool) {
	if needle == "" {
		return "", false
	}
	lowered := strings.ToLower(content)
	byteIdx := strings.Index(lowered, needle)
	if byteIdx < 0 {
		return "", false
	}

	runes := []rune(lowered)
	idx := utf8.RuneCountInString(lowered[:byteIdx])
	start := max(0, idx-before)
	end := min(len(runes), idx+after)
	return string(runes[start:end]), true
}
