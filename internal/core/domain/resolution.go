package domain

import "time"

// Resolution is the outcome of resolving one query.
// Match is nil when neither strategy cleared its threshold.
type Resolution struct {
	Query     string       `json:"query"`
	Candidate string       `json:"candidate"`
	Match     *MatchResult `json:"match"`
}

// Resolved reports whether a match was found.
func (r *Resolution) Resolved() bool {
	return r != nil && r.Match != nil
}

// ExplanationInput returns the match, or the N/A shell when unresolved.
func (r *Resolution) ExplanationInput() MatchResult {
	if r.Resolved() {
		return *r.Match
	}
	if r == nil {
		return UnresolvedShell("")
	}
	return UnresolvedShell(r.Candidate)
}

// OCRResolution pairs an OCR analysis with the resolution of its extracted name.
type OCRResolution struct {
	Analysis   OCRAnalysis `json:"analysis"`
	Resolution Resolution  `json:"resolution"`
}

// ResolutionRecord is one persisted resolution attempt.
type ResolutionRecord struct {
	ID         string
	Query      string
	Candidate  string
	BrandName  string
	Confidence float64
	Source     string
	Resolved   bool
	CreatedAt  time.Time
}

// NewResolutionRecord flattens a resolution for storage.
func NewResolutionRecord(id string, r *Resolution, at time.Time) ResolutionRecord {
	rec := ResolutionRecord{
		ID:        id,
		Query:     r.Query,
		Candidate: r.Candidate,
		CreatedAt: at,
	}
	if r.Match != nil {
		rec.BrandName = r.Match.BrandName
		rec.Confidence = r.Match.Confidence
		rec.Source = r.Match.Source.String()
		rec.Resolved = true
	}
	return rec
}
