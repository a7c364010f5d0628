package domain

import "fmt"

// SourceKind identifies which strategy produced a match.
type SourceKind string

// Match source kinds.
const (
	// SourceTabular is the structured medicine table.
	SourceTabular SourceKind = "tabular"

	// SourceDocument is an unstructured document.
	SourceDocument SourceKind = "document"
)

// MatchSource records where a MatchResult came from.
type MatchSource struct {
	Kind SourceKind `json:"kind"`

	// Filename is set for document matches.
	Filename string `json:"filename,omitempty"`
}

// TabularSource is the source of every tabular match.
func TabularSource() MatchSource {
	return MatchSource{Kind: SourceTabular}
}

// DocumentSource returns the source for a match found in the named document.
func DocumentSource(filename string) MatchSource {
	return MatchSource{Kind: SourceDocument, Filename: filename}
}

// String returns a display label for the source.
func (s MatchSource) String() string {
	switch s.Kind {
	case SourceTabular:
		return "Tabular Database"
	case SourceDocument:
		return fmt.Sprintf("Document: %s", s.Filename)
	default:
		return unknownDescription
	}
}

// MatchResult is the unit the resolver compares and returns.
// Unknown fields hold NotAvailable; BrandName is never empty.
type MatchResult struct {
	BrandName    string      `json:"brand_name"`
	GenericName  string      `json:"generic_name"`
	Composition  string      `json:"composition"`
	Uses         string      `json:"uses"`
	SideEffects  string      `json:"side_effects"`
	Manufacturer string      `json:"manufacturer"`
	Confidence   float64     `json:"confidence"`
	Source       MatchSource `json:"source"`
}

// ClampConfidence bounds a confidence value to [0,1].
func ClampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}

// UnresolvedShell is the all-N/A result handed to an explanation capability
// when nothing in the corpus matched. Confidence is zero.
func UnresolvedShell(candidate string) MatchResult {
	name := candidate
	if name == "" {
		name = NotAvailable
	}
	return MatchResult{
		BrandName:    name,
		GenericName:  NotAvailable,
		Composition:  NotAvailable,
		Uses:         NotAvailable,
		SideEffects:  NotAvailable,
		Manufacturer: NotAvailable,
	}
}
