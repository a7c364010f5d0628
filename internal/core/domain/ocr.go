package domain

// OCRText is what the external OCR capability returns for an image.
type OCRText struct {
	RawText string `json:"raw_text"`

	// Confidence is the capability's own preliminary confidence.
	Confidence float64 `json:"confidence"`
}

// PatternType names a medicine-likelihood pattern category.
type PatternType string

// Pattern categories, in scoring order.
const (
	PatternDosage   PatternType = "dosage"
	PatternForm     PatternType = "form"
	PatternRoute    PatternType = "route"
	PatternPackage  PatternType = "package"
	PatternMedical  PatternType = "medical"
	PatternDrugName PatternType = "drug_name"
)

// PatternMatch records one category that matched the text.
type PatternMatch struct {
	Type PatternType `json:"type"`

	// Matches holds at most the first three matched fragments.
	Matches []string `json:"matches"`

	Weight float64 `json:"weight"`
}

// Likelihood is the verdict of the medicine-likelihood classifier.
type Likelihood struct {
	IsMedicine bool           `json:"is_medicine"`
	Confidence float64        `json:"confidence"`
	Patterns   []PatternMatch `json:"patterns"`
}

// PatternTypes returns the matched category names in order.
func (l Likelihood) PatternTypes() []string {
	out := make([]string, 0, len(l.Patterns))
	for _, p := range l.Patterns {
		out = append(out, string(p.Type))
	}
	return out
}

// OCRAnalysis is the result of post-processing raw OCR text.
type OCRAnalysis struct {
	MedicineName string         `json:"medicine_name"`
	RawText      string         `json:"raw_text"`
	IsMedicine   bool           `json:"is_medicine"`
	Confidence   float64        `json:"confidence"`
	Patterns     []PatternMatch `json:"patterns"`
}

// Likelihood returns the classifier verdict embedded in the analysis.
func (a OCRAnalysis) Likelihood() Likelihood {
	return Likelihood{IsMedicine: a.IsMedicine, Confidence: a.Confidence, Patterns: a.Patterns}
}

// ParsedQuery is a typed query after stop-word removal.
type ParsedQuery struct {
	MedicineName  string `json:"medicine_name"`
	OriginalQuery string `json:"original_query"`
}
