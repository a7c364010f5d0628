package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driving"
)

// Ensure TextService implements the interface.
var _ driving.TextAnalyser = (*TextService)(nil)

const (
	// minClassifiableLength is the shortest trimmed text the classifier scores.
	minClassifiableLength = 10

	// userIntentConfidence is assigned to OCR text that matched no pattern
	// but was still long enough to have come from a medicine package.
	userIntentConfidence = 0.5

	// patternSampleSize caps the fragments recorded per matched category.
	patternSampleSize = 3

	// thresholdEpsilon absorbs float error when summed weights land on the threshold.
	thresholdEpsilon = 1e-9
)

type likelihoodPattern struct {
	kind   domain.PatternType
	weight float64
	re     *regexp.Regexp
}

// likelihoodPatterns are scored in order; weights sum to 1.0.
var likelihoodPatterns = []likelihoodPattern{
	{domain.PatternDosage, 0.25, regexp.MustCompile(`(?i)\b\d+\s*(mg|ml|mcg|g|L|IU|units?)\b`)},
	{domain.PatternForm, 0.20, regexp.MustCompile(
		`(?i)\b(tablet|capsule|syrup|injection|cream|ointment|gel|drops|suspension|solution|powder|spray|inhaler|patch)\b`)},
	{domain.PatternRoute, 0.15, regexp.MustCompile(
		`(?i)\b(oral|topical|intravenous|intramuscular|subcutaneous|transdermal)\b`)},
	{domain.PatternPackage, 0.15, regexp.MustCompile(`(?i)\b(expiry|exp\.?|mfg\.?|batch|lot)\s*:?\s*\d+`)},
	{domain.PatternMedical, 0.15, regexp.MustCompile(`(?i)\b(pharmaceutical|pharma|medicine|medication|drug|rx|℞)\b`)},
	{domain.PatternDrugName, 0.10, regexp.MustCompile(
		`(?i)\b(paracetamol|aspirin|ibuprofen|amoxicillin|metformin|omeprazole)\b`)},
}

// captures returns up to n matches of re in text, reporting the first
// capture group of each match rather than the whole match.
func captures(re *regexp.Regexp, text string, n int) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, n) {
		if len(m) > 1 {
			out = append(out, m[1])
		} else {
			out = append(out, m[0])
		}
	}
	return out
}

// ClassifyMedicineLikelihood scores text against the default medicine threshold.
func ClassifyMedicineLikelihood(text string) domain.Likelihood {
	return classify(text, domain.DefaultMedicineThreshold)
}

func classify(text string, threshold float64) domain.Likelihood {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minClassifiableLength {
		return domain.Likelihood{Patterns: []domain.PatternMatch{}}
	}

	patterns := []domain.PatternMatch{}
	confidence := 0.0
	for _, p := range likelihoodPatterns {
		found := captures(p.re, text, patternSampleSize)
		if len(found) == 0 {
			continue
		}
		patterns = append(patterns, domain.PatternMatch{
			Type:    p.kind,
			Matches: found,
			Weight:  p.weight,
		})
		confidence += p.weight
	}
	if confidence > 1 {
		confidence = 1
	}

	return domain.Likelihood{
		IsMedicine: confidence+thresholdEpsilon >= threshold,
		Confidence: confidence,
		Patterns:   patterns,
	}
}

// TextService bundles the deterministic text functions behind the
// TextAnalyser port, using the configured medicine threshold.
type TextService struct {
	medicineThreshold float64
}

// NewTextService creates a text service. A non-positive threshold selects the default.
func NewTextService(medicineThreshold float64) *TextService {
	if medicineThreshold <= 0 {
		medicineThreshold = domain.DefaultMedicineThreshold
	}
	return &TextService{medicineThreshold: medicineThreshold}
}

// ParseQuery strips filler words from a typed query.
func (s *TextService) ParseQuery(query string) domain.ParsedQuery {
	return ParseQuery(query)
}

// Classify scores how likely text is to describe a medicine.
func (s *TextService) Classify(text string) domain.Likelihood {
	return classify(text, s.medicineThreshold)
}

// AnalyseOCR post-processes raw OCR text.
//
// Text shorter than ten characters is treated as a failed recognition and
// yields no name. Longer text that matches no medicine pattern is still
// treated as medicine, since the user chose to photograph it.
func (s *TextService) AnalyseOCR(text domain.OCRText) domain.OCRAnalysis {
	raw := text.RawText
	analysis := domain.OCRAnalysis{
		RawText:  raw,
		Patterns: []domain.PatternMatch{},
	}
	if utf8.RuneCountInString(strings.TrimSpace(raw)) < minClassifiableLength {
		return analysis
	}

	likelihood := s.Classify(raw)
	analysis.IsMedicine = likelihood.IsMedicine
	analysis.Confidence = likelihood.Confidence
	analysis.Patterns = likelihood.Patterns
	if !analysis.IsMedicine {
		analysis.IsMedicine = true
		analysis.Confidence = userIntentConfidence
	}

	analysis.MedicineName = ExtractNameFromOCR(raw, SplitLines(raw))
	return analysis
}
