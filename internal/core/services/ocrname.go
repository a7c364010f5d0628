package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/medlens/internal/logger"
)

const (
	// ocrScanLines is how many leading non-empty lines the line scan examines.
	ocrScanLines = 5

	// ocrMinName and ocrMaxName bound an accepted line-scan candidate, in runes.
	ocrMinName = 2
	ocrMaxName = 30

	// ocrKeywordLimit caps how many tokens the keyword fallback joins.
	ocrKeywordLimit = 3

	// ocrFirstLineLimit caps the first-line fallback, in runes.
	ocrFirstLineLimit = 50
)

// ocrFilterWords is packaging, legal and medical boilerplate that never forms
// part of a brand name.
var ocrFilterWords = map[string]struct{}{
	"tablet": {}, "tablets": {}, "capsule": {}, "capsules": {}, "syrup": {}, "injection": {},
	"cream": {}, "ointment": {}, "gel": {}, "drops": {}, "suspension": {}, "solution": {},
	"powder": {}, "spray": {}, "inhaler": {}, "patch": {}, "mg": {}, "ml": {}, "mcg": {}, "gm": {},
	"each": {}, "pack": {}, "strip": {}, "box": {}, "bottle": {}, "contains": {}, "composition": {},
	"expiry": {}, "exp": {}, "mfg": {}, "batch": {}, "lot": {}, "date": {}, "pharmaceutical": {},
	"pharma": {}, "pvt": {}, "ltd": {}, "limited": {}, "pakistan": {}, "india": {}, "usa": {},
	"made": {}, "manufactured": {}, "by": {}, "company": {}, "laboratories": {}, "lab": {},
	"prescription": {}, "only": {}, "medicine": {}, "drug": {}, "store": {}, "between": {},
	"keep": {}, "out": {}, "reach": {}, "children": {}, "doctor": {}, "pharmacist": {},
}

// manufacturerIndicators mark a line as the manufacturer's rather than the product's.
var manufacturerIndicators = []string{"pvt", "ltd", "limited", "laboratories", "pharma"}

var (
	bareDosageLine   = regexp.MustCompile(`(?i)^\d+\s*(mg|ml|mcg|g|%)`)
	hasUppercase     = regexp.MustCompile(`[A-Z]`)
	dosageToken      = regexp.MustCompile(`(?i)\d+\.?\d*\s*(mg|ml|mcg|g|gm|gram|%|iu|unit)`)
	packCount        = regexp.MustCompile(`\d+\s*[x×]\s*\d+`)
	trailingCount    = regexp.MustCompile(`\d+['s]*$`)
	strayPunctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s/&+-]`)
	standaloneNumber = regexp.MustCompile(`\b\d+\b`)
	unitLikeToken    = regexp.MustCompile(`^\d+[a-z]*$`)
	nonWordOrHyphen  = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
)

// SplitLines returns the trimmed, non-empty lines of raw text.
func SplitLines(raw string) []string {
	parts := strings.Split(raw, "\n")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}

// ExtractNameFromOCR derives a candidate medicine name from recognised text.
//
// Strategies run in decreasing order of specificity and the first that
// produces a name wins:
//
//  1. Line scan: the first qualifying line among the leading five, with
//     dosage, pack counts, punctuation and boilerplate removed.
//  2. Keyword fallback: up to three meaningful tokens from the whole text.
//  3. First line: the first line with punctuation and numbers removed.
func ExtractNameFromOCR(rawText string, lines []string) string {
	nonEmpty := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			nonEmpty = append(nonEmpty, l)
		}
	}

	name := nameFromLines(nonEmpty)
	if name == "" {
		name = nameFromKeywords(rawText)
		if name != "" {
			logger.Debug("OCR name from keywords: %q", name)
		}
	}
	if name == "" && len(nonEmpty) > 0 {
		name = nameFromFirstLine(nonEmpty[0])
		logger.Debug("OCR name from first line: %q", name)
	}
	return collapseSpaces(name)
}

func nameFromLines(lines []string) string {
	if len(lines) > ocrScanLines {
		lines = lines[:ocrScanLines]
	}
	for i, line := range lines {
		if utf8.RuneCountInString(line) < 2 {
			continue
		}
		if bareDosageLine.MatchString(line) {
			continue
		}
		if isManufacturerLine(line) {
			continue
		}
		if !hasUppercase.MatchString(line) && i >= 2 {
			continue
		}

		candidate := cleanOCRLine(line)
		if n := utf8.RuneCountInString(candidate); n >= ocrMinName && n <= ocrMaxName {
			logger.Debug("OCR name from line %d: %q", i+1, candidate)
			return candidate
		}
	}
	return ""
}

func isManufacturerLine(line string) bool {
	lower := strings.ToLower(line)
	for _, w := range manufacturerIndicators {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func cleanOCRLine(line string) string {
	cleaned := dosageToken.ReplaceAllString(line, "")
	cleaned = packCount.ReplaceAllString(cleaned, "")
	cleaned = trailingCount.ReplaceAllString(cleaned, "")
	cleaned = strayPunctuation.ReplaceAllString(cleaned, " ")
	cleaned = standaloneNumber.ReplaceAllString(cleaned, "")

	words := strings.Fields(cleaned)
	kept := words[:0]
	for _, w := range words {
		if isFilterWord(w) || utf8.RuneCountInString(w) <= 1 || isAllDigits(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

func nameFromKeywords(rawText string) string {
	var kept []string
	for _, w := range strings.Fields(rawText) {
		if utf8.RuneCountInString(w) <= 2 || isAllDigits(w) || isFilterWord(w) {
			continue
		}
		if unitLikeToken.MatchString(strings.ToLower(w)) {
			continue
		}
		kept = append(kept, w)
		if len(kept) == ocrKeywordLimit {
			break
		}
	}
	return strings.Join(kept, " ")
}

func nameFromFirstLine(line string) string {
	cleaned := nonWordOrHyphen.ReplaceAllString(line, " ")
	cleaned = standaloneNumber.ReplaceAllString(cleaned, "")
	return truncateRunes(collapseSpaces(cleaned), ocrFirstLineLimit)
}

func isFilterWord(w string) bool {
	_, ok := ocrFilterWords[strings.ToLower(w)]
	return ok
}
