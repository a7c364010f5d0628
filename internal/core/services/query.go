package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

// queryStopWords are the interrogative and filler words dropped from typed queries.
var queryStopWords = map[string]struct{}{
	"what":     {},
	"is":       {},
	"tell":     {},
	"me":       {},
	"about":    {},
	"for":      {},
	"used":     {},
	"medicine": {},
	"tablet":   {},
	"syrup":    {},
}

// NormalizeQuery turns a typed question into a candidate medicine name.
// Stop words are removed and the remaining words capitalised; when every
// word is a stop word the trimmed input is returned unchanged.
func NormalizeQuery(text string) string {
	words := strings.Fields(strings.ToLower(text))
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := queryStopWords[w]; stop {
			continue
		}
		kept = append(kept, capitalize(w))
	}
	if len(kept) == 0 {
		return strings.TrimSpace(text)
	}
	return strings.Join(kept, " ")
}

// ParseQuery wraps NormalizeQuery, keeping the original text alongside.
func ParseQuery(query string) domain.ParsedQuery {
	return domain.ParsedQuery{
		MedicineName:  NormalizeQuery(query),
		OriginalQuery: query,
	}
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError && size <= 1 {
		return strings.ToLower(word)
	}
	return string(unicode.ToTitle(r)) + strings.ToLower(word[size:])
}

// titleCase capitalises the first letter of every run of letters and
// lower-cases the others, so "co-amoxiclav" becomes "Co-Amoxiclav".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

// collapseSpaces joins the whitespace-separated fields of s with single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes returns at most n runes of s.
func truncateRunes(s string, n int) string {
	if n < 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
