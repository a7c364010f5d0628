// Package fuzzy provides the string-similarity scorers used by the matchers.
//
// Scores are on a 0-100 scale. Ratio is the normalised Indel similarity
// (insertions and deletions cost 1, substitutions cost 2), so identical
// strings score 100 and strings with nothing in common score 0. Comparisons
// are case-sensitive; callers normalise case where they need to.
package fuzzy

import (
	"github.com/agext/levenshtein"
)

// indel weights a substitution as a deletion plus an insertion.
var indel = levenshtein.NewParams().InsCost(1).DelCost(1).SubCost(2)

// Ratio returns the normalised Indel similarity of a and b in [0,100].
func Ratio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 100
	}
	if la == 0 || lb == 0 {
		return 0
	}
	dist := levenshtein.Distance(a, b, indel)
	return 100 * (1 - float64(dist)/float64(la+lb))
}

// PartialRatio returns the best Ratio between the shorter string and any
// same-length window of the longer one. Windows overhanging either end of
// the longer string are also tried, so a partial overlap at the edges still
// scores.
func PartialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}

	needle := string(short)
	m, n := len(short), len(long)
	best := 0.0

	consider := func(window []rune) bool {
		if score := Ratio(needle, string(window)); score > best {
			best = score
		}
		return best >= 100
	}

	for end := 1; end < m; end++ {
		if consider(long[:end]) {
			return best
		}
	}
	for start := 0; start+m <= n; start++ {
		if consider(long[start : start+m]) {
			return best
		}
	}
	for start := n - m + 1; start < n; start++ {
		if start <= 0 {
			continue
		}
		if consider(long[start:]) {
			return best
		}
	}
	return best
}

// Best returns the index and score of the highest-scoring candidate.
// Ties keep the earliest candidate. It returns -1 for an empty slice.
func Best(query string, candidates []string, scorer func(a, b string) float64) (int, float64) {
	idx, best := -1, -1.0
	for i, c := range candidates {
		if score := scorer(query, c); score > best {
			idx, best = i, score
		}
	}
	if idx < 0 {
		return -1, 0
	}
	return idx, best
}
