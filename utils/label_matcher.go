package utils

import (
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

const (
	// ScoreExact is returned when normalized labels are identical.
	ScoreExact = 100
	// ScoreSubstring is returned when one normalized label contains the other.
	ScoreSubstring = 90
)

// stripped is the fixed punctuation set removed by NormalizeLabel.
const stripped = "()[]{}<>（）［］｛｝〈〉《》「」『』【】.,·:;：；'\"‘’“”-_/\\|~*•ㆍ"

var levenshtein = metrics.NewLevenshtein()

// NormalizeLabel canonicalizes a label for comparison: whitespace and
// bracket/punctuation characters are removed, everything else is kept.
func NormalizeLabel(label string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(stripped, r) {
			return -1
		}
		return r
	}, label)
}

// ScoreLabels scores a candidate label against a catalog label on a 0-100 scale.
// Exact and substring matches on normalized forms short-circuit; otherwise
// the best fuzzy measure over the raw labels is returned.
func ScoreLabels(candidate, known string) int {
	nc := NormalizeLabel(candidate)
	nk := NormalizeLabel(known)
	if nc == "" || nk == "" {
		return 0
	}
	if nc == nk {
		return ScoreExact
	}
	if strings.Contains(nc, nk) || strings.Contains(nk, nc) {
		return ScoreSubstring
	}
	return FuzzyScore(candidate, known)
}

// FuzzyScore is the maximum of the full-sequence ratio and the two
// order-insensitive token ratios.
func FuzzyScore(a, b string) int {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0
	}
	return max(Ratio(a, b), TokenSortRatio(a, b), TokenSetRatio(a, b))
}

// Ratio is the Levenshtein similarity of two strings, scaled to 0-100.
func Ratio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	return int(math.Round(strutil.Similarity(a, b, levenshtein) * 100))
}

// TokenSortRatio compares the labels after sorting their tokens.
func TokenSortRatio(a, b string) int {
	ta, tb := tokenize(a), tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	slices.Sort(ta)
	slices.Sort(tb)
	return Ratio(strings.Join(ta, " "), strings.Join(tb, " "))
}

// TokenSetRatio compares the shared tokens followed by each side's
// remaining tokens, so reordered or partly overlapping labels score high
// while a bare subset does not score as a full match.
func TokenSetRatio(a, b string) int {
	ta, tb := dedupe(tokenize(a)), dedupe(tokenize(b))
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var shared, onlyA, onlyB []string
	for _, t := range ta {
		if slices.Contains(tb, t) {
			shared = append(shared, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for _, t := range tb {
		if !slices.Contains(ta, t) {
			onlyB = append(onlyB, t)
		}
	}
	slices.Sort(shared)
	slices.Sort(onlyA)
	slices.Sort(onlyB)

	left := strings.Join(append(slices.Clone(shared), onlyA...), " ")
	right := strings.Join(append(slices.Clone(shared), onlyB...), " ")
	return Ratio(left, right)
}

// tokenize splits on anything that is not a letter or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func dedupe(tokens []string) []string {
	slices.Sort(tokens)
	return slices.Compact(tokens)
}
