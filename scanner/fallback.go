package scanner

import (
	"iter"
	"regexp"

	"github.com/Aashish23092/finstatement-extractor/utils"
)

const (
	MinFallbackLabel = 2
	MaxFallbackLabel = 20
)

var fallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)` + labelStart + `(` + label + `)[ \t]*[:：]?[ \t]*(` + looseNumeral + `)` + unit + valueEnd),
	regexp.MustCompile(`\|[ \t]*(` + label + `)[ \t]*\|[ \t]*(` + looseNumeral + `)`),
}

// FallbackStrategy extracts every plausible pair from the whole document
// regardless of table or section context. Labels are deduplicated by
// normalized form; the first occurrence is kept.
type FallbackStrategy struct {
	OnSkip SkipHandler
}

func (s *FallbackStrategy) Name() string { return "fuzzy" }

func (s *FallbackStrategy) Scan(text string) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		seen := make(map[string]bool)
		for _, re := range fallbackPatterns {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				c, ok := newCandidate(m[1], m[2], "fuzzy", s.OnSkip)
				if !ok {
					continue
				}
				if n := runeLen(c.Label); n < MinFallbackLabel || n > MaxFallbackLabel {
					s.OnSkip.report(SkipLabelLength, c.Label)
					continue
				}
				key := utils.NormalizeLabel(c.Label)
				if seen[key] {
					continue
				}
				seen[key] = true
				if !yield(c) {
					return
				}
			}
		}
	}
}
