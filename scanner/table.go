package scanner

import (
	"fmt"
	"iter"
	"regexp"
	"strings"
)

// separatorRe matches markdown header separators such as "| --- | :---: |".
var separatorRe = regexp.MustCompile(`^\s*\|?(?:\s*:?-+:?\s*\|)+\s*:?-*:?\s*$`)

// TableStrategy reads pipe-delimited (markdown) tables. Each row yields
// its first cell as the label and the first later cell holding a numeral
// as the value.
type TableStrategy struct {
	// Tag prefixes the candidate source, e.g. "table:재무상태표".
	Tag    string
	OnSkip SkipHandler
}

func (s *TableStrategy) Name() string { return "table" }

func (s *TableStrategy) Scan(text string) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		table := 0
		inTable := false

		for _, line := range strings.Split(text, "\n") {
			if !strings.Contains(line, "|") {
				if inTable {
					table++
					inTable = false
				}
				continue
			}
			inTable = true
			if separatorRe.MatchString(line) {
				continue
			}

			cells := splitCells(line)
			if len(cells) < 2 {
				s.OnSkip.report(SkipTooFewCells, line)
				continue
			}
			c, ok := rowCandidate(cells, fmt.Sprintf("%s#%d", s.tag(), table), s.OnSkip)
			if !ok {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

func (s *TableStrategy) tag() string {
	if s.Tag == "" {
		return "table"
	}
	return s.Tag
}

// splitCells splits a pipe row and drops empty cells.
func splitCells(line string) []string {
	var cells []string
	for _, cell := range strings.Split(line, "|") {
		if cell = strings.TrimSpace(cell); cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

// rowCandidate applies the row rule shared by markdown and HTML tables.
func rowCandidate(cells []string, source string, onSkip SkipHandler) (Candidate, bool) {
	for _, cell := range cells[1:] {
		if value, ok := firstNumeral(cell); ok {
			return newCandidate(cells[0], value, source, onSkip)
		}
	}
	onSkip.report(SkipNoNumericValue, strings.Join(cells, " | "))
	return Candidate{}, false
}
