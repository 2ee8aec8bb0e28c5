// Package segmenter splits a converted financial filing into its statement
// sections by locating their headings.
package segmenter

import (
	"regexp"
	"strings"
)

type SectionName string

const (
	SectionBalanceSheet    SectionName = "재무상태표"
	SectionIncomeStatement SectionName = "손익계산서"
	SectionNotes           SectionName = "주석"
	SectionWholeDocument   SectionName = "전체문서"
)

// Order is the fixed iteration order over sections.
var Order = []SectionName{
	SectionBalanceSheet,
	SectionIncomeStatement,
	SectionNotes,
	SectionWholeDocument,
}

// Sections maps a section to its text.
type Sections map[SectionName]string

// headings holds the heading patterns of each named section. Korean phrases
// tolerate whitespace between any two characters since converted PDFs often
// letter-space headings.
var headings = map[SectionName][]*regexp.Regexp{
	SectionBalanceSheet: {
		spaced("요약분기재무상태표"),
		spaced("재무상태표"),
		regexp.MustCompile(`(?i)statements?\s+of\s+financial\s+position`),
		regexp.MustCompile(`(?i)balance\s+sheets?`),
	},
	SectionIncomeStatement: {
		spaced("요약분기손익계산서"),
		spaced("손익계산서"),
		regexp.MustCompile(`(?i)income\s+statements?`),
		regexp.MustCompile(`(?i)statements?\s+of\s+(?:comprehensive\s+)?income`),
	},
	// Inline references such as "(주석 5)" are common inside statements, so
	// the notes heading must lead its line.
	SectionNotes: {
		regexp.MustCompile(`(?m)^[ \t#*>|]*(?:\d+\.[ \t]*)?주\s*석`),
		regexp.MustCompile(`(?i)notes?\s+to\s+(?:the\s+)?financial\s+statements?`),
	},
}

// spaced builds a pattern matching phrase with optional whitespace between runes.
func spaced(phrase string) *regexp.Regexp {
	parts := make([]string, 0, len(phrase))
	for _, r := range phrase {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	return regexp.MustCompile(strings.Join(parts, `\s*`))
}

// HeadingIndex returns the byte offsets of the earliest heading of name at or
// after from, or -1 when there is none.
func HeadingIndex(text string, name SectionName, from int) (start, end int) {
	start, end = -1, -1
	if from < 0 || from > len(text) {
		return start, end
	}
	for _, re := range headings[name] {
		loc := re.FindStringIndex(text[from:])
		if loc == nil {
			continue
		}
		if start == -1 || from+loc[0] < start {
			start, end = from+loc[0], from+loc[1]
		}
	}
	return start, end
}

// Segment locates each section heading and cuts the section from the
// heading to the next heading of a different section. When no heading is
// found at all the whole document is returned as SectionWholeDocument.
func Segment(text string) Sections {
	sections := make(Sections)

	for _, name := range Order {
		start, end := HeadingIndex(text, name, 0)
		if start == -1 {
			continue
		}

		stop := len(text)
		for other := range headings {
			if other == name {
				continue
			}
			if next, _ := HeadingIndex(text, other, end); next != -1 && next < stop {
				stop = next
			}
		}
		sections[name] = text[start:stop]
	}

	if len(sections) == 0 {
		sections[SectionWholeDocument] = text
	}
	return sections
}

// Names returns the names present in s, in Order.
func (s Sections) Names() []SectionName {
	var names []SectionName
	for _, name := range Order {
		if _, ok := s[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
