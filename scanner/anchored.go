package scanner

import (
	"regexp"
	"unicode/utf8"
)

// Window returns at most span runes of text starting at byte offset start.
func Window(text string, start, span int) string {
	if start < 0 || start >= len(text) {
		return ""
	}
	rest := text[start:]
	end, n := 0, 0
	for end < len(rest) && n < span {
		_, size := utf8.DecodeRuneInString(rest[end:])
		end += size
		n++
	}
	return rest[:end]
}

// FindLabelValue looks for the literal label followed by an optional colon
// and a numeral inside window.
func FindLabelValue(window, label, source string) (Candidate, bool) {
	if label == "" {
		return Candidate{}, false
	}
	re, err := regexp.Compile(regexp.QuoteMeta(label) + `\s*[:：]?\s*(` + numeral + `)`)
	if err != nil {
		return Candidate{}, false
	}
	m := re.FindStringSubmatch(window)
	if m == nil {
		return Candidate{}, false
	}
	return newCandidate(label, m[1], source, nil)
}
