// Package scanner finds (label, value) candidate pairs in converted filing
// text. Each strategy is independent; the resolver decides the order in
// which they are consulted.
package scanner

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Aashish23092/finstatement-extractor/utils"
)

// ErrScanSkip marks a malformed row or match that was dropped.
var ErrScanSkip = errors.New("scan skip")

type SkipReason string

const (
	SkipTooFewCells    SkipReason = "too_few_cells"
	SkipNoNumericValue SkipReason = "no_numeric_value"
	SkipEmptyLabel     SkipReason = "empty_label"
	SkipLabelLength    SkipReason = "label_length"
)

// SkipError describes why a piece of text produced no candidate.
type SkipError struct {
	Reason SkipReason
	Text   string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("scan skip (%s): %q", e.Reason, e.Text)
}

func (e *SkipError) Unwrap() error { return ErrScanSkip }

// SkipHandler observes dropped candidates. A nil handler drops silently.
type SkipHandler func(*SkipError)

func (h SkipHandler) report(reason SkipReason, text string) {
	if h != nil {
		h(&SkipError{Reason: reason, Text: text})
	}
}

// Candidate is an unverified label/value pair found in the text.
type Candidate struct {
	Label  string
	Value  string
	Source string
}

// Strategy produces candidates from a region of text.
type Strategy interface {
	Name() string
	Scan(text string) iter.Seq[Candidate]
}

// sign is an optional leading sign. Triangle markers may be set apart from
// the digits ("△ 500"); a spaced dash is a separator, not a minus.
const sign = `(?:[-+]|[△▲][ \t]*)?`

// numeral matches a signed, comma-grouped statement number, e.g. "1,200",
// "(300)", "△1,000", "△ 500", "12.5".
const numeral = sign + `\(?[\d,]*\d[\d,]*(?:\.\d+)?\)?`

var numeralRe = regexp.MustCompile(numeral)

// firstNumeral extracts the first numeral of s.
func firstNumeral(s string) (string, bool) {
	m := numeralRe.FindString(s)
	if m == "" {
		return "", false
	}
	return cleanValue(m), true
}

// cleanValue drops inner blanks, then trims stray separators and
// unbalanced parentheses.
func cleanValue(v string) string {
	v = strings.Trim(strings.Join(strings.Fields(v), ""), ",")
	open, closed := strings.Count(v, "("), strings.Count(v, ")")
	if open != closed {
		v = strings.NewReplacer("(", "", ")", "").Replace(v)
	}
	return v
}

// cleanLabel trims whitespace and markdown emphasis around a label.
func cleanLabel(l string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(l), "*_#>"))
}

// newCandidate validates a raw pair, reporting the reason when it is dropped.
func newCandidate(label, value, source string, onSkip SkipHandler) (Candidate, bool) {
	label = cleanLabel(label)
	value = cleanValue(value)
	switch {
	case label == "":
		onSkip.report(SkipEmptyLabel, value)
		return Candidate{}, false
	case !utils.HasDigit(value):
		onSkip.report(SkipNoNumericValue, label+" "+value)
		return Candidate{}, false
	}
	return Candidate{Label: label, Value: value, Source: source}, true
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
