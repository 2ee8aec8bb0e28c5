package scanner

import (
	"iter"
	"regexp"
	"strings"
)

const (
	// label is a run of letters, spaces and the punctuation found in
	// account names, with optional digit-free parenthesised qualifiers such
	// as "(상세)". Digits are excluded so a label never swallows a value
	// or a note reference.
	label = `[가-힣A-Za-z](?:[가-힣A-Za-z·&/ \t]|\([가-힣A-Za-z \t]*\))*?`

	// looseNumeral admits separator-only runs such as ",,"; they are
	// dropped later for lacking a digit.
	looseNumeral = sign + `\(?[\d,]+(?:\.\d+)?\)?`
	unit         = `(?:[ \t]*(?:백만원|천원|억원|원|%))?`
	valueEnd     = `(?:[ \t|;]|$)`
	bullet       = `(?:[-*•·▪○●◦]|\d+[.)]|[가-하][.)])`
	noteRef      = `\((?:주석?|[Nn]ote)[ \t]*\d+(?:[ \t]*[,~\-][ \t]*\d+)*\)`

	// labelStart keeps unanchored patterns from starting a label inside a
	// word or a parenthesised note reference.
	labelStart = `(?:^|[ \t|;])`
)

// linePattern is one regular-expression family. Group 1 is the label and
// group 2 the value.
type linePattern struct {
	name string
	re   *regexp.Regexp
}

// linePatterns are applied to every line; a line may match several.
var linePatterns = []linePattern{
	{"colon", regexp.MustCompile(`^[ \t]*(` + label + `)[ \t]*[:：][ \t]*(` + looseNumeral + `)` + unit + valueEnd)},
	{"bullet-colon", regexp.MustCompile(`^[ \t]*` + bullet + `[ \t]+(` + label + `)[ \t]*[:：][ \t]*(` + looseNumeral + `)` + unit + valueEnd)},
	{"note-ref", regexp.MustCompile(labelStart + `(` + label + `)[ \t]*` + noteRef + `[ \t]*(` + looseNumeral + `)` + unit + valueEnd)},
	{"label-number", regexp.MustCompile(labelStart + `(` + label + `)[ \t]+(` + looseNumeral + `)` + unit + valueEnd)},
	{"indented", regexp.MustCompile(`^(?:[ \t]{2,}|　+)(` + label + `)[ \t]+(` + looseNumeral + `)` + unit + valueEnd)},
}

// LinePatternStrategy applies every line pattern family to every line.
type LinePatternStrategy struct {
	Tag    string
	OnSkip SkipHandler
}

func (s *LinePatternStrategy) Name() string { return "pattern" }

func (s *LinePatternStrategy) Scan(text string) iter.Seq[Candidate] {
	tag := s.Tag
	if tag == "" {
		tag = "pattern"
	}
	return func(yield func(Candidate) bool) {
		for _, line := range strings.Split(text, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			for _, p := range linePatterns {
				for _, m := range p.re.FindAllStringSubmatch(line, -1) {
					c, ok := newCandidate(m[1], m[2], tag, s.OnSkip)
					if !ok {
						continue
					}
					if !yield(c) {
						return
					}
				}
			}
		}
	}
}
