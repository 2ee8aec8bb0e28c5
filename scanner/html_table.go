package scanner

import (
	"fmt"
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLTableStrategy reads <table> markup left in converted filings using
// the same row rule as TableStrategy.
type HTMLTableStrategy struct {
	Tag    string
	OnSkip SkipHandler
}

func (s *HTMLTableStrategy) Name() string { return "html-table" }

func (s *HTMLTableStrategy) Scan(text string) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		if !strings.Contains(strings.ToLower(text), "<table") {
			return
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
		if err != nil {
			return
		}

		tag := s.Tag
		if tag == "" {
			tag = "html-table"
		}

		var rows []Candidate
		doc.Find("table").Each(func(i int, table *goquery.Selection) {
			table.Find("tr").Each(func(_ int, row *goquery.Selection) {
				var cells []string
				row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
					if text := strings.Join(strings.Fields(cell.Text()), " "); text != "" {
						cells = append(cells, text)
					}
				})
				if len(cells) < 2 {
					s.OnSkip.report(SkipTooFewCells, strings.Join(cells, " | "))
					return
				}
				if c, ok := rowCandidate(cells, fmt.Sprintf("%s#%d", tag, i), s.OnSkip); ok {
					rows = append(rows, c)
				}
			})
		})

		for _, c := range rows {
			if !yield(c) {
				return
			}
		}
	}
}
