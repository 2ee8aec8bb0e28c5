package report

import (
	"math"

	"github.com/Aashish23092/finstatement-extractor/catalog"
)

type CategoryStat struct {
	Category catalog.Category `json:"category"`
	Found    int              `json:"found"`
	Total    int              `json:"total"`
	Rate     float64          `json:"rate"`
}

// Summary counts resolved rows overall and per category. Rates are
// percentages rounded to one decimal.
type Summary struct {
	Total      int            `json:"total"`
	Found      int            `json:"found"`
	Missing    int            `json:"missing"`
	Rate       float64        `json:"rate"`
	Categories []CategoryStat `json:"categories"`
}

func Summarize(rows []Row) Summary {
	perCategory := make(map[catalog.Category]*CategoryStat)
	s := Summary{Total: len(rows)}
	for _, row := range rows {
		stat, ok := perCategory[row.Category]
		if !ok {
			stat = &CategoryStat{Category: row.Category}
			perCategory[row.Category] = stat
		}
		stat.Total++
		if row.Resolved() {
			stat.Found++
			s.Found++
		}
	}
	s.Missing = s.Total - s.Found
	s.Rate = rate(s.Found, s.Total)

	for _, c := range catalog.Categories {
		if stat, ok := perCategory[c]; ok {
			stat.Rate = rate(stat.Found, stat.Total)
			s.Categories = append(s.Categories, *stat)
		}
	}
	return s
}

func rate(found, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(found)/float64(total)*1000) / 10
}
