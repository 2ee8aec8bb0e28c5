// Package report turns an extraction result into one row per catalog
// account and renders those rows as CSV or an Excel workbook.
package report

import (
	"slices"

	"github.com/Aashish23092/finstatement-extractor/catalog"
	"github.com/Aashish23092/finstatement-extractor/resolver"
)

type Status string

const (
	StatusResolved   Status = "resolved"
	StatusUnresolved Status = "unresolved"
)

// Placeholders for accounts no stage resolved.
const (
	NotAvailable = "N/A"
	NotFound     = "not found"
)

// Row is one account's line in the report.
type Row struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	Category     catalog.Category `json:"category"`
	Value        string           `json:"value"`
	Unit         string           `json:"unit,omitempty"`
	MatchedLabel string           `json:"matched_label,omitempty"`
	Source       string           `json:"source"`
	Status       Status           `json:"status"`
	Confidence   float64          `json:"confidence"`
}

func (r Row) Resolved() bool { return r.Status == StatusResolved }

// Build returns one row per account, ordered by id.
func Build(accounts []catalog.AccountDefinition, result *resolver.ExtractionResult) []Row {
	rows := make([]Row, 0, len(accounts))
	for _, acc := range accounts {
		row := Row{
			ID:       acc.ID,
			Name:     acc.Name,
			Category: acc.Category,
			Value:    NotAvailable,
			Source:   NotFound,
			Status:   StatusUnresolved,
		}
		if e, ok := result.Get(acc.ID); ok {
			row.Value = e.Value
			row.Unit = e.Unit
			row.MatchedLabel = e.MatchedLabel
			row.Source = e.Source
			row.Status = StatusResolved
			row.Confidence = e.Confidence
		}
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b Row) int { return a.ID - b.ID })
	return rows
}
