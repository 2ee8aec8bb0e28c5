package dto

import (
	"time"

	"github.com/Aashish23092/finstatement-extractor/catalog"
	"github.com/Aashish23092/finstatement-extractor/report"
	"github.com/Aashish23092/finstatement-extractor/service"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ExtractionResponse is the final response structure
type ExtractionResponse struct {
	RunID       string         `json:"run_id"`
	Filename    string         `json:"filename"`
	Rows        []report.Row   `json:"rows"`
	Summary     report.Summary `json:"summary"`
	AIUsed      bool           `json:"ai_used"`
	ProcessedAt string         `json:"processed_at"`
}

func NewExtractionResponse(e *service.Extraction) ExtractionResponse {
	return ExtractionResponse{
		RunID:       e.RunID,
		Filename:    e.Filename,
		Rows:        e.Rows,
		Summary:     e.Summary,
		AIUsed:      e.AIUsed,
		ProcessedAt: e.ProcessedAt.Format(time.RFC3339),
	}
}

// AccountsResponse lists the catalog.
type AccountsResponse struct {
	Total    int                         `json:"total"`
	Accounts []catalog.AccountDefinition `json:"accounts"`
}
