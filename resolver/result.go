package resolver

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Aashish23092/finstatement-extractor/catalog"
)

var (
	ErrAlreadyResolved   = errors.New("account already resolved")
	ErrInvalidConfidence = errors.New("confidence must be within [0, 1]")
)

// ResolvedEntry binds a catalog account to the value found for it.
type ResolvedEntry struct {
	AccountID    int     `json:"account_id"`
	Value        string  `json:"value"`
	Unit         string  `json:"unit,omitempty"`
	MatchedLabel string  `json:"matched_label,omitempty"`
	Confidence   float64 `json:"confidence"`
	Source       string  `json:"source"`
}

// MissingItem names an account that no stage resolved.
type MissingItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ExternalValue is a value proposed by a collaborator outside the core
// pipeline, such as the AI fallback.
type ExternalValue struct {
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// ExtractionResult holds the entries of a single run. The first entry
// recorded for an account is final.
type ExtractionResult struct {
	entries map[int]ResolvedEntry
}

func NewExtractionResult() *ExtractionResult {
	return &ExtractionResult{entries: make(map[int]ResolvedEntry)}
}

// Resolve records e. It fails when the account is unknown, already
// resolved, or the confidence is outside [0, 1].
func (r *ExtractionResult) Resolve(e ResolvedEntry) error {
	if _, err := catalog.ByID(e.AccountID); err != nil {
		return fmt.Errorf("resolve: %w", err)
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return fmt.Errorf("resolve id %d: %w", e.AccountID, ErrInvalidConfidence)
	}
	if _, ok := r.entries[e.AccountID]; ok {
		return fmt.Errorf("resolve id %d: %w", e.AccountID, ErrAlreadyResolved)
	}
	r.entries[e.AccountID] = e
	return nil
}

func (r *ExtractionResult) Get(id int) (ResolvedEntry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

func (r *ExtractionResult) IsResolved(id int) bool {
	_, ok := r.entries[id]
	return ok
}

func (r *ExtractionResult) Len() int {
	return len(r.entries)
}

// Entries returns all entries ordered by account id.
func (r *ExtractionResult) Entries() []ResolvedEntry {
	out := make([]ResolvedEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b ResolvedEntry) int { return a.AccountID - b.AccountID })
	return out
}

// Missing lists the unresolved accounts in catalog order.
func (r *ExtractionResult) Missing() []MissingItem {
	var missing []MissingItem
	for _, acc := range catalog.All() {
		if !r.IsResolved(acc.ID) {
			missing = append(missing, MissingItem{ID: acc.ID, Name: acc.Name})
		}
	}
	return missing
}

// MergeExternal fills accounts that are still unresolved from values.
// Resolved accounts and blank values are left alone; ids outside the
// catalog are returned as dropped.
func (r *ExtractionResult) MergeExternal(values map[int]ExternalValue, source string, confidence float64) (merged, dropped []int) {
	ids := make([]int, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		v := values[id]
		value := strings.TrimSpace(v.Value)
		if value == "" || r.IsResolved(id) {
			continue
		}
		err := r.Resolve(ResolvedEntry{
			AccountID:  id,
			Value:      value,
			Unit:       strings.TrimSpace(v.Unit),
			Confidence: confidence,
			Source:     source,
		})
		switch {
		case errors.Is(err, catalog.ErrAccountNotFound):
			dropped = append(dropped, id)
		case err == nil:
			merged = append(merged, id)
		}
	}
	return merged, dropped
}
