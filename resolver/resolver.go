// Package resolver binds scanned candidates to catalog accounts in four
// stages of decreasing precision: tables, line patterns, section-anchored
// lookups and a global fuzzy fallback. An account claimed by an earlier
// stage is never revisited.
package resolver

import (
	"cmp"
	"context"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Aashish23092/finstatement-extractor/catalog"
	"github.com/Aashish23092/finstatement-extractor/scanner"
	"github.com/Aashish23092/finstatement-extractor/segmenter"
	"github.com/Aashish23092/finstatement-extractor/utils"
)

// Stage source tags.
const (
	SourceFuzzy   = "fuzzy"
	sectionPrefix = "section:"
)

var (
	tableSections   = []segmenter.SectionName{segmenter.SectionBalanceSheet, segmenter.SectionIncomeStatement, segmenter.SectionWholeDocument}
	patternSections = []segmenter.SectionName{segmenter.SectionBalanceSheet, segmenter.SectionIncomeStatement, segmenter.SectionNotes, segmenter.SectionWholeDocument}
)

// anchor ties a section heading to the categories looked up after it. A nil
// category list means every category.
type anchor struct {
	section    segmenter.SectionName
	categories []catalog.Category
}

var anchors = []anchor{
	{segmenter.SectionBalanceSheet, []catalog.Category{catalog.CategoryBalanceSheet}},
	{segmenter.SectionIncomeStatement, []catalog.Category{catalog.CategoryIncomeStatement}},
	{segmenter.SectionNotes, nil},
}

// Resolver runs the staged resolution. It holds no per-run state and may be
// shared across goroutines.
type Resolver struct {
	thresholds Thresholds
	accounts   []catalog.AccountDefinition
	log        zerolog.Logger
}

func New(thresholds Thresholds, log zerolog.Logger) *Resolver {
	return &Resolver{
		thresholds: thresholds.WithDefaults(),
		accounts:   catalog.All(),
		log:        log,
	}
}

func (r *Resolver) Thresholds() Thresholds {
	return r.thresholds
}

// candidates holds the output of every scanning strategy for one document.
type candidates struct {
	table    []scanner.Candidate
	pattern  []scanner.Candidate
	fallback []scanner.Candidate
}

// Resolve runs all stages over text and returns a fresh result.
func (r *Resolver) Resolve(text string) *ExtractionResult {
	// A background context is never cancelled, so prescan cannot fail.
	result, _ := r.ResolveContext(context.Background(), text)
	return result
}

// ResolveContext is Resolve with cancellation of the candidate prescan.
// It returns ctx.Err() when ctx ends before scanning completes.
func (r *Resolver) ResolveContext(ctx context.Context, text string) (*ExtractionResult, error) {
	result := NewExtractionResult()
	sections := segmenter.Segment(text)
	r.log.Debug().Interface("sections", sections.Names()).Int("chars", len(text)).Msg("document segmented")

	found, err := r.prescan(ctx, text, sections)
	if err != nil {
		return nil, err
	}

	n := r.matchCandidates(result, found.table, r.thresholds.Table)
	r.log.Debug().Int("candidates", len(found.table)).Int("resolved", n).Msg("table stage done")

	n = r.matchCandidates(result, found.pattern, r.thresholds.Pattern)
	r.log.Debug().Int("candidates", len(found.pattern)).Int("resolved", n).Msg("pattern stage done")

	n = r.matchAnchored(result, text)
	r.log.Debug().Int("resolved", n).Msg("section stage done")

	fallback := unconsumed(result, found.fallback)
	n = r.matchFallback(result, fallback, r.thresholds.Fallback)
	r.log.Debug().Int("candidates", len(fallback)).Int("resolved", n).Msg("fallback stage done")

	return result, nil
}

// prescan runs the independent strategies concurrently. Stage order is
// applied afterwards, so it does not depend on scheduling.
func (r *Resolver) prescan(ctx context.Context, text string, sections segmenter.Sections) (candidates, error) {
	var found candidates
	g, ctx := errgroup.WithContext(ctx)
	onSkip := func(e *scanner.SkipError) {
		r.log.Trace().Str("reason", string(e.Reason)).Str("text", e.Text).Msg("candidate skipped")
	}

	g.Go(func() error {
		for _, name := range tableSections {
			body, ok := sections[name]
			if !ok {
				continue
			}
			for _, s := range []scanner.Strategy{
				&scanner.TableStrategy{Tag: "table:" + string(name), OnSkip: onSkip},
				&scanner.HTMLTableStrategy{Tag: "html-table:" + string(name), OnSkip: onSkip},
			} {
				if err := collect(ctx, s, body, &found.table); err != nil {
					return err
				}
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, name := range patternSections {
			body, ok := sections[name]
			if !ok {
				continue
			}
			s := &scanner.LinePatternStrategy{Tag: "pattern:" + string(name), OnSkip: onSkip}
			if err := collect(ctx, s, body, &found.pattern); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		return collect(ctx, &scanner.FallbackStrategy{OnSkip: onSkip}, text, &found.fallback)
	})

	if err := g.Wait(); err != nil {
		return candidates{}, err
	}
	return found, nil
}

// collect appends every candidate s finds in text to dst, stopping when ctx
// ends.
func collect(ctx context.Context, s scanner.Strategy, text string, dst *[]scanner.Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for c := range s.Scan(text) {
		if err := ctx.Err(); err != nil {
			return err
		}
		*dst = append(*dst, c)
	}
	return nil
}

// unconsumed drops fallback candidates whose normalized label already
// resolved an account in an earlier stage.
func unconsumed(result *ExtractionResult, found []scanner.Candidate) []scanner.Candidate {
	consumed := make(map[string]bool)
	for _, e := range result.Entries() {
		consumed[utils.NormalizeLabel(e.MatchedLabel)] = true
	}
	kept := make([]scanner.Candidate, 0, len(found))
	for _, c := range found {
		if !consumed[utils.NormalizeLabel(c.Label)] {
			kept = append(kept, c)
		}
	}
	return kept
}

// pairing is one candidate/account combination that clears a stage
// threshold.
type pairing struct {
	candidate int
	account   int
	score     int
}

// matchCandidates binds candidates to unresolved accounts, highest score
// first, so an exact label anywhere in the stage beats an earlier fuzzy
// one. Equal scores keep the earlier candidate, then the account declared
// first in the catalog. Each candidate and account is used at most once.
func (r *Resolver) matchCandidates(result *ExtractionResult, found []scanner.Candidate, threshold int) int {
	var pairs []pairing
	for ci, c := range found {
		for ai, acc := range r.accounts {
			if result.IsResolved(acc.ID) {
				continue
			}
			if s := bestLabelScore(c.Label, acc, utils.ScoreLabels); s > 0 && s >= threshold {
				pairs = append(pairs, pairing{candidate: ci, account: ai, score: s})
			}
		}
	}
	slices.SortStableFunc(pairs, func(a, b pairing) int {
		return cmp.Or(
			cmp.Compare(b.score, a.score),
			cmp.Compare(a.candidate, b.candidate),
			cmp.Compare(a.account, b.account),
		)
	})

	used := make(map[int]bool)
	resolved := 0
	for _, p := range pairs {
		acc := r.accounts[p.account]
		if used[p.candidate] || result.IsResolved(acc.ID) {
			continue
		}
		used[p.candidate] = true
		if r.record(result, acc, found[p.candidate], float64(p.score)/100) {
			resolved++
		}
	}
	return resolved
}

// matchAnchored looks up each unresolved account's labels literally in the
// window that follows a section heading.
func (r *Resolver) matchAnchored(result *ExtractionResult, text string) int {
	resolved := 0
	for _, a := range anchors {
		start, _ := segmenter.HeadingIndex(text, a.section, 0)
		if start == -1 {
			continue
		}
		window := scanner.Window(text, start, r.thresholds.SectionWindow)
		source := sectionPrefix + string(a.section)

		for _, acc := range r.accounts {
			if result.IsResolved(acc.ID) || !(a.categories == nil || slices.Contains(a.categories, acc.Category)) {
				continue
			}
			for _, label := range acc.Labels() {
				c, ok := scanner.FindLabelValue(window, label, source)
				if !ok {
					continue
				}
				if r.record(result, acc, c, 1.0) {
					resolved++
				}
				break
			}
		}
	}
	return resolved
}

// matchFallback picks, for every account still unresolved, the candidate
// with the highest fuzzy score. The first candidate wins a tie.
func (r *Resolver) matchFallback(result *ExtractionResult, found []scanner.Candidate, threshold int) int {
	resolved := 0
	for _, acc := range r.accounts {
		if result.IsResolved(acc.ID) {
			continue
		}
		best, bestScore := -1, 0
		for i, c := range found {
			if s := bestLabelScore(c.Label, acc, utils.FuzzyScore); s > bestScore {
				best, bestScore = i, s
			}
		}
		if best == -1 || bestScore < threshold {
			continue
		}
		c := found[best]
		c.Source = SourceFuzzy
		if r.record(result, acc, c, float64(bestScore)/100) {
			resolved++
		}
	}
	return resolved
}

func (r *Resolver) record(result *ExtractionResult, acc catalog.AccountDefinition, c scanner.Candidate, confidence float64) bool {
	err := result.Resolve(ResolvedEntry{
		AccountID:    acc.ID,
		Value:        c.Value,
		MatchedLabel: c.Label,
		Confidence:   confidence,
		Source:       c.Source,
	})
	if err != nil {
		r.log.Debug().Err(err).Int("account_id", acc.ID).Msg("entry not recorded")
		return false
	}
	r.log.Trace().
		Int("account_id", acc.ID).
		Str("label", c.Label).
		Str("value", c.Value).
		Str("source", c.Source).
		Float64("confidence", confidence).
		Msg("account resolved")
	return true
}

func bestLabelScore(label string, acc catalog.AccountDefinition, score func(a, b string) int) int {
	best := 0
	for _, known := range acc.Labels() {
		best = max(best, score(label, known))
	}
	return best
}
