package resolver

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/finstatement-extractor/scanner"
)

func newTestResolver() *Resolver {
	return New(DefaultThresholds(), zerolog.Nop())
}

func TestResolveMarkdownTable(t *testing.T) {
	text := "| 계정명 | 금액 |\n| --- | --- |\n| 대출금 | 1,200 |\n"

	result := newTestResolver().Resolve(text)

	require.Equal(t, 1, result.Len())
	e, ok := result.Get(3)
	require.True(t, ok)
	assert.Equal(t, "1,200", e.Value)
	assert.Equal(t, "대출금", e.MatchedLabel)
	assert.Equal(t, "table:전체문서#0", e.Source)
	assert.Equal(t, 1.0, e.Confidence)
}

func TestResolveFuzzyLabel(t *testing.T) {
	result := newTestResolver().Resolve("고정이하채권비율 : 3,456\n")

	e, ok := result.Get(12)
	require.True(t, ok)
	assert.Equal(t, "3,456", e.Value)
	assert.GreaterOrEqual(t, e.Confidence, 0.70)
}

func TestMatchFallback(t *testing.T) {
	r := newTestResolver()
	result := NewExtractionResult()
	found := []scanner.Candidate{{Label: "고정이하채권비율", Value: "3,456", Source: "fuzzy"}}

	n := r.matchFallback(result, found, DefaultFallbackThreshold)

	assert.Equal(t, 1, n)
	e, ok := result.Get(12)
	require.True(t, ok)
	assert.Equal(t, "3,456", e.Value)
	assert.Equal(t, SourceFuzzy, e.Source)
	assert.InDelta(t, 0.75, e.Confidence, 1e-9)
}

func TestMatchFallbackRespectsThreshold(t *testing.T) {
	r := newTestResolver()
	result := NewExtractionResult()
	found := []scanner.Candidate{{Label: "고정이하채권비율", Value: "3,456", Source: "fuzzy"}}

	assert.Zero(t, r.matchFallback(result, found, 76))
	assert.Zero(t, result.Len())
}

func TestMatchCandidatesTieGoesToCatalogOrder(t *testing.T) {
	r := newTestResolver()
	result := NewExtractionResult()
	found := []scanner.Candidate{
		{Label: "대출채권", Value: "100", Source: "t"},
		{Label: "대출채권", Value: "200", Source: "t"},
	}

	assert.Equal(t, 2, r.matchCandidates(result, found, DefaultTableThreshold))

	first, _ := result.Get(3)
	second, _ := result.Get(17)
	assert.Equal(t, "100", first.Value)
	assert.Equal(t, "200", second.Value)
}

func TestMatchCandidatesExactBeatsSubstring(t *testing.T) {
	r := newTestResolver()
	result := NewExtractionResult()
	found := []scanner.Candidate{{Label: "대출금(상세)", Value: "700", Source: "t"}}

	r.matchCandidates(result, found, DefaultTableThreshold)

	assert.False(t, result.IsResolved(3))
	e, ok := result.Get(17)
	require.True(t, ok)
	assert.Equal(t, 1.0, e.Confidence)
}

func TestMatchCandidatesExactWinsOverEarlierRow(t *testing.T) {
	r := newTestResolver()
	result := NewExtractionResult()
	found := []scanner.Candidate{
		{Label: "이자수입액", Value: "500", Source: "t"},
		{Label: "이자수익", Value: "1,000", Source: "t"},
	}

	r.matchCandidates(result, found, DefaultTableThreshold)

	e, ok := result.Get(6)
	require.True(t, ok)
	assert.Equal(t, "1,000", e.Value)
	assert.Equal(t, "이자수익", e.MatchedLabel)
	assert.Equal(t, 1.0, e.Confidence)
}

func TestResolveExactRowWinsWithinStage(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		source string
	}{
		{
			name:   "table",
			text:   "| 이자수입액 | 500 |\n| 이자수익 | 1,000 |\n",
			source: "table:전체문서#0",
		},
		{
			name:   "pattern",
			text:   "이지수익 500\n이자수익 1,000\n",
			source: "pattern:전체문서",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestResolver().Resolve(tt.text)

			e, ok := result.Get(6)
			require.True(t, ok)
			assert.Equal(t, "1,000", e.Value)
			assert.Equal(t, 1.0, e.Confidence)
			assert.Equal(t, tt.source, e.Source)
		})
	}
}

func TestFallbackSkipsConsumedLabels(t *testing.T) {
	result := newTestResolver().Resolve("영업수익 5,000\n")

	assert.Equal(t, 1, result.Len())
	e, ok := result.Get(24)
	require.True(t, ok)
	assert.Equal(t, "5,000", e.Value)
	assert.Equal(t, "pattern:전체문서", e.Source)
}

func TestUnconsumed(t *testing.T) {
	result := NewExtractionResult()
	require.NoError(t, result.Resolve(ResolvedEntry{AccountID: 24, Value: "5,000", MatchedLabel: "영업 수익", Confidence: 1, Source: "pattern"}))
	found := []scanner.Candidate{
		{Label: "영업수익", Value: "5,000", Source: "fuzzy"},
		{Label: "영업이익", Value: "300", Source: "fuzzy"},
	}

	assert.Equal(t, found[1:], unconsumed(result, found))
}

func TestResolveContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newTestResolver().ResolveContext(ctx, "| 대출금 | 1,200 |")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestResolveSpacedTriangleSign(t *testing.T) {
	result := newTestResolver().Resolve("대손충당금 △ 500\n")

	e, ok := result.Get(18)
	require.True(t, ok)
	assert.Equal(t, "△500", e.Value)
}

func TestEarlierStageWins(t *testing.T) {
	text := "| 이자수익 | 1,000 |\n\n이자수익 : 2,000\n"

	result := newTestResolver().Resolve(text)

	e, ok := result.Get(6)
	require.True(t, ok)
	assert.Equal(t, "1,000", e.Value)
	assert.Equal(t, "table:전체문서#0", e.Source)
}

func TestMatchAnchored(t *testing.T) {
	text := "재무상태표\n총자산 9,000\n\n손익계산서\n영업수익 5,000\n"
	r := newTestResolver()
	result := NewExtractionResult()

	assert.Equal(t, 2, r.matchAnchored(result, text))

	e, ok := result.Get(14)
	require.True(t, ok)
	assert.Equal(t, "9,000", e.Value)
	assert.Equal(t, "section:재무상태표", e.Source)
	assert.Equal(t, 1.0, e.Confidence)

	e, ok = result.Get(24)
	require.True(t, ok)
	assert.Equal(t, "5,000", e.Value)
	assert.Equal(t, "section:손익계산서", e.Source)
}

func TestMatchAnchoredRestrictsCategory(t *testing.T) {
	r := newTestResolver()
	result := NewExtractionResult()

	assert.Zero(t, r.matchAnchored(result, "재무상태표\n영업수익 5,000\n"))
}

func TestMatchAnchoredWindow(t *testing.T) {
	r := New(Thresholds{SectionWindow: 10}, zerolog.Nop())
	result := NewExtractionResult()
	text := "손익계산서\n(단위: 백만원) 제 10 기\n영업수익 5,000\n"

	assert.Zero(t, r.matchAnchored(result, text))
}

func TestResolveConfidenceInRange(t *testing.T) {
	text := `재무상태표
| 계정 | 당기 | 전기 |
| --- | --- | --- |
| 대출금 | 1,200 | 1,100 |
| 예수금 | 3,400 | 3,300 |
| 자산총계 | 9,000 | 8,000 |

손익계산서
- 이자수익: 1,000
- 이자비용: 600
영업이익(손실) 150
대손충당금 전입액 (30)

주석
1. 고정이하채권비율 : 1.5%
`
	result := newTestResolver().Resolve(text)

	require.NotZero(t, result.Len())
	for _, e := range result.Entries() {
		assert.GreaterOrEqual(t, e.Confidence, 0.0, e.AccountID)
		assert.LessOrEqual(t, e.Confidence, 1.0, e.AccountID)
	}

	loans, _ := result.Get(3)
	assert.Equal(t, "1,200", loans.Value)
	income, _ := result.Get(6)
	assert.Equal(t, "1,000", income.Value)
	expense, _ := result.Get(7)
	assert.Equal(t, "600", expense.Value)
}

func TestResolveIsIndependentPerRun(t *testing.T) {
	r := newTestResolver()
	first := r.Resolve("| 대출금 | 1,200 |")
	second := r.Resolve("| 예수금 | 3,400 |")

	assert.True(t, first.IsResolved(3))
	assert.False(t, first.IsResolved(4))
	assert.True(t, second.IsResolved(4))
	assert.False(t, second.IsResolved(3))
}
