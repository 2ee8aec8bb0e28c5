package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/finstatement-extractor/catalog"
	"github.com/Aashish23092/finstatement-extractor/resolver"
)

func TestBuildCoversCatalog(t *testing.T) {
	rows := Build(catalog.All(), resolver.NewExtractionResult())

	require.Len(t, rows, catalog.Size())
	for i, row := range rows {
		assert.Equal(t, i+1, row.ID)
		assert.Equal(t, NotAvailable, row.Value)
		assert.Equal(t, NotFound, row.Source)
		assert.Equal(t, StatusUnresolved, row.Status)
		assert.Zero(t, row.Confidence)
	}
}

func TestBuildFromMarkdownTable(t *testing.T) {
	text := "| 계정명 | 금액 |\n| --- | --- |\n| 대출금 | 1,200 |\n"
	result := resolver.New(resolver.DefaultThresholds(), zerolog.Nop()).Resolve(text)

	rows := Build(catalog.All(), result)

	require.Len(t, rows, 75)
	unresolved := 0
	for _, row := range rows {
		if row.ID == 3 {
			assert.Equal(t, "1,200", row.Value)
			assert.Equal(t, StatusResolved, row.Status)
			assert.True(t, strings.HasPrefix(row.Source, "table"))
			continue
		}
		assert.Equal(t, StatusUnresolved, row.Status, row.ID)
		unresolved++
	}
	assert.Equal(t, 74, unresolved)
}

func sampleRows(t *testing.T) []Row {
	t.Helper()
	r := resolver.NewExtractionResult()
	require.NoError(t, r.Resolve(resolver.ResolvedEntry{AccountID: 3, Value: "1,200", Confidence: 1, Source: "table:재무상태표#0"}))
	require.NoError(t, r.Resolve(resolver.ResolvedEntry{AccountID: 6, Value: "1,000", Confidence: 0.75, Source: "pattern:손익계산서"}))
	return Build(catalog.All(), r)
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRows(t))

	assert.Equal(t, 75, s.Total)
	assert.Equal(t, 2, s.Found)
	assert.Equal(t, 73, s.Missing)
	assert.Equal(t, 2.7, s.Rate)

	require.Len(t, s.Categories, len(catalog.Categories))
	assert.Equal(t, CategoryStat{Category: catalog.CategoryBasic, Found: 0, Total: 2, Rate: 0}, s.Categories[0])
	assert.Equal(t, CategoryStat{Category: catalog.CategoryBalanceSheet, Found: 1, Total: 12, Rate: 8.3}, s.Categories[1])
	assert.Equal(t, catalog.CategoryIncomeStatement, s.Categories[2].Category)
	assert.Equal(t, 1, s.Categories[2].Found)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.Rate)
	assert.Empty(t, s.Categories)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows(t)))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\ufeff"))

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 76)
	assert.Equal(t, []string{"ID", "계정명", "카테고리", "값", "출처", "상태", "신뢰도"}, records[0])
	assert.Equal(t, []string{"1", "날짜", "기본정보", "N/A", "not found", "N/A", "0.00"}, records[1])
	assert.Equal(t, []string{"3", "대출금", "재무상태표", "1,200", "table:재무상태표#0", "추출완료", "1.00"}, records[3])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRows(t)))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 76)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, "대출금", rows[3][1])
	assert.Equal(t, "1,200", rows[3][3])
	assert.Equal(t, "추출완료", rows[3][5])
	assert.Equal(t, "N/A", rows[2][3])
}

func TestExportFileName(t *testing.T) {
	at := time.Date(2024, 1, 31, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "report_추출결과_20240131_150405.xlsx", ExportFileName("/tmp/report.md", at, "xlsx"))
	assert.Equal(t, "분기보고서_추출결과_20240131_150405.csv", ExportFileName("분기보고서.pdf", at, ".csv"))
	assert.Equal(t, "document_추출결과_20240131_150405.csv", ExportFileName("", at, "csv"))
}
