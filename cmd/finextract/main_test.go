package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/finstatement-extractor/catalog"
	"github.com/Aashish23092/finstatement-extractor/config"
	"github.com/Aashish23092/finstatement-extractor/resolver"
	"github.com/Aashish23092/finstatement-extractor/service"
)

const statement = `재무상태표
| 계정명 | 금액 |
| --- | --- |
| 대출금 | 1,200 |

손익계산서
이자수익: 1,000
이자비용: 600
`

func extractSample(t *testing.T) *service.Extraction {
	t.Helper()
	svc := service.NewExtractionService(
		resolver.New(resolver.DefaultThresholds(), zerolog.Nop()),
		nil,
		service.NewPDFProcessor(),
		nil,
		config.AIConfig{},
		zerolog.Nop(),
	)
	e, err := svc.ExtractText(context.Background(), "sample.md", statement, false)
	require.NoError(t, err)
	return e
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeExtraction(&buf, "table", extractSample(t)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "ID"))
	assert.Contains(t, out, "대출금")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "Resolved")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeExtraction(&buf, "json", extractSample(t)))

	var got struct {
		Filename string `json:"filename"`
		Rows     []struct {
			ID    int    `json:"id"`
			Value string `json:"value"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "sample.md", got.Filename)
	assert.Len(t, got.Rows, catalog.Size())
}

func TestWriteCSVFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeExtraction(&buf, "csv", extractSample(t)))
	assert.True(t, strings.HasPrefix(buf.String(), "\ufeff"))
}

func TestWriteUnknownFormat(t *testing.T) {
	err := writeExtraction(&bytes.Buffer{}, "yaml", extractSample(t))
	assert.ErrorContains(t, err, "unknown format")
}

func TestWriteAccounts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAccounts(&buf, catalog.All()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, catalog.Size()+1)
	assert.Contains(t, lines[1], "날짜")
}

func TestNewServiceRejectsUnconfiguredAI(t *testing.T) {
	_, err := newService(context.Background(), &config.Config{}, resolver.DefaultThresholds(), true, zerolog.Nop())
	assert.ErrorContains(t, err, "AI fallback requested")
}
