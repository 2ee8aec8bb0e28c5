package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/finstatement-extractor/config"
	"github.com/Aashish23092/finstatement-extractor/dto"
	"github.com/Aashish23092/finstatement-extractor/report"
	"github.com/Aashish23092/finstatement-extractor/resolver"
	"github.com/Aashish23092/finstatement-extractor/service"
)

const tableDoc = "| 계정명 | 금액 |\n| --- | --- |\n| 대출금 | 1,200 |\n"

var errNoOCR = errors.New("ocr unavailable")

type noOCR struct{}

func (noOCR) ExtractTextFromBytes([]byte) (string, error)      { return "", errNoOCR }
func (noOCR) ExtractTextFromImage(image.Image) (string, error) { return "", errNoOCR }

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewExtractionService(
		resolver.New(resolver.DefaultThresholds(), zerolog.Nop()),
		noOCR{},
		service.NewPDFProcessor(),
		nil,
		config.AIConfig{},
		zerolog.Nop(),
	)
	router := gin.New()
	RegisterRoutes(router, NewExtractionHandler(svc, 1<<20, zerolog.Nop()))
	return router
}

func uploadRequest(t *testing.T, target, filename, content string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	setupRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestAccounts(t *testing.T) {
	rec := httptest.NewRecorder()
	setupRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.AccountsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 75, resp.Total)
	assert.Equal(t, "날짜", resp.Accounts[0].Name)
}

func TestExtract(t *testing.T) {
	rec := httptest.NewRecorder()
	setupRouter().ServeHTTP(rec, uploadRequest(t, "/api/v1/extract", "report.md", tableDoc))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp dto.ExtractionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, "report.md", resp.Filename)
	require.Len(t, resp.Rows, 75)
	assert.Equal(t, "1,200", resp.Rows[2].Value)
	assert.Equal(t, report.StatusResolved, resp.Rows[2].Status)
	assert.Equal(t, 1, resp.Summary.Found)
	assert.False(t, resp.AIUsed)
}

func TestExtractMissingFile(t *testing.T) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("password", "x"))
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := httptest.NewRecorder()
	setupRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "EXTRACTION_FAILED")
}

func TestExtractUnsupportedType(t *testing.T) {
	rec := httptest.NewRecorder()
	setupRouter().ServeHTTP(rec, uploadRequest(t, "/api/v1/extract", "report.docx", "x"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractEmptyDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	setupRouter().ServeHTTP(rec, uploadRequest(t, "/api/v1/extract", "blank.txt", "   "))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestExportCSV(t *testing.T) {
	rec := httptest.NewRecorder()
	setupRouter().ServeHTTP(rec, uploadRequest(t, "/api/v1/extract/export?format=csv", "report.md", tableDoc))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "3,대출금,재무상태표,\"1,200\"")
}

func TestExportXLSX(t *testing.T) {
	rec := httptest.NewRecorder()
	setupRouter().ServeHTTP(rec, uploadRequest(t, "/api/v1/extract/export", "report.md", tableDoc))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 76)
}

func TestExportRejectsFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	setupRouter().ServeHTTP(rec, uploadRequest(t, "/api/v1/extract/export?format=pdf", "report.md", tableDoc))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
