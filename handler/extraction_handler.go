package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Aashish23092/finstatement-extractor/catalog"
	"github.com/Aashish23092/finstatement-extractor/dto"
	"github.com/Aashish23092/finstatement-extractor/report"
	"github.com/Aashish23092/finstatement-extractor/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExtractionHandler struct {
	extractionService *service.ExtractionService
	maxFileSize       int64
	log               zerolog.Logger
}

func NewExtractionHandler(extractionService *service.ExtractionService, maxFileSize int64, log zerolog.Logger) *ExtractionHandler {
	return &ExtractionHandler{
		extractionService: extractionService,
		maxFileSize:       maxFileSize,
		log:               log,
	}
}

// RegisterRoutes mounts the health check and the v1 API on router.
func RegisterRoutes(router *gin.Engine, h *ExtractionHandler) {
	router.GET("/health", h.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/accounts", h.Accounts)
		api.POST("/extract", h.Extract)
		api.POST("/extract/export", h.Export)
	}
}

func (h *ExtractionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Financial Statement Extractor",
	})
}

// Accounts handles GET /accounts
func (h *ExtractionHandler) Accounts(c *gin.Context) {
	accounts := catalog.All()
	c.JSON(http.StatusOK, dto.AccountsResponse{Total: len(accounts), Accounts: accounts})
}

// Extract handles POST /extract
func (h *ExtractionHandler) Extract(c *gin.Context) {
	extraction, ok := h.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.NewExtractionResponse(extraction))
}

// Export handles POST /extract/export?format=csv|xlsx
func (h *ExtractionHandler) Export(c *gin.Context) {
	format, err := dto.ExportFormat(c.DefaultQuery("format", "xlsx"))
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid export format", err)
		return
	}

	extraction, ok := h.run(c)
	if !ok {
		return
	}

	var (
		buf         bytes.Buffer
		contentType string
	)
	switch format {
	case "csv":
		contentType = "text/csv; charset=utf-8"
		err = report.WriteCSV(&buf, extraction.Rows)
	default:
		contentType = xlsxContentType
		err = report.WriteXLSX(&buf, extraction.Rows)
	}
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to render export", err)
		return
	}

	name := report.ExportFileName(extraction.Filename, time.Now(), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// run binds, validates and extracts the uploaded document. It writes the
// error response itself and reports whether the caller should continue.
func (h *ExtractionHandler) run(c *gin.Context) (*service.Extraction, bool) {
	var req dto.ExtractionRequest
	if err := c.ShouldBind(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to parse multipart form", err)
		return nil, false
	}
	if err := req.Validate(h.maxFileSize); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return nil, false
	}
	if req.AI && !h.extractionService.AIAvailable() {
		h.log.Info().Msg("ai fallback requested but not configured")
	}

	file, err := req.File.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to open file", err)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read file", err)
		return nil, false
	}

	h.log.Info().Str("filename", req.File.Filename).Int64("size", req.File.Size).Bool("ai", req.AI).Msg("received extraction request")

	extraction, err := h.extractionService.Extract(c.Request.Context(), service.Document{
		Filename: req.File.Filename,
		Data:     data,
		Password: req.Password,
	}, req.AI)
	switch {
	case errors.Is(err, service.ErrUnsupportedFormat), errors.Is(err, service.ErrEmptyDocument):
		h.sendError(c, http.StatusUnprocessableEntity, "Document could not be read", err)
		return nil, false
	case err != nil:
		h.sendError(c, http.StatusInternalServerError, "Failed to extract accounts", err)
		return nil, false
	}
	return extraction, true
}

// sendError sends a structured error response
func (h *ExtractionHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		h.log.Error().Err(err).Int("status", statusCode).Msg(message)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
