package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Aashish23092/finstatement-extractor/catalog"
	"github.com/Aashish23092/finstatement-extractor/config"
	"github.com/Aashish23092/finstatement-extractor/derived"
	"github.com/Aashish23092/finstatement-extractor/logger"
	"github.com/Aashish23092/finstatement-extractor/report"
	"github.com/Aashish23092/finstatement-extractor/resolver"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyDocument     = errors.New("document has no readable text")
)

const (
	// SourceAI tags entries proposed by the AI fallback.
	SourceAI     = "ai"
	aiConfidence = 0.5

	// minTextLayer is the number of non-space characters below which a
	// PDF text layer is treated as a scan.
	minTextLayer = 20
)

// OCRClient reads text out of images.
type OCRClient interface {
	ExtractTextFromBytes(data []byte) (string, error)
	ExtractTextFromImage(img image.Image) (string, error)
}

// AIExtractor proposes values for accounts the pipeline left unresolved.
type AIExtractor interface {
	ExtractMissing(ctx context.Context, document string, missing []resolver.MissingItem) (map[int]resolver.ExternalValue, error)
}

// Document is an uploaded or local file to extract from.
type Document struct {
	Filename string
	Data     []byte
	Password string
}

// Extraction is the outcome of one run.
type Extraction struct {
	RunID       string
	Filename    string
	Rows        []report.Row
	Summary     report.Summary
	Derived     []derived.Outcome
	AIUsed      bool
	ProcessedAt time.Time
}

type ExtractionService struct {
	resolver *resolver.Resolver
	derived  *derived.Engine
	ocr      OCRClient
	pdf      PDFProcessor
	ai       AIExtractor
	aiConfig config.AIConfig
	log      zerolog.Logger
}

// NewExtractionService wires the pipeline. ai may be nil, which disables
// the fallback regardless of what a request asks for.
func NewExtractionService(
	res *resolver.Resolver,
	ocr OCRClient,
	pdfProcessor PDFProcessor,
	ai AIExtractor,
	aiConfig config.AIConfig,
	log zerolog.Logger,
) *ExtractionService {
	return &ExtractionService{
		resolver: res,
		derived:  derived.NewEngine(log),
		ocr:      ocr,
		pdf:      pdfProcessor,
		ai:       ai,
		aiConfig: aiConfig,
		log:      log,
	}
}

// AIAvailable reports whether requests may ask for the AI fallback.
func (s *ExtractionService) AIAvailable() bool {
	return s.ai != nil
}

// Extract loads the document text and runs the pipeline over it.
func (s *ExtractionService) Extract(ctx context.Context, doc Document, useAI bool) (*Extraction, error) {
	text, err := s.LoadText(doc)
	if err != nil {
		return nil, err
	}
	return s.ExtractText(ctx, doc.Filename, text, useAI)
}

// ExtractText runs resolution, derived metrics and, when requested, the AI
// fallback over text. The core result is complete before the fallback
// starts and survives any fallback failure. Only cancellation of ctx during
// scanning fails the run.
func (s *ExtractionService) ExtractText(ctx context.Context, filename, text string, useAI bool) (*Extraction, error) {
	runID := uuid.NewString()
	log := logger.WithFields(s.log, map[string]any{"run_id": runID, "filename": filename})
	ctx = logger.WithContext(ctx, log)

	start := time.Now()
	result, err := s.resolver.ResolveContext(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("resolve accounts: %w", err)
	}
	outcomes := s.derived.Apply(result)
	log.Info().
		Int("resolved", result.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("core extraction finished")

	aiUsed := false
	if useAI && s.ai != nil {
		aiUsed = s.applyAI(ctx, text, result)
	}

	rows := report.Build(catalog.All(), result)
	return &Extraction{
		RunID:       runID,
		Filename:    filename,
		Rows:        rows,
		Summary:     report.Summarize(rows),
		Derived:     outcomes,
		AIUsed:      aiUsed,
		ProcessedAt: time.Now(),
	}, nil
}

func (s *ExtractionService) applyAI(ctx context.Context, text string, result *resolver.ExtractionResult) bool {
	log := logger.FromContext(ctx)

	missing := result.Missing()
	if len(missing) == 0 {
		return false
	}
	if s.aiConfig.MaxItems > 0 && len(missing) > s.aiConfig.MaxItems {
		missing = missing[:s.aiConfig.MaxItems]
	}

	if s.aiConfig.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.aiConfig.Timeout)
		defer cancel()
	}

	values, err := s.ai.ExtractMissing(ctx, prefixRunes(text, s.aiConfig.PrefixChars), missing)
	if err != nil {
		log.Warn().Err(err).Int("missing", len(missing)).Msg("ai fallback failed")
		return false
	}

	merged, dropped := result.MergeExternal(values, SourceAI, aiConfidence)
	if len(dropped) > 0 {
		log.Warn().Ints("ids", dropped).Msg("ai fallback returned unknown account ids")
	}
	log.Info().Int("requested", len(missing)).Int("merged", len(merged)).Msg("ai fallback finished")
	return true
}

// LoadText turns a document into UTF-8 text according to its extension.
func (s *ExtractionService) LoadText(doc Document) (string, error) {
	ext := strings.ToLower(filepath.Ext(doc.Filename))
	switch ext {
	case ".md", ".markdown", ".txt":
		text := strings.TrimPrefix(strings.ToValidUTF8(string(doc.Data), ""), "\ufeff")
		if strings.TrimSpace(text) == "" {
			return "", ErrEmptyDocument
		}
		return text, nil
	case ".pdf":
		return s.loadPDF(doc)
	case ".png", ".jpg", ".jpeg":
		text, err := s.ocr.ExtractTextFromBytes(doc.Data)
		if err != nil {
			return "", fmt.Errorf("image OCR failed: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			return "", ErrEmptyDocument
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func (s *ExtractionService) loadPDF(doc Document) (string, error) {
	text, err := s.pdf.ExtractText(doc.Data, doc.Password)
	if err != nil {
		return "", fmt.Errorf("pdf text extraction failed: %w", err)
	}
	if nonSpaceCount(text) >= minTextLayer {
		return text, nil
	}

	s.log.Info().Str("filename", doc.Filename).Msg("pdf text layer is weak, running OCR on page images")
	images, err := s.pdf.ExtractImages(doc.Data, doc.Password)
	if err != nil {
		return "", fmt.Errorf("pdf image extraction failed: %w", err)
	}

	var pages []string
	for i, img := range images {
		pageText, err := s.ocr.ExtractTextFromImage(img)
		if err != nil {
			s.log.Warn().Err(err).Int("image", i).Str("filename", doc.Filename).Msg("OCR failed for a page")
			continue
		}
		pages = append(pages, pageText)
	}

	ocrText := strings.Join(pages, "\n")
	if nonSpaceCount(ocrText) > nonSpaceCount(text) {
		text = ocrText
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

func nonSpaceCount(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func prefixRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
