package dto

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// Custom errors
var (
	ErrFileRequired      = errors.New("file is required")
	ErrUnsupportedExport = errors.New("format must be csv or xlsx")
)

// SupportedExtensions lists the document types the service can read.
var SupportedExtensions = []string{".md", ".markdown", ".txt", ".pdf", ".png", ".jpg", ".jpeg"}

// ExtractionRequest represents the incoming multipart request
type ExtractionRequest struct {
	File     *multipart.FileHeader `form:"file" binding:"required"`
	Password string                `form:"password"`
	AI       bool                  `form:"ai"`
}

// Validate performs basic validation on the request
func (r *ExtractionRequest) Validate(maxSize int64) error {
	if r.File == nil {
		return ErrFileRequired
	}
	if maxSize > 0 && r.File.Size > maxSize {
		return errors.New("file exceeds the maximum upload size")
	}
	ext := strings.ToLower(filepath.Ext(r.File.Filename))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return nil
		}
	}
	return errors.New("unsupported file type " + ext)
}

// ExportFormat validates the export query parameter.
func ExportFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "csv", "xlsx":
		return f, nil
	default:
		return "", ErrUnsupportedExport
	}
}
