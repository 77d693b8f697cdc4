// Package pdftext converts PDF documents into plain text.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// ErrEmptyDocument is returned for a zero-length payload.
var ErrEmptyDocument = errors.New("empty document")

// Extractor reads the text layer of PDF documents.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a new PDF text extractor
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract returns the text of every page in page order, joined with single
// spaces and trimmed. Pages whose text cannot be decoded are skipped.
func (e *Extractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	// the pdf package panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("Failed to read page text", zap.Int("page", i), zap.Error(err))
			continue
		}

		b.WriteString(pageText)
		b.WriteString(" ")
	}

	return strings.TrimSpace(b.String()), nil
}
