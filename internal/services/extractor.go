package services

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"resume-scanner-backend/internal/models"
)

// TextExtractor turns a stored document into plain text. Extract never
// returns a Go error: one bad document among a batch must not abort the
// rest, so every failure is captured in the result.
type TextExtractor interface {
	Extract(format models.DocumentFormat, filePath string) models.ExtractionResult
}

type textExtractor struct {
	pdf  PDFExtractor
	docx DocxExtractor
}

func NewTextExtractor(pdf PDFExtractor, docx DocxExtractor) TextExtractor {
	return &textExtractor{
		pdf:  pdf,
		docx: docx,
	}
}

// Extract dispatches once on the format decided at validation time.
func (t *textExtractor) Extract(format models.DocumentFormat, filePath string) models.ExtractionResult {
	switch format {
	case models.FormatPDF:
		return t.pdf.Extract(filePath)
	case models.FormatDOCX:
		return t.docx.Extract(filePath)
	case models.FormatText:
		return t.extractPlainText(filePath)
	}
	return models.ExtractionFailure(format, fmt.Errorf("no extractor for format %q", format))
}

// extractPlainText passes the file content through as-is. Declaring the
// plain-text format already implies text, so invalid UTF-8 sequences are
// replaced rather than treated as a failure.
func (t *textExtractor) extractPlainText(filePath string) models.ExtractionResult {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return models.ExtractionFailure(models.FormatText, fmt.Errorf("text extraction failed: %w", err))
	}

	return models.ExtractionResult{
		Success: true,
		Text:    strings.ToValidUTF8(string(content), string(utf8.RuneError)),
		Format:  models.FormatText,
	}
}
