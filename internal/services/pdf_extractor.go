package services

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"resume-scanner-backend/internal/models"
)

type PDFExtractor interface {
	Extract(filePath string) models.ExtractionResult
}

type pdfExtractor struct{}

func NewPDFExtractor() PDFExtractor {
	return &pdfExtractor{}
}

// Extract pulls the visible text out of every page, in page order, joined
// by single newlines. A page without extractable text (scanned image,
// undecodable content) simply contributes nothing; a document where every
// page is like that is still a successful extraction with empty text.
func (p *pdfExtractor) Extract(filePath string) (result models.ExtractionResult) {
	// the pdf library panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			result = models.ExtractionFailure(models.FormatPDF, fmt.Errorf("PDF extraction failed: %v", r))
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return models.ExtractionFailure(models.FormatPDF, fmt.Errorf("PDF extraction failed: %w", err))
	}
	defer f.Close()

	totalPages := r.NumPage()

	var pages []string
	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	return models.ExtractionResult{
		Success:   true,
		Text:      strings.Join(pages, "\n"),
		Format:    models.FormatPDF,
		PageCount: totalPages,
	}
}
