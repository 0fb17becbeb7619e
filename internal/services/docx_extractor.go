package services

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"resume-scanner-backend/internal/models"
)

type DocxExtractor interface {
	Extract(filePath string) models.ExtractionResult
}

type docxExtractor struct{}

func NewDocxExtractor() DocxExtractor {
	return &docxExtractor{}
}

// Minimal WordprocessingML subset. Matching is by local element name, so
// the w: namespace prefix is irrelevant. Paragraphs nested inside table
// cells are only reachable through wordCell, keeping body-level paragraphs
// separate from table content.
type wordDocument struct {
	Body wordBody `xml:"body"`
}

type wordBody struct {
	Paragraphs []wordParagraph `xml:"p"`
	Tables     []wordTable     `xml:"tbl"`
}

type wordParagraph struct {
	Runs []wordRun `xml:"r"`
}

type wordRun struct {
	Texts []string `xml:"t"`
}

type wordTable struct {
	Rows []wordRow `xml:"tr"`
}

type wordRow struct {
	Cells []wordCell `xml:"tc"`
}

type wordCell struct {
	Paragraphs []wordParagraph `xml:"p"`
}

func (p wordParagraph) text() string {
	var b strings.Builder
	for _, run := range p.Runs {
		for _, t := range run.Texts {
			b.WriteString(t)
		}
	}
	return b.String()
}

func (c wordCell) text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, p.text())
	}
	return strings.Join(parts, "\n")
}

// Extract concatenates the document's top-level paragraphs in order, then
// every table cell row-major, skipping empty units. Each contributing unit
// is joined by a newline.
func (d *docxExtractor) Extract(filePath string) models.ExtractionResult {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return models.ExtractionFailure(models.FormatDOCX, fmt.Errorf("DOCX extraction failed: %w", err))
	}
	defer doc.Close()

	var parsed wordDocument
	if err := xml.Unmarshal([]byte(doc.Editable().GetContent()), &parsed); err != nil {
		return models.ExtractionFailure(models.FormatDOCX, fmt.Errorf("DOCX extraction failed: %w", err))
	}

	var units []string
	for _, paragraph := range parsed.Body.Paragraphs {
		if text := paragraph.text(); strings.TrimSpace(text) != "" {
			units = append(units, text)
		}
	}
	for _, table := range parsed.Body.Tables {
		for _, row := range table.Rows {
			for _, cell := range row.Cells {
				if text := cell.text(); strings.TrimSpace(text) != "" {
					units = append(units, text)
				}
			}
		}
	}

	return models.ExtractionResult{
		Success: true,
		Text:    strings.Join(units, "\n"),
		Format:  models.FormatDOCX,
	}
}
