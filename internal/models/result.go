package models

type UploadResponse struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
	FileSize     int64  `json:"file_size"`
	UploadedAt   string `json:"uploaded_at"`
}

type ExtractRequest struct {
	Filename string `json:"filename"`
	Category string `json:"category"`
}

type ExtractResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ExtractResultResponse struct {
	ID     string            `json:"id"`
	Status string            `json:"status"`
	Result *ExtractionResult `json:"result,omitempty"`
}

// ExtractionResult is the uniform outcome of a text extraction. Extractors
// never return a Go error to their caller; every failure mode (corrupt
// file, encrypted document, parser error) is captured here with Success
// set to false. Empty Text with Success true is a valid outcome, e.g. an
// image-only PDF.
type ExtractionResult struct {
	Success   bool           `json:"success"`
	Text      string         `json:"text"`
	Error     string         `json:"error,omitempty"`
	Format    DocumentFormat `json:"file_type"`
	PageCount int            `json:"page_count,omitempty"`
}

func ExtractionFailure(format DocumentFormat, err error) ExtractionResult {
	return ExtractionResult{
		Success: false,
		Text:    "",
		Error:   err.Error(),
		Format:  format,
	}
}
