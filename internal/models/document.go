package models

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DocumentFormat is the closed set of file formats the service accepts.
// Values are only produced by the upload validator (from sniffed content)
// or derived from a stored filename's extension.
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
	FormatText DocumentFormat = "txt"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

func (f DocumentFormat) MIME() string {
	switch f {
	case FormatPDF:
		return MimePDF
	case FormatDOCX:
		return MimeDOCX
	case FormatText:
		return MimeText
	}
	return "application/octet-stream"
}

// Ext returns the storage extension for the format. Unknown values fall
// back to "bin"; validator gating makes that unreachable in practice.
func (f DocumentFormat) Ext() string {
	switch f {
	case FormatPDF, FormatDOCX, FormatText:
		return string(f)
	}
	return "bin"
}

// FormatFromFilename recovers the format of an already-stored file from
// its extension.
func FormatFromFilename(filename string) (DocumentFormat, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch DocumentFormat(ext) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	case FormatText:
		return FormatText, nil
	}
	return "", fmt.Errorf("unrecognized file extension: %q", ext)
}

// Category is the upload purpose, which determines the storage
// subdirectory and the filename prefix.
type Category string

const (
	CategoryResume         Category = "resume"
	CategoryJobDescription Category = "job_description"
)

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryResume:
		return CategoryResume, nil
	case CategoryJobDescription:
		return CategoryJobDescription, nil
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// Prefix is the filename prefix for files in this category.
func (c Category) Prefix() string {
	if c == CategoryJobDescription {
		return "jd"
	}
	return "resume"
}

// Dir is the subdirectory (under the upload root) for this category.
func (c Category) Dir() string {
	if c == CategoryJobDescription {
		return "job_descriptions"
	}
	return "resumes"
}

// StoredFile describes a file that has been durably written to disk.
// Size is read back from disk after the write, not assumed from the
// upload buffer.
type StoredFile struct {
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// FileInfo is a single entry in a category directory listing.
type FileInfo struct {
	Filename     string    `json:"filename"`
	Size         int64     `json:"size"`
	UploadedTime time.Time `json:"uploaded_time"`
}
