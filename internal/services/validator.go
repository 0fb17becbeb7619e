package services

import (
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"resume-scanner-backend/internal/models"
)

var (
	ErrPayloadTooLarge = errors.New("file size exceeds the maximum limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

type UploadValidator interface {
	Validate(content []byte) (models.DocumentFormat, error)
	MaxFileSize() int64
}

type uploadValidator struct {
	maxFileSize int64
}

func NewUploadValidator(maxFileSize int64) UploadValidator {
	return &uploadValidator{
		maxFileSize: maxFileSize,
	}
}

// Validate checks the upload against the size ceiling and the accepted
// format set. It only inspects the buffer, never writes, so callers can
// hand the same bytes to storage afterwards. Size is checked before
// sniffing to avoid classifying payloads that are rejected anyway.
func (v *uploadValidator) Validate(content []byte) (models.DocumentFormat, error) {
	if int64(len(content)) > v.maxFileSize {
		return "", fmt.Errorf("%w of %d bytes", ErrPayloadTooLarge, v.maxFileSize)
	}
	return SniffFormat(content)
}

func (v *uploadValidator) MaxFileSize() int64 {
	return v.maxFileSize
}

// SniffFormat classifies content by magic bytes. The client-declared
// filename and Content-Type header are deliberately ignored. Content
// outside the accepted set yields ErrUnsupportedType.
func SniffFormat(content []byte) (models.DocumentFormat, error) {
	detected := mimetype.Detect(content)
	switch {
	case detected.Is(models.MimePDF):
		return models.FormatPDF, nil
	case detected.Is(models.MimeDOCX):
		return models.FormatDOCX, nil
	case detected.Is(models.MimeText):
		return models.FormatText, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, detected.String())
}
