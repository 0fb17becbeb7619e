package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"resume-scanner-backend/internal/models"
	"resume-scanner-backend/internal/services"
)

type UploadHandler struct {
	validator services.UploadValidator
	storage   services.StorageService
}

func NewUploadHandler(
	validator services.UploadValidator,
	storage services.StorageService,
) *UploadHandler {
	return &UploadHandler{
		validator: validator,
		storage:   storage,
	}
}

// HandleResumeUpload handles POST /upload/resume
func (h *UploadHandler) HandleResumeUpload(c *fiber.Ctx) error {
	return h.handleUpload(c, models.CategoryResume)
}

// HandleJobDescriptionUpload handles POST /upload/job_description
func (h *UploadHandler) HandleJobDescriptionUpload(c *fiber.Ctx) error {
	return h.handleUpload(c, models.CategoryJobDescription)
}

func (h *UploadHandler) handleUpload(c *fiber.Ctx, category models.Category) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "multipart 'file' field is required",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer src.Close()

	// Buffer the upload once; validation and storage both read from this
	// buffer, so the transport stream is never consumed twice.
	content, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	format, err := h.validator.Validate(content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPayloadTooLarge):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("File too large. Max size: %d bytes", h.validator.MaxFileSize()),
			})
		case errors.Is(err, services.ErrUnsupportedType):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported file type. Accepted types: PDF, DOCX, plain text",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid upload",
		})
	}

	filename := h.storage.GenerateFilename(category, format)
	stored, err := h.storage.SaveFile(category, filename, content)
	if err != nil {
		log.Printf("❌ Failed to store %s upload: %v\n", category, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to store uploaded file",
		})
	}

	return c.JSON(models.UploadResponse{
		Filename:     stored.Filename,
		OriginalName: fileHeader.Filename,
		FileType:     format.MIME(),
		FileSize:     stored.Size,
		UploadedAt:   stored.CreatedAt.UTC().Format(time.RFC3339),
	})
}
