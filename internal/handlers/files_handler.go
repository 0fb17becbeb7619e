package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"resume-scanner-backend/internal/models"
	"resume-scanner-backend/internal/services"
)

type FilesHandler struct {
	storage services.StorageService
}

func NewFilesHandler(storage services.StorageService) *FilesHandler {
	return &FilesHandler{
		storage: storage,
	}
}

// HandleListResumes handles GET /files/resumes
func (h *FilesHandler) HandleListResumes(c *fiber.Ctx) error {
	return h.handleList(c, models.CategoryResume, "resumes")
}

// HandleListJobDescriptions handles GET /files/job_descriptions
func (h *FilesHandler) HandleListJobDescriptions(c *fiber.Ctx) error {
	return h.handleList(c, models.CategoryJobDescription, "job_descriptions")
}

func (h *FilesHandler) handleList(c *fiber.Ctx, category models.Category, key string) error {
	files, err := h.storage.ListFiles(category)
	if err != nil {
		log.Printf("❌ Failed to list %s files: %v\n", category, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list stored files",
		})
	}

	return c.JSON(fiber.Map{
		key: files,
	})
}
