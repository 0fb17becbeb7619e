package handlers

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-scanner-backend/internal/models"
	"resume-scanner-backend/internal/repositories"
	"resume-scanner-backend/internal/services"
)

type ExtractHandler struct {
	jobRepo repositories.ExtractionJobRepository
	storage services.StorageService
	worker  services.Worker
}

func NewExtractHandler(
	jobRepo repositories.ExtractionJobRepository,
	storage services.StorageService,
	worker services.Worker,
) *ExtractHandler {
	return &ExtractHandler{
		jobRepo: jobRepo,
		storage: storage,
		worker:  worker,
	}
}

// HandleExtract handles POST /extract
func (h *ExtractHandler) HandleExtract(c *fiber.Ctx) error {
	var req models.ExtractRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "filename is required",
		})
	}

	// The filename must be a bare name as produced by the storage namer.
	// Anything carrying path separators or dot segments could resolve
	// outside the upload root.
	if req.Filename != filepath.Base(req.Filename) || req.Filename == "." || req.Filename == ".." {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid filename",
		})
	}

	if req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "category is required",
		})
	}

	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category. Allowed values: resume, job_description",
		})
	}

	format, err := models.FormatFromFilename(req.Filename)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unrecognized file extension",
		})
	}

	if _, err := os.Stat(h.storage.GetFilePath(category, req.Filename)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "File not found",
		})
	}

	job := &models.ExtractionJob{
		ID:        uuid.New(),
		Filename:  req.Filename,
		Category:  category,
		Format:    format,
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create extraction job",
		})
	}

	if !h.worker.EnqueueJob(job.ID) {
		if err := h.jobRepo.Delete(job.ID); err != nil {
			log.Printf("❌ Failed to discard unqueued job %s: %v\n", job.ID, err)
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Extraction queue is full. Try again later.",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(models.ExtractResponse{
		ID:     job.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleGetResult handles GET /extract/:id
func (h *ExtractHandler) HandleGetResult(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid extraction job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Extraction job not found",
		})
	}

	response := models.ExtractResultResponse{
		ID:     job.ID.String(),
		Status: string(job.Status),
	}

	if job.Status == models.StatusCompleted || job.Status == models.StatusFailed {
		response.Result = job.Result
	}

	return c.JSON(response)
}
