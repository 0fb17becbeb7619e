package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"resume-scanner-backend/internal/config"
	"resume-scanner-backend/internal/handlers"
	"resume-scanner-backend/internal/repositories"
	"resume-scanner-backend/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDirs(); err != nil {
		log.Fatalf("❌ Failed to create upload directories: %v", err)
	}

	validator := services.NewUploadValidator(cfg.Storage.MaxFileSize)
	extractor := services.NewTextExtractor(
		services.NewPDFExtractor(),
		services.NewDocxExtractor(),
	)
	log.Println("✅ Services initialized successfully")

	// Initialize the extraction job registry
	jobRepo := repositories.NewExtractionJobRepository()

	// Initialize worker
	worker := services.NewWorker(
		jobRepo,
		storageService,
		extractor,
		cfg.Worker.Concurrency,
	)

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(validator, storageService)
	filesHandler := handlers.NewFilesHandler(storageService)
	extractHandler := handlers.NewExtractHandler(jobRepo, storageService, worker)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Scanner API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		// Headroom over the validator's ceiling so oversized uploads get a
		// 400 naming the limit instead of a bare 413 for multipart framing.
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "Resume Scanner",
		})
	})

	// API endpoints
	app.Post("/upload/resume", uploadHandler.HandleResumeUpload)
	app.Post("/upload/job_description", uploadHandler.HandleJobDescriptionUpload)
	app.Get("/files/resumes", filesHandler.HandleListResumes)
	app.Get("/files/job_descriptions", filesHandler.HandleListJobDescriptions)
	app.Post("/extract", extractHandler.HandleExtract)
	app.Get("/extract/:id", extractHandler.HandleGetResult)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the Resume Scanner API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /upload/resume",
				"POST /upload/job_description",
				"GET /files/resumes",
				"GET /files/job_descriptions",
				"POST /extract",
				"GET /extract/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
