package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"resume-scanner-backend/internal/models"
	"resume-scanner-backend/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(jobID uuid.UUID) bool
}

type worker struct {
	jobRepo     repositories.ExtractionJobRepository
	storage     StorageService
	extractor   TextExtractor
	jobQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(
	jobRepo repositories.ExtractionJobRepository,
	storage StorageService,
	extractor TextExtractor,
	concurrency int,
) Worker {
	return &worker{
		jobRepo:     jobRepo,
		storage:     storage,
		extractor:   extractor,
		jobQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueJob implements Worker. It never blocks the caller: a full queue
// or a stopped worker reports false so the handler can shed load instead
// of hanging the request.
func (w *worker) EnqueueJob(jobID uuid.UUID) bool {
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job %s\n", jobID)
		return false
	default:
	}

	select {
	case w.jobQueue <- jobID:
		log.Printf("📥 Extraction job %s enqueued\n", jobID)
		return true
	default:
		log.Printf("⚠️  Extraction queue full, rejecting job %s\n", jobID)
		return false
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			log.Printf("👷 Worker #%d stopped: %v\n", workerID, ctx.Err())
			return
		case jobID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing job %s\n", workerID, jobID)
			w.processJob(jobID)
		}
	}
}

func (w *worker) processJob(jobID uuid.UUID) {
	job, err := w.jobRepo.FindByID(jobID)
	if err != nil {
		log.Printf("❌ Failed to load extraction job %s: %v\n", jobID, err)
		return
	}

	job.Status = models.StatusProcessing
	if err := w.jobRepo.Update(job); err != nil {
		log.Printf("❌ Failed to update extraction job %s: %v\n", jobID, err)
		return
	}

	result := w.extractor.Extract(job.Format, w.storage.GetFilePath(job.Category, job.Filename))

	job.Result = &result
	if result.Success {
		job.Status = models.StatusCompleted
	} else {
		job.Status = models.StatusFailed
	}

	if err := w.jobRepo.Update(job); err != nil {
		log.Printf("❌ Failed to record result for job %s: %v\n", jobID, err)
		return
	}

	if result.Success {
		log.Printf("✅ Extraction job %s completed\n", jobID)
	} else {
		log.Printf("❌ Extraction job %s failed: %s\n", jobID, result.Error)
	}
}
