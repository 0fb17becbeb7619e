package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-scanner-backend/internal/models"
)

type ExtractionJobRepository interface {
	Create(job *models.ExtractionJob) error
	FindByID(id uuid.UUID) (*models.ExtractionJob, error)
	Update(job *models.ExtractionJob) error
	Delete(id uuid.UUID) error
}

// extractionJobRepository keeps jobs in memory for the lifetime of the
// process. The service persists nothing beyond the flat files themselves,
// so job records are not durable across restarts.
type extractionJobRepository struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]models.ExtractionJob
}

func NewExtractionJobRepository() ExtractionJobRepository {
	return &extractionJobRepository{
		jobs: make(map[uuid.UUID]models.ExtractionJob),
	}
}

// Create implements ExtractionJobRepository.
func (r *extractionJobRepository) Create(job *models.ExtractionJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[job.ID]; exists {
		return fmt.Errorf("extraction job already exists: %s", job.ID)
	}
	r.jobs[job.ID] = *job

	return nil
}

// FindByID implements ExtractionJobRepository. The returned job is a copy;
// mutations are only visible after Update.
func (r *extractionJobRepository) FindByID(id uuid.UUID) (*models.ExtractionJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("extraction job not found: %s", id)
	}

	return &job, nil
}

// Delete implements ExtractionJobRepository.
func (r *extractionJobRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return fmt.Errorf("extraction job not found: %s", id)
	}
	delete(r.jobs, id)

	return nil
}

// Update implements ExtractionJobRepository.
func (r *extractionJobRepository) Update(job *models.ExtractionJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[job.ID]; !ok {
		return fmt.Errorf("extraction job not found: %s", job.ID)
	}
	job.UpdatedAt = time.Now()
	r.jobs[job.ID] = *job

	return nil
}
