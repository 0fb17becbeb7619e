package models

import (
	"time"

	"github.com/google/uuid"
)

type ExtractionStatus string

const (
	StatusQueued     ExtractionStatus = "queued"
	StatusProcessing ExtractionStatus = "processing"
	StatusCompleted  ExtractionStatus = "completed"
	StatusFailed     ExtractionStatus = "failed"
)

// ExtractionJob tracks one asynchronous extraction of a stored file. Jobs
// live in an in-memory registry for the lifetime of the process; the text
// itself is never cached beyond the job record.
type ExtractionJob struct {
	ID        uuid.UUID         `json:"id"`
	Filename  string            `json:"filename"`
	Category  Category          `json:"category"`
	Format    DocumentFormat    `json:"format"`
	Status    ExtractionStatus  `json:"status"`
	Result    *ExtractionResult `json:"result,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
