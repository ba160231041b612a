// Package jobs defines the envelopes exchanged between the API and the
// discord workers, their wire codec and the in-memory job store.
package jobs

import (
	"time"

	"github.com/google/uuid"

	"github.com/soltixdb/hotsax/internal/models"
)

// Status is the lifecycle state of a job
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Finished reports whether the status is terminal
func (s Status) Finished() bool {
	return s == StatusDone || s == StatusFailed
}

// Job is a discord detection request queued for a worker
type Job struct {
	ID          string                `json:"id"`
	RequestID   string                `json:"request_id,omitempty"`
	Request     models.DiscordRequest `json:"request"`
	SubmittedAt time.Time             `json:"submitted_at"`
}

// NewJob creates a job with a fresh id
func NewJob(req models.DiscordRequest, requestID string) *Job {
	return &Job{
		ID:          uuid.NewString(),
		RequestID:   requestID,
		Request:     req,
		SubmittedAt: time.Now().UTC(),
	}
}

// Result is what a worker reports back for a job
type Result struct {
	JobID       string                  `json:"job_id"`
	Status      Status                  `json:"status"`
	Response    *models.DiscordResponse `json:"response,omitempty"`
	Error       *models.ErrorDetail     `json:"error,omitempty"`
	StartedAt   time.Time               `json:"started_at"`
	CompletedAt time.Time               `json:"completed_at"`
}
