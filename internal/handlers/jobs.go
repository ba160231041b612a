package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/hotsax/internal/jobs"
	"github.com/soltixdb/hotsax/internal/models"
)

// SubmitJob validates a discord request and queues it for a worker
// POST /v1/discords/jobs
func (h *Handler) SubmitJob(c *fiber.Ctx) error {
	if h.dispatcher == nil {
		return jobsDisabled(c)
	}

	var req models.DiscordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c, err)
	}
	if err := h.service.Validate(&req); err != nil {
		return err
	}

	job, err := h.dispatcher.Submit(c.UserContext(), req)
	if err != nil {
		h.logger.WithContext(c.UserContext()).Error("Failed to submit job", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "QUEUE_ERROR",
				Message: "Failed to queue job",
				Details: map[string]interface{}{"error": err.Error()},
			},
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(models.JobSubmitResponse{
		JobID:       job.ID,
		Status:      string(jobs.StatusPending),
		SubmittedAt: job.SubmittedAt.Format(time.RFC3339),
	})
}

// GetJob reports the state of a queued job and its result once finished
// GET /v1/discords/jobs/:id
func (h *Handler) GetJob(c *fiber.Ctx) error {
	if h.dispatcher == nil {
		return jobsDisabled(c)
	}

	id := c.Params("id")
	entry, ok := h.dispatcher.Status(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "JOB_NOT_FOUND",
				Message: "Job not found or expired",
				Path:    c.Path(),
			},
		})
	}

	resp := models.JobStatusResponse{
		JobID:       entry.ID,
		Status:      string(entry.Status),
		SubmittedAt: entry.SubmittedAt.Format(time.RFC3339),
	}
	if entry.Result != nil && entry.Status.Finished() {
		resp.CompletedAt = entry.Result.CompletedAt.Format(time.RFC3339)
		resp.Result = entry.Result.Response
		resp.Error = entry.Result.Error
	}
	return c.JSON(resp)
}

func jobsDisabled(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "JOBS_DISABLED",
			Message: "Asynchronous jobs are not enabled",
		},
	})
}
