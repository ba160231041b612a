package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/hotsax/internal/models"
)

const healthCheckTimeout = 2 * time.Second

// Health handles health check requests. The queue is probed when one is
// configured; an unreachable queue degrades the status to 503.
func (h *Handler) Health(c *fiber.Ctx) error {
	resp := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   Version,
	}

	if h.queue != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
		defer cancel()

		resp.Checks = map[string]string{}
		if err := h.queue.Ping(ctx); err != nil {
			h.logger.Warn("Queue health check failed", "queue", h.queue.Type(), "error", err)
			resp.Status = "degraded"
			resp.Checks["queue"] = err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
		}
		resp.Checks["queue"] = "ok"
	}

	return c.JSON(resp)
}

// NotFound handles 404 errors
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "Route not found",
			Path:    c.Path(),
		},
	})
}
