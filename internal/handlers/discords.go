package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/hotsax/internal/models"
)

// ListDetectors returns the registered detection algorithms
// GET /v1/detectors
func (h *Handler) ListDetectors(c *fiber.Ctx) error {
	return c.JSON(h.service.Detectors())
}

// FindDiscords runs a discord search synchronously
// POST /v1/discords
func (h *Handler) FindDiscords(c *fiber.Ctx) error {
	var req models.DiscordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c, err)
	}

	resp, err := h.service.Detect(c.UserContext(), &req)
	if err != nil {
		// Rendered by the error handler with the service error code
		return err
	}
	return c.JSON(resp)
}

func invalidJSON(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_JSON",
			Message: "Failed to parse JSON body",
			Details: map[string]interface{}{"error": err.Error()},
		},
	})
}
