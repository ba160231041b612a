package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/hotsax/internal/logging"
	"github.com/soltixdb/hotsax/internal/models"
	"github.com/soltixdb/hotsax/internal/services"
)

// ServiceErrorStatus maps a service error code to an HTTP status
func ServiceErrorStatus(se *services.ServiceError) int {
	switch se.Code {
	case services.CodeInvalidParameter, services.CodeInvalidAlgorithm:
		return fiber.StatusBadRequest
	case services.CodeSeriesTooShort:
		return fiber.StatusUnprocessableEntity
	case services.CodeDetectionFailed:
		if reason, _ := se.Details["reason"].(string); reason == "timeout" {
			return fiber.StatusGatewayTimeout
		}
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler returns a custom error handler middleware.
// Service errors keep their code; anything else is reported generically.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		detail := models.ErrorDetail{
			Code:    "ERROR",
			Message: "Internal Server Error",
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			detail.Message = fe.Message
		} else if se, ok := services.AsServiceError(err); ok {
			status = ServiceErrorStatus(se)
			detail.Code = se.Code
			detail.Message = se.Message
			detail.Details = se.Details
		}

		log := logger.Warn
		if status >= fiber.StatusInternalServerError {
			log = logger.Error
		}
		log("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", status,
			"error", err,
		)

		return c.Status(status).JSON(models.ErrorResponse{Error: detail})
	}
}
