package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/task-management/apperr"
)

// handleServiceError maps the service error taxonomy to HTTP status codes:
// NotFound→404, Validation→400 with field map, InvalidOperation→400,
// anything else→500 with a generic message.
func handleServiceError(c *fiber.Ctx, err error) error {
	var validationErr *apperr.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: validationErr.Message,
			Errors:  validationErr.Fields,
		})
	}

	var notFoundErr *apperr.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: notFoundErr.Error(),
		})
	}

	var invalidOpErr *apperr.InvalidOperationError
	if errors.As(err, &invalidOpErr) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: invalidOpErr.Message,
		})
	}

	log.Printf("[api] Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Message: "An internal server error occurred.",
		Details: err.Error(),
	})
}
