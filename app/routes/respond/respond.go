package respond

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

// Error maps the service error taxonomy onto HTTP responses. Validation
// failures carry their field list so the client can point at the bad item.
func Error(c *fiber.Ctx, err error) error {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  ve.Message,
			"fields": ve.Fields,
		})
	}

	var nf *models.NotFoundError
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": nf.Error()})
	}

	var ce *models.ConflictError
	if errors.As(err, &ce) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": ce.Message})
	}

	var de *models.DependencyError
	if errors.As(err, &de) {
		log.Printf("Dependency failure: %v", de)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Service temporarily unavailable"})
	}

	log.Printf("Unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

// OK wraps a payload in the standard success envelope.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// Created is OK with a 201 status.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}
