package transport

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/respond"
)

func GetVillagesHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		villages, err := database.GetVillages(db)
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, villages)
	}
}

func CreateVillageHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var village models.Village
		if err := c.BodyParser(&village); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}

		if village.Name == "" {
			return respond.Error(c, models.NewValidationError("invalid village",
				models.FieldError{Field: "name", Error: "name is required"}))
		}
		if village.DistanceFromSchool.IsNegative() {
			return respond.Error(c, models.NewValidationError("invalid village",
				models.FieldError{Field: "distance_from_school", Error: "distance must not be negative"}))
		}

		if err := database.CreateVillage(db, &village); err != nil {
			return respond.Error(c, err)
		}
		return respond.Created(c, village)
	}
}
