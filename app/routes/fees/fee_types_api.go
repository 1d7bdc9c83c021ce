package fees

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/respond"
)

func GetFeeTypesHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		feeTypes, err := database.GetFeeTypes(db)
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, feeTypes)
	}
}

func CreateFeeTypeHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var feeType models.FeeType
		if err := c.BodyParser(&feeType); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}

		if feeType.Name == "" {
			return respond.Error(c, models.NewValidationError("invalid fee type",
				models.FieldError{Field: "name", Error: "name is required"}))
		}
		if !feeType.Category.Valid() {
			return respond.Error(c, models.NewValidationError("invalid fee type",
				models.FieldError{Field: "category", Error: "category must be school, bus or admission"}))
		}
		if !feeType.Frequency.Valid() {
			return respond.Error(c, models.NewValidationError("invalid fee type",
				models.FieldError{Field: "frequency", Error: "frequency must be monthly, quarterly or annual"}))
		}

		if err := database.CreateFeeType(db, &feeType); err != nil {
			return respond.Error(c, err)
		}
		return respond.Created(c, feeType)
	}
}
