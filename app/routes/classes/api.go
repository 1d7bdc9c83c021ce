package classes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/respond"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/services"
)

func CreateClassHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var class models.Class
		if err := c.BodyParser(&class); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}

		if class.Name == "" {
			return respond.Error(c, models.NewValidationError("invalid class",
				models.FieldError{Field: "name", Error: "name is required"}))
		}
		if class.AcademicYearID == "" {
			return respond.Error(c, models.NewValidationError("invalid class",
				models.FieldError{Field: "academic_year_id", Error: "academic_year_id is required"}))
		}

		if err := database.CreateClass(db, &class); err != nil {
			return respond.Error(c, err)
		}
		return respond.Created(c, class)
	}
}

// ListClassesHandler returns the classes of the year named by the year_id
// query parameter, defaulting to the current year.
func ListClassesHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		yearID := c.Query("year_id")
		if yearID == "" {
			year, err := services.CurrentAcademicYear(db)
			if err != nil {
				return respond.Error(c, err)
			}
			yearID = year.ID
		}

		classList, err := database.GetClassesByYear(db, yearID)
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, classList)
	}
}
