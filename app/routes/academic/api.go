package academic

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/respond"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/services"
)

// ListAcademicYearsHandler returns all academic years, newest start first.
func ListAcademicYearsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		years, err := database.ListAcademicYears(db)
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, years)
	}
}

// GetAcademicYearHandler returns a specific academic year by ID.
func GetAcademicYearHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := database.GetAcademicYearByID(db, c.Params("id"))
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, year)
	}
}

// GetCurrentAcademicYearHandler returns the single current academic year.
func GetCurrentAcademicYearHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := services.CurrentAcademicYear(db)
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, year)
	}
}

// CreateAcademicYearHandler creates a new academic year. When the request
// asks for it to become current the switch happens in the same transaction
// as the insert.
func CreateAcademicYearHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type createRequest struct {
			models.AcademicYear
			MakeCurrent bool `json:"make_current"`
		}

		var req createRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}
		req.AcademicYear.CreatedBy = c.Locals("user_id").(string)

		if err := services.CreateAcademicYear(db, &req.AcademicYear, req.MakeCurrent); err != nil {
			return respond.Error(c, err)
		}
		return respond.Created(c, req.AcademicYear)
	}
}

// SetCurrentAcademicYearHandler atomically repoints the current-year marker.
func SetCurrentAcademicYearHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		yearID := c.Params("id")

		if _, err := database.GetAcademicYearByID(db, yearID); err != nil {
			return respond.Error(c, err)
		}
		if err := database.SetCurrentAcademicYear(db, yearID); err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, fiber.Map{"current_academic_year_id": yearID})
	}
}

// UpdateTransitionStatusHandler moves a year through the transition workflow.
func UpdateTransitionStatusHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type transitionRequest struct {
			Status models.TransitionStatus `json:"status"`
		}

		var req transitionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}
		if !req.Status.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transition status: " + string(req.Status)})
		}

		if err := database.UpdateTransitionStatus(db, c.Params("id"), req.Status); err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, fiber.Map{"status": req.Status})
	}
}
