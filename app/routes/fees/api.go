package fees

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/respond"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/services"
)

// GetFeeStructureHandler returns a year's fee structure with resolved
// class and fee type names, plus the frequency-converted class totals.
func GetFeeStructureHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		yearID := c.Params("yearId")

		items, err := services.FeeStructureForYear(db, yearID)
		if err != nil {
			return respond.Error(c, err)
		}

		return respond.OK(c, fiber.Map{
			"items":        items,
			"class_totals": services.ClassTotalsForYear(items),
		})
	}
}

// SetFeeStructureHandler replaces a year's fee structure with the
// submitted set. Only genuine amount changes are written to history.
func SetFeeStructureHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type setRequest struct {
			Items []*models.FeeStructureItem `json:"items"`
		}

		var req setRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}

		changedBy := c.Locals("user_id").(string)
		if err := services.SetFeeStructure(db, c.Params("yearId"), req.Items, changedBy); err != nil {
			return respond.Error(c, err)
		}

		items, err := services.FeeStructureForYear(db, c.Params("yearId"))
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, fiber.Map{
			"items":        items,
			"class_totals": services.ClassTotalsForYear(items),
		})
	}
}

// GetFeeStructureHistoryHandler returns the amount-change audit trail for
// a year.
func GetFeeStructureHistoryHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		history, err := database.GetFeeStructureHistory(db, c.Params("yearId"))
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, history)
	}
}

// GetBusFeeStructureHandler returns a year's per-village bus fee schedule.
func GetBusFeeStructureHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := database.GetBusFeeStructure(db, c.Params("yearId"))
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, items)
	}
}

// SetBusFeeStructureHandler replaces a year's bus fee schedule.
func SetBusFeeStructureHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type setRequest struct {
			Items []*models.BusFeeStructureItem `json:"items"`
		}

		var req setRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}

		for i, item := range req.Items {
			if item.VillageID == "" {
				return respond.Error(c, models.NewValidationError("invalid bus fee items",
					models.FieldError{Index: i, Field: "village_id", Error: "village_id is required"}))
			}
			if item.FeeAmount.IsNegative() {
				return respond.Error(c, models.NewValidationError("invalid bus fee items",
					models.FieldError{Index: i, Field: "fee_amount", Error: "fee_amount must not be negative"}))
			}
			if !item.EffectiveFromDate.Time.Before(item.EffectiveToDate.Time) {
				return respond.Error(c, models.NewValidationError("invalid bus fee items",
					models.FieldError{Index: i, Field: "effective_from_date", Error: "effective window must start before it ends"}))
			}
		}

		if err := database.ReplaceBusFeeStructure(db, c.Params("yearId"), req.Items); err != nil {
			return respond.Error(c, err)
		}

		items, err := database.GetBusFeeStructure(db, c.Params("yearId"))
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, items)
	}
}

// GetStudentFeeStatusHandler computes one student's fee position for a
// year (the current year when year_id is absent).
func GetStudentFeeStatusHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, err := services.FeeStatusForStudent(db, c.Params("id"), c.Query("year_id"))
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, status)
	}
}

// GetClassFeeStatusHandler computes the fee position of every student in
// a class along with the class aggregate.
func GetClassFeeStatusHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := services.FeeStatusForClass(db, c.Params("id"))
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, summary)
	}
}

// GetDefaultersHandler lists the students in a class who still owe fees.
func GetDefaultersHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := services.FeeStatusForClass(db, c.Params("classId"))
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, fiber.Map{
			"class_id":   summary.ClassID,
			"class_name": summary.ClassName,
			"defaulters": services.Defaulters(summary),
		})
	}
}

// CarryForwardHandler copies one year's fee structure into another,
// matching classes by name.
func CarryForwardHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type carryForwardRequest struct {
			FromYearID string            `json:"from_year_id"`
			ToYearID   string            `json:"to_year_id"`
			DueDate    models.CustomTime `json:"due_date"`
		}

		var req carryForwardRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}

		result, err := services.CopyFeeStructure(db, req.FromYearID, req.ToYearID, req.DueDate)
		if err != nil {
			return carryForwardError(c, err)
		}
		return respond.OK(c, result)
	}
}

// CarryForwardBusHandler copies one year's bus fee schedule into another,
// re-dating the effective windows to the target year.
func CarryForwardBusHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type carryForwardRequest struct {
			FromYearID string `json:"from_year_id"`
			ToYearID   string `json:"to_year_id"`
		}

		var req carryForwardRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}

		result, err := services.CopyBusFeeStructure(db, req.FromYearID, req.ToYearID)
		if err != nil {
			return carryForwardError(c, err)
		}
		return respond.OK(c, result)
	}
}

func carryForwardError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrNoPreviousYearFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if errors.Is(err, services.ErrNoFeeStructureFound) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return respond.Error(c, err)
}
