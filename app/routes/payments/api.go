package payments

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/respond"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/services"
)

// RecordPaymentHandler records a payment and its allocation atomically.
// Without an allocation override the amount fills school fees first, then
// bus fees, against the student's outstanding balances at collection time.
func RecordPaymentHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type allocationRequest struct {
			BusFeeAmount    decimal.Decimal `json:"bus_fee_amount"`
			SchoolFeeAmount decimal.Decimal `json:"school_fee_amount"`
		}
		type paymentRequest struct {
			StudentID      string               `json:"student_id"`
			AcademicYearID string               `json:"academic_year_id"`
			Amount         decimal.Decimal      `json:"amount"`
			PaymentMethod  models.PaymentMethod `json:"payment_method"`
			Allocation     *allocationRequest   `json:"allocation"`
		}

		var req paymentRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}
		if req.StudentID == "" {
			return respond.Error(c, models.NewValidationError("invalid payment",
				models.FieldError{Field: "student_id", Error: "student_id is required"}))
		}

		var override *services.AllocationSplit
		if req.Allocation != nil {
			override = &services.AllocationSplit{
				BusAmount:    req.Allocation.BusFeeAmount,
				SchoolAmount: req.Allocation.SchoolFeeAmount,
			}
		}

		createdBy := c.Locals("user_id").(string)
		payment, err := services.RecordPayment(db, req.StudentID, req.AcademicYearID, req.Amount, req.PaymentMethod, override, createdBy)
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.Created(c, payment)
	}
}

// GetStudentPaymentsHandler lists a student's payments for a year, newest
// first, each with its allocation.
func GetStudentPaymentsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		yearID := c.Query("year_id")
		if yearID == "" {
			year, err := services.CurrentAcademicYear(db)
			if err != nil {
				return respond.Error(c, err)
			}
			yearID = year.ID
		}

		paymentsList, err := database.GetPaymentsByStudent(db, c.Params("id"), yearID)
		if err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, paymentsList)
	}
}

// DeletePaymentHandler removes a payment and its allocation. This is the
// correction path; the corrected payment is recorded as a fresh row.
func DeletePaymentHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		paymentID := c.Params("id")

		if _, err := database.GetPaymentByID(db, paymentID); err != nil {
			return respond.Error(c, err)
		}
		if err := database.DeletePayment(db, paymentID); err != nil {
			return respond.Error(c, err)
		}
		return respond.OK(c, fiber.Map{"deleted": paymentID})
	}
}
