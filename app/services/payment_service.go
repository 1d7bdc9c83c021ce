package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

// newReceiptNumber produces a short unique receipt reference.
func newReceiptNumber() string {
	id := uuid.New().String()
	return "RCT-" + strings.ToUpper(id[:8])
}

// RecordPayment computes the student's outstanding balances, allocates the
// amount across fee categories and persists the payment together with its
// allocation. The stored split is final; recording a later payment never
// re-splits an earlier one.
func RecordPayment(db *sql.DB, studentID, yearID string, amount decimal.Decimal, method models.PaymentMethod, override *AllocationSplit, createdBy string) (*models.Payment, error) {
	if !method.Valid() {
		return nil, models.NewValidationError("unknown payment method",
			models.FieldError{Field: "payment_method", Error: "must be one of cash, online, cheque, card"})
	}

	if yearID == "" {
		year, err := CurrentAcademicYear(db)
		if err != nil {
			return nil, err
		}
		yearID = year.ID
	}

	status, err := FeeStatusForStudent(db, studentID, yearID)
	if err != nil {
		return nil, err
	}

	split, err := AllocatePayment(amount, status.OutstandingBus, status.OutstandingSchool, override)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		StudentID:      studentID,
		AcademicYearID: yearID,
		AmountPaid:     amount,
		PaymentDate:    time.Now(),
		PaymentMethod:  method,
		ReceiptNumber:  newReceiptNumber(),
		CreatedBy:      createdBy,
		Allocation: &models.PaymentAllocation{
			BusFeeAmount:    split.BusAmount,
			SchoolFeeAmount: split.SchoolAmount,
		},
	}

	err = database.Retry("record payment", func() error {
		return database.InsertPayment(db, payment)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
