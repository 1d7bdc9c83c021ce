package services

import (
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

var validate = validator.New()

var (
	four   = decimal.NewFromInt(4)
	twelve = decimal.NewFromInt(12)
	three  = decimal.NewFromInt(3)
)

// ValidateFeeStructureItems checks the submitted batch and reports every
// offending item by its index so the caller can fix the whole set at once.
// Duplicate (class, fee type) pairs reject the batch outright.
func ValidateFeeStructureItems(items []*models.FeeStructureItem) error {
	seen := make(map[string]int, len(items))
	for i, item := range items {
		key := item.ClassID + "|" + item.FeeTypeID
		if first, dup := seen[key]; dup {
			return models.NewValidationError(
				"duplicate class and fee type combination",
				models.FieldError{Index: first, Field: "fee_type_id", Error: "combination repeated"},
				models.FieldError{Index: i, Field: "fee_type_id", Error: "combination repeated"},
			)
		}
		seen[key] = i
	}

	var fields []models.FieldError
	for i, item := range items {
		if err := validate.Var(item.ClassID, "required,uuid"); err != nil {
			fields = append(fields, models.FieldError{Index: i, Field: "class_id", Error: "a valid class is required"})
		}
		if err := validate.Var(item.FeeTypeID, "required,uuid"); err != nil {
			fields = append(fields, models.FieldError{Index: i, Field: "fee_type_id", Error: "a valid fee type is required"})
		}
		if item.Amount.LessThanOrEqual(decimal.Zero) {
			fields = append(fields, models.FieldError{Index: i, Field: "amount", Error: "must be greater than zero"})
		}
		if item.DueDate.IsZero() {
			fields = append(fields, models.FieldError{Index: i, Field: "due_date", Error: "this field is required"})
		}
	}
	if len(fields) > 0 {
		return models.NewValidationError("invalid fee structure items", fields...)
	}
	return nil
}

// SetFeeStructure validates and applies the full item set for a year.
// Any validation failure leaves the stored structure completely unmodified.
func SetFeeStructure(db *sql.DB, yearID string, items []*models.FeeStructureItem, changedBy string) error {
	if _, err := database.GetAcademicYearByID(db, yearID); err != nil {
		return err
	}
	if err := ValidateFeeStructureItems(items); err != nil {
		return err
	}
	for _, item := range items {
		item.AcademicYearID = yearID
	}
	return database.Retry("replace fee structure", func() error {
		return database.ReplaceFeeStructure(db, yearID, items, changedBy)
	})
}

// FeeStructureForYear returns the stored items with names resolved.
func FeeStructureForYear(db *sql.DB, yearID string) ([]*models.FeeStructureItem, error) {
	if _, err := database.GetAcademicYearByID(db, yearID); err != nil {
		return nil, err
	}
	var items []*models.FeeStructureItem
	err := database.Retry("fetch fee structure", func() error {
		var innerErr error
		items, innerErr = database.GetFeeStructure(db, yearID)
		return innerErr
	})
	return items, err
}

// ComputeClassTotals converts a class's fee lines into monthly, term and
// annual totals. A monthly line of amount A contributes A, A*4 and A*12; a
// non-monthly line contributes A/12, A/3 and A.
func ComputeClassTotals(items []*models.FeeStructureItem) models.ClassTotals {
	totals := models.ClassTotals{
		MonthlyTotal: decimal.Zero,
		TermTotal:    decimal.Zero,
		AnnualTotal:  decimal.Zero,
	}
	for _, item := range items {
		if item.IsRecurringMonthly {
			totals.MonthlyTotal = totals.MonthlyTotal.Add(item.Amount)
			totals.TermTotal = totals.TermTotal.Add(item.Amount.Mul(four))
			totals.AnnualTotal = totals.AnnualTotal.Add(item.Amount.Mul(twelve))
		} else {
			totals.MonthlyTotal = totals.MonthlyTotal.Add(item.Amount.Div(twelve))
			totals.TermTotal = totals.TermTotal.Add(item.Amount.Div(three))
			totals.AnnualTotal = totals.AnnualTotal.Add(item.Amount)
		}
	}
	return totals
}

// ClassTotalsForYear groups a year's items per class and converts each
// group.
func ClassTotalsForYear(items []*models.FeeStructureItem) map[string]models.ClassTotals {
	byClass := make(map[string][]*models.FeeStructureItem)
	for _, item := range items {
		byClass[item.ClassID] = append(byClass[item.ClassID], item)
	}
	totals := make(map[string]models.ClassTotals, len(byClass))
	for classID, classItems := range byClass {
		totals[classID] = ComputeClassTotals(classItems)
	}
	return totals
}

// BusFeeForVillage returns the active bus fee for a village in a year, or
// nil when none applies.
func BusFeeForVillage(db *sql.DB, villageID, yearID string) (*decimal.Decimal, error) {
	var fee *decimal.Decimal
	err := database.Retry(fmt.Sprintf("fetch bus fee for village %s", villageID), func() error {
		var innerErr error
		fee, innerErr = database.GetActiveBusFee(db, villageID, yearID)
		return innerErr
	})
	return fee, err
}
