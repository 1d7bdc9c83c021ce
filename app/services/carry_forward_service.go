package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

var (
	// ErrNoPreviousYearFound is returned when the source year of a
	// carry-forward does not exist.
	ErrNoPreviousYearFound = errors.New("no previous academic year found to copy from")
	// ErrNoFeeStructureFound is returned when the source year has no fee
	// structure to copy.
	ErrNoFeeStructureFound = errors.New("no fee structure found for the source academic year")
)

// CarryForwardResult reports how many items a copy moved and how many it
// had to skip.
type CarryForwardResult struct {
	CopiedCount  int `json:"copied_count"`
	SkippedCount int `json:"skipped_count"`
}

// RebindItemsByClassName maps source-year fee items onto target-year
// classes by exact class name. Items whose class has no namesake in the
// target year are skipped and counted.
func RebindItemsByClassName(items []*models.FeeStructureItem, targetClassIDsByName map[string]string, toYearID string, dueDate models.CustomTime, note string) ([]*models.FeeStructureItem, int) {
	copied := []*models.FeeStructureItem{}
	skipped := 0
	for _, item := range items {
		targetClassID, ok := targetClassIDsByName[item.ClassName]
		if !ok {
			skipped++
			continue
		}
		copied = append(copied, &models.FeeStructureItem{
			AcademicYearID:              toYearID,
			ClassID:                     targetClassID,
			FeeTypeID:                   item.FeeTypeID,
			Amount:                      item.Amount,
			DueDate:                     dueDate,
			ApplicableToNewStudentsOnly: item.ApplicableToNewStudentsOnly,
			IsRecurringMonthly:          item.IsRecurringMonthly,
			Notes:                       note,
		})
	}
	return copied, skipped
}

// CopyFeeStructure copies a year's fee structure into another year,
// matching classes by name. Source rows are never mutated.
func CopyFeeStructure(db *sql.DB, fromYearID, toYearID string, dueDate models.CustomTime) (*CarryForwardResult, error) {
	fromYear, err := database.GetAcademicYearByID(db, fromYearID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, ErrNoPreviousYearFound
		}
		return nil, err
	}
	if _, err = database.GetAcademicYearByID(db, toYearID); err != nil {
		return nil, err
	}
	if dueDate.IsZero() {
		return nil, models.NewValidationError("a reset due date for the copied items is required",
			models.FieldError{Field: "due_date", Error: "this field is required"})
	}

	items, err := database.GetFeeStructure(db, fromYearID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoFeeStructureFound
	}

	targetClasses, err := database.GetClassesByYear(db, toYearID)
	if err != nil {
		return nil, err
	}
	classIDsByName := make(map[string]string, len(targetClasses))
	for _, class := range targetClasses {
		classIDsByName[class.Name] = class.ID
	}

	note := fmt.Sprintf("Carried forward from %s", fromYear.Name)
	copied, skipped := RebindItemsByClassName(items, classIDsByName, toYearID, dueDate, note)

	if len(copied) > 0 {
		err = database.Retry("insert carried-forward fee structure", func() error {
			return database.InsertFeeStructureItems(db, toYearID, copied)
		})
		if err != nil {
			return nil, err
		}
	}

	return &CarryForwardResult{CopiedCount: len(copied), SkippedCount: skipped}, nil
}

// RebindBusFeeItems re-dates source bus fee rows to the target year's
// bounds and marks them active. Inactive source rows are skipped.
func RebindBusFeeItems(items []*models.BusFeeStructureItem, toYear *models.AcademicYear) ([]*models.BusFeeStructureItem, int) {
	copied := []*models.BusFeeStructureItem{}
	skipped := 0
	for _, item := range items {
		if !item.IsActive {
			skipped++
			continue
		}
		copied = append(copied, &models.BusFeeStructureItem{
			AcademicYearID:    toYear.ID,
			VillageID:         item.VillageID,
			FeeAmount:         item.FeeAmount,
			EffectiveFromDate: toYear.StartDate,
			EffectiveToDate:   toYear.EndDate,
			IsActive:          true,
		})
	}
	return copied, skipped
}

// CopyBusFeeStructure copies a year's bus fee schedule into another year,
// re-dated to the target year's date range.
func CopyBusFeeStructure(db *sql.DB, fromYearID, toYearID string) (*CarryForwardResult, error) {
	if _, err := database.GetAcademicYearByID(db, fromYearID); err != nil {
		if models.IsNotFound(err) {
			return nil, ErrNoPreviousYearFound
		}
		return nil, err
	}
	toYear, err := database.GetAcademicYearByID(db, toYearID)
	if err != nil {
		return nil, err
	}

	items, err := database.GetBusFeeStructure(db, fromYearID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoFeeStructureFound
	}

	copied, skipped := RebindBusFeeItems(items, toYear)

	if len(copied) > 0 {
		err = database.Retry("insert carried-forward bus fee structure", func() error {
			return database.InsertBusFeeItems(db, toYearID, copied)
		})
		if err != nil {
			return nil, err
		}
	}

	return &CarryForwardResult{CopiedCount: len(copied), SkippedCount: skipped}, nil
}
