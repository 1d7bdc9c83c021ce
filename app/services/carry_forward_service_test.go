package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

func TestRebindItemsByClassNameMatchesByName(t *testing.T) {
	dueDate := models.CustomTime{Time: time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)}
	items := []*models.FeeStructureItem{
		{ClassID: "old-class-5", ClassName: "Class 5", FeeTypeID: feeTypeA, Amount: d("9000")},
		{ClassID: "old-class-6", ClassName: "Class 6", FeeTypeID: feeTypeA, Amount: d("9500")},
		{ClassID: "old-class-10", ClassName: "Class 10", FeeTypeID: feeTypeA, Amount: d("12000")},
	}
	targets := map[string]string{
		"Class 5": "new-class-5",
		"Class 6": "new-class-6",
		// Class 10 has no namesake in the target year.
	}

	copied, skipped := RebindItemsByClassName(items, targets, "to-year", dueDate, "Carried forward from 2025-26")

	assert.Equal(t, 1, skipped)
	require.Len(t, copied, 2)
	assert.Equal(t, "new-class-5", copied[0].ClassID)
	assert.Equal(t, "to-year", copied[0].AcademicYearID)
	assert.True(t, copied[0].Amount.Equal(d("9000")))
	assert.Equal(t, dueDate, copied[0].DueDate)
	assert.Equal(t, "Carried forward from 2025-26", copied[0].Notes)
}

func TestRebindItemsByClassNameLeavesSourceUntouched(t *testing.T) {
	source := &models.FeeStructureItem{
		ID:             "source-id",
		AcademicYearID: "from-year",
		ClassID:        "old-class-5",
		ClassName:      "Class 5",
		FeeTypeID:      feeTypeA,
		Amount:         d("9000"),
	}

	copied, _ := RebindItemsByClassName([]*models.FeeStructureItem{source},
		map[string]string{"Class 5": "new-class-5"}, "to-year",
		models.CustomTime{Time: time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)}, "")

	require.Len(t, copied, 1)
	assert.Empty(t, copied[0].ID, "copies must insert as fresh rows")
	assert.Equal(t, "from-year", source.AcademicYearID)
	assert.Equal(t, "old-class-5", source.ClassID)
}

func TestRebindItemsByClassNamePreservesFlags(t *testing.T) {
	items := []*models.FeeStructureItem{
		{
			ClassName:                   "Class 5",
			FeeTypeID:                   feeTypeA,
			Amount:                      d("2500"),
			ApplicableToNewStudentsOnly: true,
			IsRecurringMonthly:          true,
		},
	}

	copied, _ := RebindItemsByClassName(items, map[string]string{"Class 5": "new-class-5"},
		"to-year", models.CustomTime{Time: time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)}, "")

	require.Len(t, copied, 1)
	assert.True(t, copied[0].ApplicableToNewStudentsOnly)
	assert.True(t, copied[0].IsRecurringMonthly)
}

func TestRebindBusFeeItemsRedatesToTargetYear(t *testing.T) {
	toYear := &models.AcademicYear{
		ID:        "to-year",
		StartDate: models.CustomTime{Time: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
		EndDate:   models.CustomTime{Time: time.Date(2027, 4, 30, 0, 0, 0, 0, time.UTC)},
	}
	items := []*models.BusFeeStructureItem{
		{VillageID: "village-1", FeeAmount: d("3000"), IsActive: true},
		{VillageID: "village-2", FeeAmount: d("3500"), IsActive: false},
	}

	copied, skipped := RebindBusFeeItems(items, toYear)

	assert.Equal(t, 1, skipped, "inactive rows are not carried")
	require.Len(t, copied, 1)
	assert.Equal(t, "village-1", copied[0].VillageID)
	assert.Equal(t, "to-year", copied[0].AcademicYearID)
	assert.Equal(t, toYear.StartDate, copied[0].EffectiveFromDate)
	assert.Equal(t, toYear.EndDate, copied[0].EffectiveToDate)
	assert.True(t, copied[0].IsActive)
}
