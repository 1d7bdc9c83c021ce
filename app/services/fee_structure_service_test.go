package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

func validItem(classID, feeTypeID, amount string) *models.FeeStructureItem {
	return &models.FeeStructureItem{
		ClassID:   classID,
		FeeTypeID: feeTypeID,
		Amount:    d(amount),
		DueDate:   models.CustomTime{Time: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)},
	}
}

const (
	classA   = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	classB   = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	feeTypeA = "cccccccc-cccc-cccc-cccc-cccccccccccc"
	feeTypeB = "dddddddd-dddd-dddd-dddd-dddddddddddd"
)

func TestValidateFeeStructureItemsAcceptsValidBatch(t *testing.T) {
	items := []*models.FeeStructureItem{
		validItem(classA, feeTypeA, "9000"),
		validItem(classA, feeTypeB, "2500"),
		validItem(classB, feeTypeA, "9500"),
	}
	assert.NoError(t, ValidateFeeStructureItems(items))
}

func TestValidateFeeStructureItemsRejectsDuplicatePair(t *testing.T) {
	items := []*models.FeeStructureItem{
		validItem(classA, feeTypeA, "9000"),
		validItem(classB, feeTypeA, "9500"),
		validItem(classA, feeTypeA, "9100"),
	}

	err := ValidateFeeStructureItems(items)
	require.Error(t, err)

	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 2)
	assert.Equal(t, 0, ve.Fields[0].Index)
	assert.Equal(t, 2, ve.Fields[1].Index)
}

func TestValidateFeeStructureItemsReportsEveryBadIndex(t *testing.T) {
	bad := validItem(classA, feeTypeA, "0")
	missingDue := validItem(classB, feeTypeA, "500")
	missingDue.DueDate = models.CustomTime{}
	items := []*models.FeeStructureItem{
		validItem(classA, feeTypeB, "9000"),
		bad,
		missingDue,
		{ClassID: "not-a-uuid", FeeTypeID: feeTypeB, Amount: d("100"), DueDate: validItem(classA, feeTypeA, "1").DueDate},
	}

	err := ValidateFeeStructureItems(items)
	require.Error(t, err)

	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve))

	indexes := map[int]bool{}
	for _, f := range ve.Fields {
		indexes[f.Index] = true
	}
	assert.False(t, indexes[0])
	assert.True(t, indexes[1])
	assert.True(t, indexes[2])
	assert.True(t, indexes[3])
}

func TestComputeClassTotalsMonthlyLine(t *testing.T) {
	monthly := validItem(classA, feeTypeA, "1000")
	monthly.IsRecurringMonthly = true

	totals := ComputeClassTotals([]*models.FeeStructureItem{monthly})

	assert.True(t, totals.MonthlyTotal.Equal(d("1000")))
	assert.True(t, totals.TermTotal.Equal(d("4000")))
	assert.True(t, totals.AnnualTotal.Equal(d("12000")))
}

func TestComputeClassTotalsAnnualLine(t *testing.T) {
	totals := ComputeClassTotals([]*models.FeeStructureItem{validItem(classA, feeTypeA, "9000")})

	assert.True(t, totals.MonthlyTotal.Equal(d("750")))
	assert.True(t, totals.TermTotal.Equal(d("3000")))
	assert.True(t, totals.AnnualTotal.Equal(d("9000")))
}

func TestComputeClassTotalsMixedLines(t *testing.T) {
	monthly := validItem(classA, feeTypeA, "1000")
	monthly.IsRecurringMonthly = true
	annual := validItem(classA, feeTypeB, "9000")

	totals := ComputeClassTotals([]*models.FeeStructureItem{monthly, annual})

	assert.True(t, totals.MonthlyTotal.Equal(d("1750")))
	assert.True(t, totals.TermTotal.Equal(d("7000")))
	assert.True(t, totals.AnnualTotal.Equal(d("21000")))
}

func TestClassTotalsForYearGroupsByClass(t *testing.T) {
	items := []*models.FeeStructureItem{
		validItem(classA, feeTypeA, "9000"),
		validItem(classB, feeTypeA, "12000"),
		validItem(classB, feeTypeB, "3000"),
	}

	totals := ClassTotalsForYear(items)

	require.Len(t, totals, 2)
	assert.True(t, totals[classA].AnnualTotal.Equal(d("9000")))
	assert.True(t, totals[classB].AnnualTotal.Equal(d("15000")))
}
