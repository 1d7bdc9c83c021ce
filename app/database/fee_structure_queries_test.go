package database

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

func diffItem(classID, feeTypeID, amount string) *models.FeeStructureItem {
	return &models.FeeStructureItem{
		ClassID:   classID,
		FeeTypeID: feeTypeID,
		Amount:    decimal.RequireFromString(amount),
		DueDate:   models.CustomTime{Time: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)},
	}
}

func TestDiffFeeStructureEmptyAgainstEmpty(t *testing.T) {
	diff := DiffFeeStructure(nil, nil)
	assert.Empty(t, diff.Added)
	assert.Empty(t, diff.Changed)
	assert.Empty(t, diff.Removed)
	assert.Zero(t, diff.Unchanged)
}

func TestDiffFeeStructureAllNewItemsAdded(t *testing.T) {
	incoming := []*models.FeeStructureItem{
		diffItem("class-5", "tuition", "9000"),
		diffItem("class-6", "tuition", "9500"),
	}

	diff := DiffFeeStructure(nil, incoming)
	assert.Len(t, diff.Added, 2)
	assert.Empty(t, diff.Removed)
}

func TestDiffFeeStructureIdenticalSetUnchanged(t *testing.T) {
	stored := []*models.FeeStructureItem{diffItem("class-5", "tuition", "9000")}
	incoming := []*models.FeeStructureItem{diffItem("class-5", "tuition", "9000")}

	diff := DiffFeeStructure(stored, incoming)
	assert.Empty(t, diff.Added)
	assert.Empty(t, diff.Changed)
	assert.Empty(t, diff.Removed)
	assert.Equal(t, 1, diff.Unchanged)
}

func TestDiffFeeStructureAmountChange(t *testing.T) {
	stored := []*models.FeeStructureItem{diffItem("class-5", "tuition", "9000")}
	incoming := []*models.FeeStructureItem{diffItem("class-5", "tuition", "10000")}

	diff := DiffFeeStructure(stored, incoming)
	require.Len(t, diff.Changed, 1)
	assert.True(t, diff.Changed[0].AmountChanged())
}

func TestDiffFeeStructureDueDateChangeSkipsHistory(t *testing.T) {
	stored := []*models.FeeStructureItem{diffItem("class-5", "tuition", "9000")}
	moved := diffItem("class-5", "tuition", "9000")
	moved.DueDate = models.CustomTime{Time: time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)}

	diff := DiffFeeStructure(stored, []*models.FeeStructureItem{moved})
	require.Len(t, diff.Changed, 1)
	assert.False(t, diff.Changed[0].AmountChanged(), "due date moves update in place without an audit row")
}

func TestDiffFeeStructureMissingItemsRemoved(t *testing.T) {
	stored := []*models.FeeStructureItem{
		diffItem("class-5", "tuition", "9000"),
		diffItem("class-5", "library", "500"),
	}
	incoming := []*models.FeeStructureItem{diffItem("class-5", "tuition", "9000")}

	diff := DiffFeeStructure(stored, incoming)
	require.Len(t, diff.Removed, 1)
	assert.Equal(t, "library", diff.Removed[0].FeeTypeID)
	assert.Equal(t, 1, diff.Unchanged)
}

func TestDiffFeeStructureMixedPatch(t *testing.T) {
	stored := []*models.FeeStructureItem{
		diffItem("class-5", "tuition", "9000"),
		diffItem("class-5", "library", "500"),
		diffItem("class-6", "tuition", "9500"),
	}
	incoming := []*models.FeeStructureItem{
		diffItem("class-5", "tuition", "10000"), // changed
		diffItem("class-6", "tuition", "9500"),  // unchanged
		diffItem("class-7", "tuition", "11000"), // added
	}

	diff := DiffFeeStructure(stored, incoming)
	assert.Len(t, diff.Added, 1)
	assert.Len(t, diff.Changed, 1)
	assert.Len(t, diff.Removed, 1)
	assert.Equal(t, 1, diff.Unchanged)
}

func TestDiffFeeStructureSameAmountDifferentScale(t *testing.T) {
	stored := []*models.FeeStructureItem{diffItem("class-5", "tuition", "9000")}
	incoming := []*models.FeeStructureItem{diffItem("class-5", "tuition", "9000.00")}

	// 9000 and 9000.00 are the same value; no phantom history rows.
	diff := DiffFeeStructure(stored, incoming)
	assert.Empty(t, diff.Changed)
	assert.Equal(t, 1, diff.Unchanged)
}
