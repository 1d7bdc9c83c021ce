package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAllocatePaymentSchoolFirst(t *testing.T) {
	split, err := AllocatePayment(d("3000"), d("1200"), d("5000"), nil)
	require.NoError(t, err)

	assert.True(t, split.SchoolAmount.Equal(d("3000")), "school got %s", split.SchoolAmount)
	assert.True(t, split.BusAmount.Equal(d("0")))
}

func TestAllocatePaymentSpillsToBus(t *testing.T) {
	split, err := AllocatePayment(d("6000"), d("1200"), d("5000"), nil)
	require.NoError(t, err)

	assert.True(t, split.SchoolAmount.Equal(d("5000")))
	assert.True(t, split.BusAmount.Equal(d("1000")))
}

func TestAllocatePaymentOverpaymentLandsOnSchool(t *testing.T) {
	split, err := AllocatePayment(d("10000"), d("1200"), d("5000"), nil)
	require.NoError(t, err)

	assert.True(t, split.BusAmount.Equal(d("1200")))
	assert.True(t, split.SchoolAmount.Equal(d("8800")))
	assert.True(t, split.BusAmount.Add(split.SchoolAmount).Equal(d("10000")))
}

func TestAllocatePaymentConservesAmountExactly(t *testing.T) {
	cases := []struct {
		amount, bus, school string
	}{
		{"0.01", "0", "0"},
		{"333.33", "111.11", "100.10"},
		{"1000", "0.01", "999.98"},
		{"2500.50", "1200.25", "1300.25"},
	}
	for _, tc := range cases {
		split, err := AllocatePayment(d(tc.amount), d(tc.bus), d(tc.school), nil)
		require.NoError(t, err)
		assert.True(t, split.BusAmount.Add(split.SchoolAmount).Equal(d(tc.amount)),
			"amount %s split into %s + %s", tc.amount, split.BusAmount, split.SchoolAmount)
		assert.False(t, split.BusAmount.IsNegative())
		assert.False(t, split.SchoolAmount.IsNegative())
	}
}

func TestAllocatePaymentClampsNegativeOutstanding(t *testing.T) {
	// An overpaid category owes nothing; the whole payment goes to school.
	split, err := AllocatePayment(d("500"), d("-300"), d("-100"), nil)
	require.NoError(t, err)

	assert.True(t, split.BusAmount.Equal(d("0")))
	assert.True(t, split.SchoolAmount.Equal(d("500")))
}

func TestAllocatePaymentRejectsNonPositiveAmount(t *testing.T) {
	_, err := AllocatePayment(d("0"), d("100"), d("100"), nil)
	assert.True(t, models.IsValidation(err))

	_, err = AllocatePayment(d("-10"), d("100"), d("100"), nil)
	assert.True(t, models.IsValidation(err))
}

func TestAllocatePaymentOverrideHonoredVerbatim(t *testing.T) {
	override := &AllocationSplit{BusAmount: d("900"), SchoolAmount: d("100")}
	split, err := AllocatePayment(d("1000"), d("0"), d("50"), override)
	require.NoError(t, err)

	// Overrides win even when they exceed the outstanding balances.
	assert.True(t, split.BusAmount.Equal(d("900")))
	assert.True(t, split.SchoolAmount.Equal(d("100")))
}

func TestAllocatePaymentOverrideMustSumToAmount(t *testing.T) {
	override := &AllocationSplit{BusAmount: d("400"), SchoolAmount: d("500")}
	_, err := AllocatePayment(d("1000"), d("0"), d("0"), override)
	assert.True(t, models.IsValidation(err))
}

func TestAllocatePaymentOverrideRejectsNegativeParts(t *testing.T) {
	override := &AllocationSplit{BusAmount: d("-100"), SchoolAmount: d("1100")}
	_, err := AllocatePayment(d("1000"), d("0"), d("0"), override)
	assert.True(t, models.IsValidation(err))
}
