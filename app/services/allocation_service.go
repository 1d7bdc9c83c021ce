package services

import (
	"github.com/shopspring/decimal"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

// AllocationSplit is the division of one payment across fee categories.
type AllocationSplit struct {
	BusAmount    decimal.Decimal `json:"bus_amount"`
	SchoolAmount decimal.Decimal `json:"school_amount"`
}

// AllocatePayment splits a payment amount across the school and bus fee
// categories. The invariant BusAmount + SchoolAmount == amountPaid holds
// exactly; the remainder is always computed by subtraction, never by a
// second rounding division.
//
// Default policy: school fees fill first, the remainder goes to bus fees,
// and any overpayment beyond both balances is attributed to school fees.
// A manual override is accepted only when its parts sum to the payment
// amount exactly.
func AllocatePayment(amountPaid, outstandingBus, outstandingSchool decimal.Decimal, override *AllocationSplit) (AllocationSplit, error) {
	if amountPaid.LessThanOrEqual(decimal.Zero) {
		return AllocationSplit{}, models.NewValidationError("payment amount must be greater than zero",
			models.FieldError{Field: "amount_paid", Error: "must be greater than zero"})
	}

	if override != nil {
		if override.BusAmount.IsNegative() || override.SchoolAmount.IsNegative() {
			return AllocationSplit{}, models.NewValidationError("allocation override amounts must not be negative",
				models.FieldError{Field: "allocation", Error: "negative amount"})
		}
		if !override.BusAmount.Add(override.SchoolAmount).Equal(amountPaid) {
			return AllocationSplit{}, models.NewValidationError("allocation override must sum to the payment amount",
				models.FieldError{Field: "allocation", Error: "bus_amount + school_amount must equal amount_paid"})
		}
		return *override, nil
	}

	// Clamp negative outstanding balances; an overpaid category owes nothing.
	if outstandingSchool.IsNegative() {
		outstandingSchool = decimal.Zero
	}
	if outstandingBus.IsNegative() {
		outstandingBus = decimal.Zero
	}

	school := decimal.Min(amountPaid, outstandingSchool)
	remainder := amountPaid.Sub(school)
	bus := decimal.Min(remainder, outstandingBus)
	// Overpayment lands on school fees.
	school = school.Add(remainder.Sub(bus))

	return AllocationSplit{BusAmount: bus, SchoolAmount: school}, nil
}
