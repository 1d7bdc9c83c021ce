package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFeeStructureItemAppliesTo(t *testing.T) {
	general := &FeeStructureItem{}
	assert.True(t, general.AppliesTo(RegistrationNew))
	assert.True(t, general.AppliesTo(RegistrationContinuing))

	admission := &FeeStructureItem{ApplicableToNewStudentsOnly: true}
	assert.True(t, admission.AppliesTo(RegistrationNew))
	assert.False(t, admission.AppliesTo(RegistrationContinuing))
}

func TestAcademicYearContains(t *testing.T) {
	year := &AcademicYear{
		StartDate: CustomTime{Time: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		EndDate:   CustomTime{Time: time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)},
	}

	assert.True(t, year.Contains(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)))
	assert.False(t, year.Contains(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFeeStatusIsDefaulter(t *testing.T) {
	assert.False(t, (&FeeStatus{Status: StatusPaid}).IsDefaulter())
	assert.True(t, (&FeeStatus{Status: StatusPartial}).IsDefaulter())
	assert.True(t, (&FeeStatus{Status: StatusPending}).IsDefaulter())
}
