package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

func yearFixture(name string, start, end time.Time) *models.AcademicYear {
	return &models.AcademicYear{
		Name:      name,
		StartDate: models.CustomTime{Time: start},
		EndDate:   models.CustomTime{Time: end},
	}
}

func TestValidateAcademicYearAccepts(t *testing.T) {
	year := yearFixture("2025-26",
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, ValidateAcademicYear(year))
}

func TestValidateAcademicYearRejectsBadNames(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)

	for _, name := range []string{"2025", "2025-2026", "25-26", "2025-27", "2025/26"} {
		err := ValidateAcademicYear(yearFixture(name, start, end))
		assert.Error(t, err, "name %q", name)
		assert.True(t, models.IsValidation(err))
	}
}

func TestValidateAcademicYearCenturyRollover(t *testing.T) {
	year := yearFixture("2099-00",
		time.Date(2099, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2100, 4, 30, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, ValidateAcademicYear(year))
}

func TestValidateAcademicYearStartMustMatchName(t *testing.T) {
	year := yearFixture("2025-26",
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC))

	err := ValidateAcademicYear(year)
	require.Error(t, err)

	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "start_date", ve.Fields[0].Field)
}

func TestValidateAcademicYearDatesMustBeOrdered(t *testing.T) {
	year := yearFixture("2025-26",
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	err := ValidateAcademicYear(year)
	assert.True(t, models.IsValidation(err))
}

func TestValidateAcademicYearRequiresDates(t *testing.T) {
	year := &models.AcademicYear{Name: "2025-26"}
	err := ValidateAcademicYear(year)
	require.Error(t, err)

	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve))

	fields := map[string]bool{}
	for _, f := range ve.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["start_date"])
	assert.True(t, fields["end_date"])
}
