package services

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

// Year names follow the "2025-26" convention.
var yearNamePattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// ValidateAcademicYear checks the year name pattern and its derived date
// range before anything is written.
func ValidateAcademicYear(year *models.AcademicYear) error {
	var fields []models.FieldError

	match := yearNamePattern.FindStringSubmatch(year.Name)
	if match == nil {
		fields = append(fields, models.FieldError{Field: "name", Error: "must match the YYYY-YY pattern, e.g. 2025-26"})
	} else {
		startYear, _ := strconv.Atoi(match[1])
		suffix, _ := strconv.Atoi(match[2])
		if (startYear+1)%100 != suffix {
			fields = append(fields, models.FieldError{Field: "name", Error: "second part must be the year after the first"})
		}
		if !year.StartDate.IsZero() && year.StartDate.Year() != startYear {
			fields = append(fields, models.FieldError{Field: "start_date", Error: fmt.Sprintf("must fall in %d per the year name", startYear)})
		}
	}

	if year.StartDate.IsZero() {
		fields = append(fields, models.FieldError{Field: "start_date", Error: "this field is required"})
	}
	if year.EndDate.IsZero() {
		fields = append(fields, models.FieldError{Field: "end_date", Error: "this field is required"})
	}
	if !year.StartDate.IsZero() && !year.EndDate.IsZero() && !year.StartDate.Before(year.EndDate.Time) {
		fields = append(fields, models.FieldError{Field: "end_date", Error: "must be after start_date"})
	}

	if len(fields) > 0 {
		return models.NewValidationError("invalid academic year", fields...)
	}
	return nil
}

// CreateAcademicYear validates and persists a new year. When makeCurrent
// is set the current-year pointer moves to it in the same transaction.
func CreateAcademicYear(db *sql.DB, year *models.AcademicYear, makeCurrent bool) error {
	if err := ValidateAcademicYear(year); err != nil {
		return err
	}
	if year.TransitionStatus == "" {
		year.TransitionStatus = models.TransitionPending
	}
	return database.Retry("create academic year", func() error {
		return database.InsertAcademicYear(db, year, makeCurrent)
	})
}

// CurrentAcademicYear returns the current year or a NotFoundError.
func CurrentAcademicYear(db *sql.DB) (*models.AcademicYear, error) {
	var year *models.AcademicYear
	err := database.Retry("fetch current academic year", func() error {
		var innerErr error
		year, innerErr = database.GetCurrentAcademicYear(db)
		return innerErr
	})
	return year, err
}
