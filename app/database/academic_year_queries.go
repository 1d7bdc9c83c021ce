package database

import (
	"database/sql"
	"fmt"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

const academicYearColumns = `ay.id, ay.name, ay.start_date, ay.end_date, ay.transition_status,
	ay.previous_year_id, ay.next_year_id, ay.created_at, ay.updated_at,
	(cay.academic_year_id IS NOT NULL) AS is_current`

func scanAcademicYear(row interface{ Scan(...interface{}) error }) (*models.AcademicYear, error) {
	year := &models.AcademicYear{}
	err := row.Scan(&year.ID, &year.Name, &year.StartDate.Time, &year.EndDate.Time,
		&year.TransitionStatus, &year.PreviousYearID, &year.NextYearID,
		&year.CreatedAt, &year.UpdatedAt, &year.IsCurrent)
	if err != nil {
		return nil, err
	}
	return year, nil
}

// InsertAcademicYear creates a year record, links it to the chronologically
// previous year and, when makeCurrent is set, points the one-row
// current_academic_year record at it. The whole operation is one
// transaction so there is never a moment with zero or two current years.
func InsertAcademicYear(db *sql.DB, year *models.AcademicYear, makeCurrent bool) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Previous year: latest end_date strictly before the new start_date.
	var prevID *string
	err = tx.QueryRow(`SELECT id FROM academic_years WHERE end_date < $1
		ORDER BY end_date DESC LIMIT 1`, year.StartDate.Time).Scan(&prevID)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	year.PreviousYearID = prevID

	insertQuery := `INSERT INTO academic_years (name, start_date, end_date, transition_status, previous_year_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err = tx.QueryRow(insertQuery, year.Name, year.StartDate.Time, year.EndDate.Time,
		year.TransitionStatus, year.PreviousYearID, year.CreatedBy).
		Scan(&year.ID, &year.CreatedAt, &year.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError(fmt.Sprintf("academic year %q already exists", year.Name))
		}
		return err
	}

	if prevID != nil {
		if _, err = tx.Exec(`UPDATE academic_years SET next_year_id = $1, updated_at = NOW() WHERE id = $2`,
			year.ID, *prevID); err != nil {
			return err
		}
	}

	if makeCurrent {
		if _, err = tx.Exec(`INSERT INTO current_academic_year (id, academic_year_id, updated_at)
			VALUES (1, $1, NOW())
			ON CONFLICT (id) DO UPDATE SET academic_year_id = $1, updated_at = NOW()`,
			year.ID); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	year.IsCurrent = makeCurrent
	return nil
}

// GetCurrentAcademicYear returns the year the one-row settings record
// points at, or a NotFoundError when no current year is set.
func GetCurrentAcademicYear(db *sql.DB) (*models.AcademicYear, error) {
	query := `SELECT ` + academicYearColumns + `
		FROM academic_years ay
		JOIN current_academic_year cay ON cay.academic_year_id = ay.id`

	year, err := scanAcademicYear(db.QueryRow(query))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("current academic year", "")
		}
		return nil, err
	}
	return year, nil
}

func GetAcademicYearByID(db *sql.DB, id string) (*models.AcademicYear, error) {
	query := `SELECT ` + academicYearColumns + `
		FROM academic_years ay
		LEFT JOIN current_academic_year cay ON cay.academic_year_id = ay.id
		WHERE ay.id = $1`

	year, err := scanAcademicYear(db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("academic year", id)
		}
		return nil, err
	}
	return year, nil
}

// ListAcademicYears returns all years ordered by start date, newest first.
func ListAcademicYears(db *sql.DB) ([]*models.AcademicYear, error) {
	query := `SELECT ` + academicYearColumns + `
		FROM academic_years ay
		LEFT JOIN current_academic_year cay ON cay.academic_year_id = ay.id
		ORDER BY ay.start_date DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := []*models.AcademicYear{}
	for rows.Next() {
		year, err := scanAcademicYear(rows)
		if err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

// SetCurrentAcademicYear atomically repoints the current-year record. The
// single upsert leaves no window where zero or two years are current.
func SetCurrentAcademicYear(db *sql.DB, yearID string) error {
	var exists bool
	if err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM academic_years WHERE id = $1)`, yearID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("academic year", yearID)
	}

	_, err := db.Exec(`INSERT INTO current_academic_year (id, academic_year_id, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET academic_year_id = $1, updated_at = NOW()`, yearID)
	return err
}

// UpdateTransitionStatus moves a year through its rollover lifecycle.
func UpdateTransitionStatus(db *sql.DB, yearID string, status models.TransitionStatus) error {
	result, err := db.Exec(`UPDATE academic_years SET transition_status = $1, updated_at = NOW() WHERE id = $2`,
		status, yearID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return models.NewNotFoundError("academic year", yearID)
	}
	return err
}
