package database

import (
	"database/sql"
	"fmt"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

func CreateClass(db *sql.DB, class *models.Class) error {
	query := `INSERT INTO classes (academic_year_id, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := db.QueryRow(query, class.AcademicYearID, class.Name).
		Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError(fmt.Sprintf("class %q already exists in this academic year", class.Name))
		}
		return err
	}
	return nil
}

// GetClassesByYear returns a year's classes with their active student counts.
func GetClassesByYear(db *sql.DB, yearID string) ([]*models.Class, error) {
	query := `SELECT c.id, c.academic_year_id, c.name, c.created_at, c.updated_at,
		COALESCE(s.student_count, 0) AS student_count
		FROM classes c
		LEFT JOIN (
			SELECT class_id, COUNT(*) AS student_count
			FROM students
			WHERE deleted_at IS NULL AND is_active = true
			GROUP BY class_id
		) s ON c.id = s.class_id
		WHERE c.academic_year_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.name`

	rows, err := db.Query(query, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []*models.Class{}
	for rows.Next() {
		class := &models.Class{}
		err := rows.Scan(&class.ID, &class.AcademicYearID, &class.Name,
			&class.CreatedAt, &class.UpdatedAt, &class.StudentCount)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

func GetClassByID(db *sql.DB, id string) (*models.Class, error) {
	query := `SELECT id, academic_year_id, name, created_at, updated_at
		FROM classes WHERE id = $1 AND deleted_at IS NULL`

	class := &models.Class{}
	err := db.QueryRow(query, id).Scan(&class.ID, &class.AcademicYearID, &class.Name,
		&class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("class", id)
		}
		return nil, err
	}
	return class, nil
}
