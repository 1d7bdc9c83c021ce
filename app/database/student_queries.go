package database

import (
	"database/sql"
	"fmt"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

func CreateStudent(db *sql.DB, student *models.Student) error {
	query := `INSERT INTO students (admission_number, first_name, last_name, class_id, village_id, has_school_bus, registration_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := db.QueryRow(query, student.AdmissionNumber, student.FirstName, student.LastName,
		student.ClassID, student.VillageID, student.HasSchoolBus, student.RegistrationType).
		Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError(fmt.Sprintf("admission number %q already exists", student.AdmissionNumber))
		}
		return err
	}
	return nil
}

// GetStudentByID returns a student with class and village names resolved.
func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	query := `SELECT s.id, s.admission_number, s.first_name, s.last_name, s.class_id, s.village_id,
		s.has_school_bus, s.registration_type, s.is_active, s.created_at, s.updated_at,
		c.name AS class_name, v.name AS village_name
		FROM students s
		JOIN classes c ON s.class_id = c.id
		LEFT JOIN villages v ON s.village_id = v.id
		WHERE s.id = $1 AND s.deleted_at IS NULL`

	student := &models.Student{}
	var villageName *string
	err := db.QueryRow(query, id).Scan(
		&student.ID, &student.AdmissionNumber, &student.FirstName, &student.LastName,
		&student.ClassID, &student.VillageID, &student.HasSchoolBus, &student.RegistrationType,
		&student.IsActive, &student.CreatedAt, &student.UpdatedAt,
		&student.ClassName, &villageName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("student", id)
		}
		return nil, err
	}
	if villageName != nil {
		student.VillageName = *villageName
	}
	return student, nil
}

// GetStudentsByClass returns the active students of a class.
func GetStudentsByClass(db *sql.DB, classID string) ([]*models.Student, error) {
	query := `SELECT s.id, s.admission_number, s.first_name, s.last_name, s.class_id, s.village_id,
		s.has_school_bus, s.registration_type, s.is_active, s.created_at, s.updated_at,
		v.name AS village_name
		FROM students s
		LEFT JOIN villages v ON s.village_id = v.id
		WHERE s.class_id = $1 AND s.deleted_at IS NULL AND s.is_active = true
		ORDER BY s.first_name, s.last_name`

	rows, err := db.Query(query, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student := &models.Student{}
		var villageName *string
		err := rows.Scan(
			&student.ID, &student.AdmissionNumber, &student.FirstName, &student.LastName,
			&student.ClassID, &student.VillageID, &student.HasSchoolBus, &student.RegistrationType,
			&student.IsActive, &student.CreatedAt, &student.UpdatedAt, &villageName,
		)
		if err != nil {
			return nil, err
		}
		if villageName != nil {
			student.VillageName = *villageName
		}
		students = append(students, student)
	}
	return students, rows.Err()
}
