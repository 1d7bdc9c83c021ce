package database

import (
	"database/sql"
	"fmt"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

func CreateFeeType(db *sql.DB, feeType *models.FeeType) error {
	query := `INSERT INTO fee_types (name, category, frequency, is_monthly, is_for_new_students_only, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := db.QueryRow(query, feeType.Name, feeType.Category, feeType.Frequency,
		feeType.IsMonthly, feeType.IsForNewStudentsOnly).
		Scan(&feeType.ID, &feeType.CreatedAt, &feeType.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError(fmt.Sprintf("fee type %q already exists", feeType.Name))
		}
		return err
	}
	feeType.IsActive = true
	return nil
}

func GetFeeTypes(db *sql.DB) ([]*models.FeeType, error) {
	query := `SELECT id, name, category, frequency, is_monthly, is_for_new_students_only, is_active, created_at, updated_at
		FROM fee_types WHERE is_active = true ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []*models.FeeType{}
	for rows.Next() {
		ft := &models.FeeType{}
		err := rows.Scan(&ft.ID, &ft.Name, &ft.Category, &ft.Frequency,
			&ft.IsMonthly, &ft.IsForNewStudentsOnly, &ft.IsActive, &ft.CreatedAt, &ft.UpdatedAt)
		if err != nil {
			return nil, err
		}
		types = append(types, ft)
	}
	return types, rows.Err()
}

func GetFeeTypeByID(db *sql.DB, id string) (*models.FeeType, error) {
	query := `SELECT id, name, category, frequency, is_monthly, is_for_new_students_only, is_active, created_at, updated_at
		FROM fee_types WHERE id = $1`

	ft := &models.FeeType{}
	err := db.QueryRow(query, id).Scan(&ft.ID, &ft.Name, &ft.Category, &ft.Frequency,
		&ft.IsMonthly, &ft.IsForNewStudentsOnly, &ft.IsActive, &ft.CreatedAt, &ft.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("fee type", id)
		}
		return nil, err
	}
	return ft, nil
}
