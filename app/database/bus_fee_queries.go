package database

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

func CreateVillage(db *sql.DB, village *models.Village) error {
	query := `INSERT INTO villages (name, distance_from_school, bus_number, is_active, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), true, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := db.QueryRow(query, village.Name, village.DistanceFromSchool, village.BusNumber).
		Scan(&village.ID, &village.CreatedAt, &village.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError(fmt.Sprintf("village %q already exists", village.Name))
		}
		return err
	}
	village.IsActive = true
	return nil
}

func GetVillages(db *sql.DB) ([]*models.Village, error) {
	query := `SELECT id, name, distance_from_school, COALESCE(bus_number, ''), is_active, created_at, updated_at
		FROM villages WHERE is_active = true ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	villages := []*models.Village{}
	for rows.Next() {
		v := &models.Village{}
		err := rows.Scan(&v.ID, &v.Name, &v.DistanceFromSchool, &v.BusNumber,
			&v.IsActive, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, err
		}
		villages = append(villages, v)
	}
	return villages, rows.Err()
}

// GetBusFeeStructure returns a year's bus fee schedule with village names
// resolved.
func GetBusFeeStructure(db *sql.DB, yearID string) ([]*models.BusFeeStructureItem, error) {
	query := `SELECT b.id, b.academic_year_id, b.village_id, b.fee_amount,
		b.effective_from_date, b.effective_to_date, b.is_active, b.created_at, b.updated_at,
		v.name AS village_name
		FROM bus_fee_structure b
		JOIN villages v ON b.village_id = v.id
		WHERE b.academic_year_id = $1
		ORDER BY v.name`

	rows, err := db.Query(query, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.BusFeeStructureItem{}
	for rows.Next() {
		item := &models.BusFeeStructureItem{}
		err := rows.Scan(&item.ID, &item.AcademicYearID, &item.VillageID, &item.FeeAmount,
			&item.EffectiveFromDate.Time, &item.EffectiveToDate.Time, &item.IsActive,
			&item.CreatedAt, &item.UpdatedAt, &item.VillageName)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ReplaceBusFeeStructure swaps a year's bus fee schedule in one transaction.
func ReplaceBusFeeStructure(db *sql.DB, yearID string, items []*models.BusFeeStructureItem) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.Exec(`DELETE FROM bus_fee_structure WHERE academic_year_id = $1`, yearID); err != nil {
		return err
	}

	for _, item := range items {
		if err = insertBusFeeItem(tx, yearID, item); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// InsertBusFeeItems inserts carry-forward bus fee rows for a year.
func InsertBusFeeItems(db *sql.DB, yearID string, items []*models.BusFeeStructureItem) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range items {
		if err = insertBusFeeItem(tx, yearID, item); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertBusFeeItem(tx *sql.Tx, yearID string, item *models.BusFeeStructureItem) error {
	return tx.QueryRow(`INSERT INTO bus_fee_structure
		(academic_year_id, village_id, fee_amount, effective_from_date, effective_to_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id`,
		yearID, item.VillageID, item.FeeAmount, item.EffectiveFromDate.Time,
		item.EffectiveToDate.Time, item.IsActive).
		Scan(&item.ID)
}

// GetActiveBusFee returns the active bus fee amount for a village in a
// year, or nil when the village has no active schedule entry.
func GetActiveBusFee(db *sql.DB, villageID, yearID string) (*decimal.Decimal, error) {
	query := `SELECT fee_amount FROM bus_fee_structure
		WHERE village_id = $1 AND academic_year_id = $2 AND is_active = true
		ORDER BY effective_from_date DESC
		LIMIT 1`

	var amount decimal.Decimal
	err := db.QueryRow(query, villageID, yearID).Scan(&amount)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &amount, nil
}
