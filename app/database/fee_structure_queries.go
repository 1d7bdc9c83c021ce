package database

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

// StructureChange pairs a stored item with its incoming replacement.
type StructureChange struct {
	Existing *models.FeeStructureItem
	Incoming *models.FeeStructureItem
}

// AmountChanged reports whether the change needs an audit history row.
func (c StructureChange) AmountChanged() bool {
	return !c.Existing.Amount.Equal(c.Incoming.Amount)
}

// StructureDiff is the patch produced by comparing a year's stored fee
// structure with a newly submitted item set.
type StructureDiff struct {
	Added     []*models.FeeStructureItem
	Changed   []StructureChange
	Removed   []*models.FeeStructureItem
	Unchanged int
}

func structureKey(item *models.FeeStructureItem) string {
	return item.ClassID + "|" + item.FeeTypeID
}

// DiffFeeStructure compares stored items against incoming ones by their
// (class, fee type) identity. An item counts as changed when its amount,
// due date, notes or applicability flags differ.
func DiffFeeStructure(existing, incoming []*models.FeeStructureItem) StructureDiff {
	var diff StructureDiff

	stored := make(map[string]*models.FeeStructureItem, len(existing))
	for _, item := range existing {
		stored[structureKey(item)] = item
	}

	seen := make(map[string]bool, len(incoming))
	for _, item := range incoming {
		key := structureKey(item)
		seen[key] = true

		prev, ok := stored[key]
		if !ok {
			diff.Added = append(diff.Added, item)
			continue
		}
		if prev.Amount.Equal(item.Amount) &&
			prev.DueDate.Time.Equal(item.DueDate.Time) &&
			prev.Notes == item.Notes &&
			prev.ApplicableToNewStudentsOnly == item.ApplicableToNewStudentsOnly &&
			prev.IsRecurringMonthly == item.IsRecurringMonthly {
			diff.Unchanged++
			continue
		}
		diff.Changed = append(diff.Changed, StructureChange{Existing: prev, Incoming: item})
	}

	for _, item := range existing {
		if !seen[structureKey(item)] {
			diff.Removed = append(diff.Removed, item)
		}
	}
	return diff
}

// GetFeeStructure returns a year's fee items with class names and fee-type
// metadata resolved.
func GetFeeStructure(db *sql.DB, yearID string) ([]*models.FeeStructureItem, error) {
	query := `SELECT fs.id, fs.academic_year_id, fs.class_id, fs.fee_type_id, fs.amount, fs.due_date,
		fs.applicable_to_new_students_only, fs.is_recurring_monthly, COALESCE(fs.notes, ''),
		fs.created_at, fs.updated_at,
		c.name AS class_name, ft.name AS fee_type_name, ft.category, ft.frequency
		FROM fee_structure fs
		JOIN classes c ON fs.class_id = c.id
		JOIN fee_types ft ON fs.fee_type_id = ft.id
		WHERE fs.academic_year_id = $1
		ORDER BY c.name, ft.name`

	rows, err := db.Query(query, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.FeeStructureItem{}
	for rows.Next() {
		item := &models.FeeStructureItem{}
		err := rows.Scan(&item.ID, &item.AcademicYearID, &item.ClassID, &item.FeeTypeID,
			&item.Amount, &item.DueDate.Time, &item.ApplicableToNewStudentsOnly,
			&item.IsRecurringMonthly, &item.Notes, &item.CreatedAt, &item.UpdatedAt,
			&item.ClassName, &item.FeeTypeName, &item.Category, &item.Frequency)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ReplaceFeeStructure applies the submitted item set for a year as a
// diff/patch inside one transaction: audit rows go in for genuinely changed
// amounts before the change itself, additions are inserted, removals
// deleted. A concurrent reader never observes a half-replaced structure.
func ReplaceFeeStructure(db *sql.DB, yearID string, items []*models.FeeStructureItem, changedBy string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	existing, err := getFeeStructureForUpdate(tx, yearID)
	if err != nil {
		return err
	}

	diff := DiffFeeStructure(existing, items)

	for _, change := range diff.Changed {
		if change.AmountChanged() {
			if err = insertHistoryRow(tx, change.Existing, change.Incoming.Amount, changedBy); err != nil {
				return err
			}
		}
		_, err = tx.Exec(`UPDATE fee_structure
			SET amount = $1, due_date = $2, applicable_to_new_students_only = $3,
				is_recurring_monthly = $4, notes = $5, updated_at = NOW()
			WHERE id = $6`,
			change.Incoming.Amount, change.Incoming.DueDate.Time,
			change.Incoming.ApplicableToNewStudentsOnly, change.Incoming.IsRecurringMonthly,
			change.Incoming.Notes, change.Existing.ID)
		if err != nil {
			return err
		}
	}

	for _, item := range diff.Added {
		if err = insertStructureItem(tx, yearID, item); err != nil {
			return err
		}
	}

	for _, item := range diff.Removed {
		if _, err = tx.Exec(`DELETE FROM fee_structure WHERE id = $1`, item.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// InsertFeeStructureItems inserts carry-forward items for a year in one
// transaction. The source year's rows are never touched.
func InsertFeeStructureItems(db *sql.DB, yearID string, items []*models.FeeStructureItem) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range items {
		if err = insertStructureItem(tx, yearID, item); err != nil {
			if isUniqueViolation(err) {
				return models.NewConflictError("target year already has a fee line for one of the copied (class, fee type) pairs")
			}
			return err
		}
	}
	return tx.Commit()
}

func getFeeStructureForUpdate(tx *sql.Tx, yearID string) ([]*models.FeeStructureItem, error) {
	rows, err := tx.Query(`SELECT id, academic_year_id, class_id, fee_type_id, amount, due_date,
		applicable_to_new_students_only, is_recurring_monthly, COALESCE(notes, '')
		FROM fee_structure WHERE academic_year_id = $1 FOR UPDATE`, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.FeeStructureItem{}
	for rows.Next() {
		item := &models.FeeStructureItem{}
		err := rows.Scan(&item.ID, &item.AcademicYearID, &item.ClassID, &item.FeeTypeID,
			&item.Amount, &item.DueDate.Time, &item.ApplicableToNewStudentsOnly,
			&item.IsRecurringMonthly, &item.Notes)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func insertStructureItem(tx *sql.Tx, yearID string, item *models.FeeStructureItem) error {
	return tx.QueryRow(`INSERT INTO fee_structure
		(academic_year_id, class_id, fee_type_id, amount, due_date, applicable_to_new_students_only, is_recurring_monthly, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NOW(), NOW())
		RETURNING id`,
		yearID, item.ClassID, item.FeeTypeID, item.Amount, item.DueDate.Time,
		item.ApplicableToNewStudentsOnly, item.IsRecurringMonthly, item.Notes).
		Scan(&item.ID)
}

func insertHistoryRow(tx *sql.Tx, prev *models.FeeStructureItem, newAmount decimal.Decimal, changedBy string) error {
	_, err := tx.Exec(`INSERT INTO fee_structure_history
		(fee_structure_id, academic_year_id, class_id, fee_type_id, previous_amount, new_amount, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`,
		prev.ID, prev.AcademicYearID, prev.ClassID, prev.FeeTypeID, prev.Amount, newAmount, changedBy)
	return err
}

// GetFeeStructureHistory returns the audit trail for a year, newest first.
func GetFeeStructureHistory(db *sql.DB, yearID string) ([]*models.FeeStructureHistory, error) {
	query := `SELECT id, fee_structure_id, academic_year_id, class_id, fee_type_id,
		previous_amount, new_amount, changed_by, changed_at
		FROM fee_structure_history
		WHERE academic_year_id = $1
		ORDER BY changed_at DESC`

	rows, err := db.Query(query, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*models.FeeStructureHistory{}
	for rows.Next() {
		rec := &models.FeeStructureHistory{}
		err := rows.Scan(&rec.ID, &rec.FeeStructureID, &rec.AcademicYearID, &rec.ClassID,
			&rec.FeeTypeID, &rec.PreviousAmount, &rec.NewAmount, &rec.ChangedBy, &rec.ChangedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
