package database

import (
	"database/sql"
	"fmt"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

// InsertPayment records a payment and its allocation in one transaction.
// The allocation written here is authoritative forever; later balance
// changes never re-split it.
func InsertPayment(db *sql.DB, payment *models.Payment) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	queryPayment := `INSERT INTO fee_payments (student_id, academic_year_id, amount_paid, payment_date, payment_method, receipt_number, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at`

	err = tx.QueryRow(queryPayment,
		payment.StudentID,
		payment.AcademicYearID,
		payment.AmountPaid,
		payment.PaymentDate,
		payment.PaymentMethod,
		payment.ReceiptNumber,
		payment.CreatedBy,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError(fmt.Sprintf("receipt number %q already exists", payment.ReceiptNumber))
		}
		return fmt.Errorf("failed to insert payment: %v", err)
	}

	if payment.Allocation != nil {
		payment.Allocation.PaymentID = payment.ID
		queryAllocation := `INSERT INTO payment_allocations (payment_id, bus_fee_amount, school_fee_amount, created_at)
			VALUES ($1, $2, $3, NOW())
			RETURNING id, created_at`

		err = tx.QueryRow(queryAllocation,
			payment.ID,
			payment.Allocation.BusFeeAmount,
			payment.Allocation.SchoolFeeAmount,
		).Scan(&payment.Allocation.ID, &payment.Allocation.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert payment allocation: %v", err)
		}
	}

	return tx.Commit()
}

// GetPaymentsByStudent retrieves a student's payments for one academic
// year, newest first, with allocations attached where one was recorded.
func GetPaymentsByStudent(db *sql.DB, studentID, yearID string) ([]*models.Payment, error) {
	query := `SELECT p.id, p.student_id, p.academic_year_id, p.amount_paid, p.payment_date,
		p.payment_method, p.receipt_number, p.created_by, p.created_at,
		a.id, COALESCE(a.bus_fee_amount, 0), COALESCE(a.school_fee_amount, 0), COALESCE(a.created_at, p.created_at)
		FROM fee_payments p
		LEFT JOIN payment_allocations a ON a.payment_id = p.id
		WHERE p.student_id = $1 AND p.academic_year_id = $2
		ORDER BY p.payment_date DESC`

	rows, err := db.Query(query, studentID, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		p := &models.Payment{}
		alloc := &models.PaymentAllocation{}
		var allocID *string
		err := rows.Scan(
			&p.ID, &p.StudentID, &p.AcademicYearID, &p.AmountPaid, &p.PaymentDate,
			&p.PaymentMethod, &p.ReceiptNumber, &p.CreatedBy, &p.CreatedAt,
			&allocID, &alloc.BusFeeAmount, &alloc.SchoolFeeAmount, &alloc.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if allocID != nil {
			alloc.ID = *allocID
			alloc.PaymentID = p.ID
			p.Allocation = alloc
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// GetPaymentByID returns one payment with its allocation.
func GetPaymentByID(db *sql.DB, id string) (*models.Payment, error) {
	query := `SELECT p.id, p.student_id, p.academic_year_id, p.amount_paid, p.payment_date,
		p.payment_method, p.receipt_number, p.created_by, p.created_at,
		a.id, COALESCE(a.bus_fee_amount, 0), COALESCE(a.school_fee_amount, 0), COALESCE(a.created_at, p.created_at)
		FROM fee_payments p
		LEFT JOIN payment_allocations a ON a.payment_id = p.id
		WHERE p.id = $1`

	p := &models.Payment{}
	alloc := &models.PaymentAllocation{}
	var allocID *string
	err := db.QueryRow(query, id).Scan(
		&p.ID, &p.StudentID, &p.AcademicYearID, &p.AmountPaid, &p.PaymentDate,
		&p.PaymentMethod, &p.ReceiptNumber, &p.CreatedBy, &p.CreatedAt,
		&allocID, &alloc.BusFeeAmount, &alloc.SchoolFeeAmount, &alloc.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("payment", id)
		}
		return nil, err
	}
	if allocID != nil {
		alloc.ID = *allocID
		alloc.PaymentID = p.ID
		p.Allocation = alloc
	}
	return p, nil
}

// DeletePayment removes a payment and its allocation. This is the first
// half of the delete-and-reinsert correction flow; amounts are never
// mutated in place.
func DeletePayment(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM fee_payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return models.NewNotFoundError("payment", id)
	}
	return err
}
