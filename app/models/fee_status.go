package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeStatus is the derived payment position of one student for one
// academic year. It is computed on demand and never persisted.
type FeeStatus struct {
	StudentID         string          `json:"student_id"`
	StudentName       string          `json:"student_name,omitempty"`
	ClassID           string          `json:"class_id"`
	AcademicYearID    string          `json:"academic_year_id"`
	TotalSchoolFees   decimal.Decimal `json:"total_school_fees"`
	TotalBusFees      decimal.Decimal `json:"total_bus_fees"`
	TotalFees         decimal.Decimal `json:"total_fees"`
	PaidSchoolFees    decimal.Decimal `json:"paid_school_fees"`
	PaidBusFees       decimal.Decimal `json:"paid_bus_fees"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	OutstandingSchool decimal.Decimal `json:"outstanding_school"`
	OutstandingBus    decimal.Decimal `json:"outstanding_bus"`
	OutstandingTotal  decimal.Decimal `json:"outstanding_total"`
	Status            FeeStatusLabel  `json:"status"`
	LastPaymentDate   *time.Time      `json:"last_payment_date,omitempty"`
}

// IsDefaulter reports whether the student still owes anything.
func (fs *FeeStatus) IsDefaulter() bool {
	return fs.Status != StatusPaid
}

// ClassFeeSummary aggregates the fee statuses of every student in a class.
type ClassFeeSummary struct {
	ClassID          string          `json:"class_id"`
	ClassName        string          `json:"class_name,omitempty"`
	AcademicYearID   string          `json:"academic_year_id"`
	StudentCount     int             `json:"student_count"`
	PaidCount        int             `json:"paid_count"`
	PartialCount     int             `json:"partial_count"`
	PendingCount     int             `json:"pending_count"`
	TotalFees        decimal.Decimal `json:"total_fees"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	Students         []*FeeStatus    `json:"students"`
}
