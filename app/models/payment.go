package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents one collected fee payment. Payment rows are
// append-only at collection time; corrections are modeled as
// delete-and-reinsert, never in-place mutation.
type Payment struct {
	ID             string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	StudentID      string          `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYearID string          `json:"academic_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AmountPaid     decimal.Decimal `json:"amount_paid" gorm:"not null;type:numeric(12,2)"`
	PaymentDate    time.Time       `json:"payment_date" gorm:"not null;index"`
	PaymentMethod  PaymentMethod   `json:"payment_method" gorm:"not null;type:varchar(20)" validate:"required"`
	ReceiptNumber  string          `json:"receipt_number" gorm:"uniqueIndex;not null"`
	CreatedBy      string          `json:"created_by" gorm:"not null;type:uuid"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`

	Student    *Student           `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Allocation *PaymentAllocation `json:"allocation,omitempty" gorm:"foreignKey:PaymentID;references:ID"`
}

// PaymentAllocation records how a payment's amount was split across fee
// categories at collection time. Once written it is authoritative forever;
// later balance changes never re-split a historical payment.
type PaymentAllocation struct {
	ID              string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PaymentID       string          `json:"payment_id" gorm:"not null;uniqueIndex;type:uuid"`
	BusFeeAmount    decimal.Decimal `json:"bus_fee_amount" gorm:"not null;type:numeric(12,2)"`
	SchoolFeeAmount decimal.Decimal `json:"school_fee_amount" gorm:"not null;type:numeric(12,2)"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// Total returns the allocation sum; it must always equal the payment's
// amount_paid exactly.
func (a *PaymentAllocation) Total() decimal.Decimal {
	return a.BusFeeAmount.Add(a.SchoolFeeAmount)
}
