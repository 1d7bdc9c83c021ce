package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeType represents a category of fee that can be priced per class.
type FeeType struct {
	ID                   string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name                 string       `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Category             FeeCategory  `json:"category" gorm:"not null;type:varchar(20);check:category IN ('school','bus','admission')" validate:"required,oneof=school bus admission"`
	Frequency            FeeFrequency `json:"frequency" gorm:"not null;type:varchar(20);check:frequency IN ('monthly','quarterly','annual')" validate:"required,oneof=monthly quarterly annual"`
	IsMonthly            bool         `json:"is_monthly" gorm:"default:false"`
	IsForNewStudentsOnly bool         `json:"is_for_new_students_only" gorm:"default:false"`
	IsActive             bool         `json:"is_active" gorm:"default:true;index"`
	CreatedAt            time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// FeeStructureItem is one (class, fee type) pricing line for an academic
// year. The (class_id, fee_type_id) pair is unique within a year.
type FeeStructureItem struct {
	ID                          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	AcademicYearID              string          `json:"academic_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassID                     string          `json:"class_id" gorm:"not null;index;type:uuid;uniqueIndex:idx_fee_structure_class_type" validate:"required,uuid"`
	FeeTypeID                   string          `json:"fee_type_id" gorm:"not null;index;type:uuid;uniqueIndex:idx_fee_structure_class_type" validate:"required,uuid"`
	Amount                      decimal.Decimal `json:"amount" gorm:"not null;type:numeric(12,2)"`
	DueDate                     CustomTime      `json:"due_date" gorm:"not null;type:date" validate:"required"`
	ApplicableToNewStudentsOnly bool            `json:"applicable_to_new_students_only" gorm:"default:false"`
	IsRecurringMonthly          bool            `json:"is_recurring_monthly" gorm:"default:false"`
	Notes                       string          `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt                   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt                   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	// Resolved for display, not persisted
	ClassName   string       `json:"class_name,omitempty" gorm:"-"`
	FeeTypeName string       `json:"fee_type_name,omitempty" gorm:"-"`
	Category    FeeCategory  `json:"category,omitempty" gorm:"-"`
	Frequency   FeeFrequency `json:"frequency,omitempty" gorm:"-"`
}

// AppliesTo reports whether the item contributes to the given student's
// school fee total.
func (i *FeeStructureItem) AppliesTo(registration RegistrationType) bool {
	if !i.ApplicableToNewStudentsOnly {
		return true
	}
	return registration == RegistrationNew
}

// FeeStructureHistory is the append-only audit record written whenever an
// existing item's amount changes.
type FeeStructureHistory struct {
	ID             string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FeeStructureID string          `json:"fee_structure_id" gorm:"not null;index;type:uuid"`
	AcademicYearID string          `json:"academic_year_id" gorm:"not null;index;type:uuid"`
	ClassID        string          `json:"class_id" gorm:"not null;type:uuid"`
	FeeTypeID      string          `json:"fee_type_id" gorm:"not null;type:uuid"`
	PreviousAmount decimal.Decimal `json:"previous_amount" gorm:"not null;type:numeric(12,2)"`
	NewAmount      decimal.Decimal `json:"new_amount" gorm:"not null;type:numeric(12,2)"`
	ChangedBy      string          `json:"changed_by" gorm:"not null;type:uuid"`
	ChangedAt      time.Time       `json:"changed_at" gorm:"autoCreateTime"`
}

// ClassTotals is the frequency-converted view of a class's fee lines.
type ClassTotals struct {
	MonthlyTotal decimal.Decimal `json:"monthly_total"`
	TermTotal    decimal.Decimal `json:"term_total"`
	AnnualTotal  decimal.Decimal `json:"annual_total"`
}
