package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Village represents a bus-service pickup area.
type Village struct {
	ID                 string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name               string          `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	DistanceFromSchool decimal.Decimal `json:"distance_from_school" gorm:"type:numeric(6,2)"`
	BusNumber          string          `json:"bus_number,omitempty" gorm:"type:varchar(20)"`
	IsActive           bool            `json:"is_active" gorm:"default:true"`
	CreatedAt          time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// BusFeeStructureItem is the per-village bus fee for an academic year,
// valid within its effective window. effective_from_date precedes
// effective_to_date.
type BusFeeStructureItem struct {
	ID                string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	AcademicYearID    string          `json:"academic_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	VillageID         string          `json:"village_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FeeAmount         decimal.Decimal `json:"fee_amount" gorm:"not null;type:numeric(12,2)"`
	EffectiveFromDate CustomTime      `json:"effective_from_date" gorm:"not null;type:date" validate:"required"`
	EffectiveToDate   CustomTime      `json:"effective_to_date" gorm:"not null;type:date" validate:"required"`
	IsActive          bool            `json:"is_active" gorm:"default:true;index"`
	CreatedAt         time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	// Resolved for display, not persisted
	VillageName string `json:"village_name,omitempty" gorm:"-"`
}
