package models

import "time"

// Student represents an enrolled student. VillageID is only set for
// students availing the school bus.
type Student struct {
	ID               string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	AdmissionNumber  string           `json:"admission_number" gorm:"uniqueIndex;not null" validate:"required"`
	FirstName        string           `json:"first_name" gorm:"not null" validate:"required"`
	LastName         string           `json:"last_name" gorm:"not null" validate:"required"`
	ClassID          string           `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	VillageID        *string          `json:"village_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	HasSchoolBus     bool             `json:"has_school_bus" gorm:"default:false"`
	RegistrationType RegistrationType `json:"registration_type" gorm:"not null;default:'continuing';type:varchar(20)" validate:"required,oneof=new continuing"`
	IsActive         bool             `json:"is_active" gorm:"default:true;index"`
	CreatedAt        time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt        *time.Time       `json:"deleted_at,omitempty" gorm:"index"`

	// Resolved for display, not persisted
	ClassName   string `json:"class_name,omitempty" gorm:"-"`
	VillageName string `json:"village_name,omitempty" gorm:"-"`
}

// FullName joins the student's first and last names.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
