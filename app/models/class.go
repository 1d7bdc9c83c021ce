package models

import "time"

// Class represents one class section within an academic year. Classes are
// not shared across years; cross-year matching is done by name only.
type Class struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	AcademicYearID string     `json:"academic_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Name           string     `json:"name" gorm:"not null" validate:"required"`
	StudentCount   int        `json:"student_count" gorm:"-"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	AcademicYear *AcademicYear `json:"academic_year,omitempty" gorm:"foreignKey:AcademicYearID;references:ID"`
	Students     []*Student    `json:"students,omitempty" gorm:"foreignKey:ClassID;references:ID"`
}
