package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff represents a field worker or technician employed by a company
type Staff struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	ContactPersonName string         `gorm:"size:255;not null" json:"contact_person_name"`
	Email             *string        `gorm:"size:255" json:"email,omitempty"`
	Phone             *string        `gorm:"size:50" json:"phone,omitempty"`
	Position          *string        `gorm:"size:100" json:"position,omitempty"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Company    Company     `gorm:"foreignKey:CompanyID" json:"-"`
	WorkOrders []WorkOrder `gorm:"foreignKey:StaffID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new staff member
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Staff model
func (Staff) TableName() string {
	return "staff"
}
