package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Lead represents a prospective customer
type Lead struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	CreatedByID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"created_by_id"`
	ContactPersonName string          `gorm:"size:255;not null" json:"contact_person_name"`
	CompanyName       *string         `gorm:"size:255" json:"company_name,omitempty"`
	Email             *string         `gorm:"size:255" json:"email,omitempty"`
	Phone             *string         `gorm:"size:50" json:"phone,omitempty"`
	Address           *string         `gorm:"type:text" json:"address,omitempty"`
	LeadStatus        enum.LeadStatus `gorm:"default:0" json:"lead_status"`
	LeadSource        *string         `gorm:"size:100" json:"lead_source,omitempty"`
	SalesPersonName   *string         `gorm:"size:255" json:"sales_person_name,omitempty"`
	Notes             *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Company   Company `gorm:"foreignKey:CompanyID" json:"-"`
	CreatedBy User    `gorm:"foreignKey:CreatedByID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new lead
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Lead model
func (Lead) TableName() string {
	return "leads"
}
