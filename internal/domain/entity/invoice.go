package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice represents a bill raised against a work order. At most one
// invoice may reference a given work order; more than one is a data
// integrity violation surfaced by the financial rollup.
type Invoice struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"company_id"`
	WorkOrderID   *uuid.UUID         `gorm:"type:uuid;index" json:"work_order_id,omitempty"`
	CustomerID    *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	InvoiceNumber string             `gorm:"size:100;unique;not null" json:"invoice_number"`
	Total         int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	BalanceDue    int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Status        enum.InvoiceStatus `gorm:"default:0" json:"status"`
	DueDate       time.Time          `gorm:"type:date;not null" json:"due_date"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Company   Company    `gorm:"foreignKey:CompanyID" json:"-"`
	WorkOrder *WorkOrder `gorm:"foreignKey:WorkOrderID" json:"-"`
	Customer  *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		Total      float64 `json:"total"`
		BalanceDue float64 `json:"balance_due"`
	}{
		Alias:      Alias(i),
		Total:      float64(i.Total) / 100,
		BalanceDue: float64(i.BalanceDue) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// GetTotalDecimal returns the total as a decimal
func (i *Invoice) GetTotalDecimal() float64 {
	return float64(i.Total) / 100
}

// GetBalanceDueDecimal returns the balance due as a decimal
func (i *Invoice) GetBalanceDueDecimal() float64 {
	return float64(i.BalanceDue) / 100
}
