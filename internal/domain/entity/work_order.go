package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// WorkOrder represents a unit of billable field work ("job")
type WorkOrder struct {
	ID          uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID   uuid.UUID            `gorm:"type:uuid;not null;index" json:"company_id"`
	CustomerID  *uuid.UUID           `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	StaffID     *uuid.UUID           `gorm:"type:uuid;index" json:"staff_id,omitempty"`
	ServiceType string               `gorm:"size:255;not null" json:"service_type"`
	Status      enum.WorkOrderStatus `gorm:"default:0" json:"status"`
	Date        time.Time            `gorm:"type:date;not null" json:"date"`
	Time        string               `gorm:"size:20" json:"time"`
	Street      *string              `gorm:"size:255" json:"street,omitempty"`
	City        *string              `gorm:"size:100" json:"city,omitempty"`
	Notes       *string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time            `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	DeletedAt   gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	Company    Company              `gorm:"foreignKey:CompanyID" json:"-"`
	Customer   *Customer            `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Staff      *Staff               `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	StockUsage []WorkOrderStockUsage `gorm:"foreignKey:WorkOrderID" json:"stock_usage,omitempty"`
}

// BeforeCreate generates a UUID before creating a new work order
func (w *WorkOrder) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the WorkOrder model
func (WorkOrder) TableName() string {
	return "work_orders"
}

// WorkOrderStockUsage records a quantity of a stock item consumed
// by a work order
type WorkOrderStockUsage struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WorkOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"work_order_id"`
	StockItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"stock_item_id"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	WorkOrder WorkOrder `gorm:"foreignKey:WorkOrderID" json:"-"`
	StockItem StockItem `gorm:"foreignKey:StockItemID" json:"stock_item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new usage line
func (u *WorkOrderStockUsage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the WorkOrderStockUsage model
func (WorkOrderStockUsage) TableName() string {
	return "work_order_stock_usage"
}
