package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockItem represents a material kept in inventory and consumed by
// work orders. PurchasePrice is the current unit cost in cents.
type StockItem struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	SKU           string         `gorm:"size:100;unique;not null" json:"sku"`
	PurchasePrice int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	ReorderLevel  int            `gorm:"default:0" json:"reorder_level"`
	Notes         *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si StockItem) MarshalJSON() ([]byte, error) {
	type Alias StockItem
	return json.Marshal(&struct {
		Alias
		PurchasePrice float64 `json:"purchase_price"`
	}{
		Alias:         Alias(si),
		PurchasePrice: float64(si.PurchasePrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new stock item
func (si *StockItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockItem model
func (StockItem) TableName() string {
	return "stock_items"
}

// GetPurchasePriceDecimal returns the purchase price as a decimal (for display)
func (si *StockItem) GetPurchasePriceDecimal() float64 {
	return float64(si.PurchasePrice) / 100
}

// SetPurchasePriceFromDecimal sets the purchase price from a decimal value
func (si *StockItem) SetPurchasePriceFromDecimal(price float64) {
	si.PurchasePrice = int64(price * 100)
}

// IsLowStock reports whether the item has fallen below its reorder level
func (si *StockItem) IsLowStock() bool {
	return si.StockQuantity < si.ReorderLevel
}
