package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is one stocked article in the warehouse.
type InventoryItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ItemName    string          `gorm:"column:item_name;not null"`
	Description string          `gorm:"column:description"`
	Category    string          `gorm:"column:category"`
	Stock       int             `gorm:"column:stock;not null;check:stock >= 0"`
	MinStock    int             `gorm:"column:min_stock;not null;default:5"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	Supplier    string          `gorm:"column:supplier;not null"`
	LastUpdated time.Time       `gorm:"column:last_updated;autoUpdateTime"`
}

// TableName keeps the table name inherited from the original schema.
func (InventoryItem) TableName() string {
	return "inventory"
}

// LowStock reports whether the item sits below its reorder threshold.
func (i InventoryItem) LowStock() bool {
	return i.Stock < i.MinStock
}
