package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openwims/wims-backend/pkg/db/models"
)

// ItemDTO is the transport shape of an inventory row.
type ItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ItemName    string          `json:"item_name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	Price       decimal.Decimal `json:"price"`
	Supplier    string          `json:"supplier,omitempty"`
	LowStock    bool            `json:"low_stock"`
	LastUpdated time.Time       `json:"last_updated"`
}

// CreateItemDTO holds the fields accepted when adding an item.
type CreateItemDTO struct {
	ItemName    string
	Description string
	Category    string
	Stock       int
	MinStock    *int
	Price       decimal.Decimal
	Supplier    string
}

// UpdateItemDTO holds the mutable fields of an item. Nil pointers leave the
// stored value untouched.
type UpdateItemDTO struct {
	ItemName    *string
	Description *string
	Category    *string
	Stock       *int
	MinStock    *int
	Price       *decimal.Decimal
	Supplier    *string
}

// ListFilter narrows inventory queries.
type ListFilter struct {
	Category     string
	Search       string
	LowStockOnly bool
}

func FromModel(m *models.InventoryItem) ItemDTO {
	return ItemDTO{
		ID:          m.ID,
		ItemName:    m.ItemName,
		Description: m.Description,
		Category:    m.Category,
		Stock:       m.Stock,
		MinStock:    m.MinStock,
		Price:       m.Price,
		Supplier:    m.Supplier,
		LowStock:    m.LowStock(),
		LastUpdated: m.LastUpdated,
	}
}

func (c CreateItemDTO) ToModel() *models.InventoryItem {
	minStock := 5
	if c.MinStock != nil {
		minStock = *c.MinStock
	}
	return &models.InventoryItem{
		ID:          uuid.New(),
		ItemName:    c.ItemName,
		Description: c.Description,
		Category:    c.Category,
		Stock:       c.Stock,
		MinStock:    minStock,
		Price:       c.Price,
		Supplier:    c.Supplier,
	}
}
