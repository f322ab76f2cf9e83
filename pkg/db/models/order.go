package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/openwims/wims-backend/pkg/enums"
)

// Order is a placed order against a single inventory item. ItemName is a
// denormalized snapshot taken at placement time; it survives later renames.
type Order struct {
	ID        uuid.UUID         `gorm:"column:order_id;type:uuid;primaryKey"`
	ItemID    uuid.UUID         `gorm:"column:item_id;type:uuid;not null;index"`
	ItemName  string            `gorm:"column:item_name;not null"`
	Quantity  int               `gorm:"column:quantity;not null"`
	Status    enums.OrderStatus `gorm:"column:status;type:text;not null;default:Pending"`
	OrderedBy string            `gorm:"column:ordered_by"`
	Notes     string            `gorm:"column:notes"`
	OrderDate time.Time         `gorm:"column:order_date;autoCreateTime"`
}
