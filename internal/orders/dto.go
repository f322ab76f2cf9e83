package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/openwims/wims-backend/pkg/db/models"
	"github.com/openwims/wims-backend/pkg/enums"
)

// MaxOrderQuantity caps how many units a single order may request.
const MaxOrderQuantity = 100

// OrderDTO is the transport shape of a placed order.
type OrderDTO struct {
	ID        uuid.UUID         `json:"id"`
	ItemID    uuid.UUID         `json:"item_id"`
	ItemName  string            `json:"item_name"`
	Quantity  int               `json:"quantity"`
	Status    enums.OrderStatus `json:"status"`
	OrderedBy string            `json:"ordered_by"`
	Notes     string            `json:"notes,omitempty"`
	OrderDate time.Time         `json:"order_date"`
}

// PlaceOrderDTO holds the fields accepted when placing an order.
type PlaceOrderDTO struct {
	ItemID   uuid.UUID
	Quantity int
	Notes    string
}

// ListFilter narrows order queries.
type ListFilter struct {
	Status    enums.OrderStatus
	OrderedBy string
}

// ListResponse carries one page of orders.
type ListResponse struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// Actor identifies the user performing an order operation.
type Actor struct {
	ID       uuid.UUID
	Username string
	Role     enums.UserRole
}

func FromModel(o *models.Order) OrderDTO {
	return OrderDTO{
		ID:        o.ID,
		ItemID:    o.ItemID,
		ItemName:  o.ItemName,
		Quantity:  o.Quantity,
		Status:    o.Status,
		OrderedBy: o.OrderedBy,
		Notes:     o.Notes,
		OrderDate: o.OrderDate,
	}
}
