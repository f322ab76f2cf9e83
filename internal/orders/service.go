package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openwims/wims-backend/pkg/db/models"
	"github.com/openwims/wims-backend/pkg/enums"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
	"github.com/openwims/wims-backend/pkg/pagination"
)

// Service defines the behavior needed by the orders controller.
type Service interface {
	Place(ctx context.Context, actor Actor, dto PlaceOrderDTO) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) (*ListResponse, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Order, string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

type stockRepository interface {
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.InventoryItem, error)
	DecrementStockTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, qty int) (int64, error)
}

type activityRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action, details string)
	RecordTx(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, details string) error
}

type service struct {
	tx       txRunner
	orders   orderRepository
	stock    stockRepository
	activity activityRecorder
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	Tx       txRunner
	Orders   orderRepository
	Stock    stockRepository
	Activity activityRecorder
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Stock == nil {
		return nil, fmt.Errorf("stock repository is required")
	}
	if params.Activity == nil {
		return nil, fmt.Errorf("activity recorder is required")
	}
	return &service{
		tx:       params.Tx,
		orders:   params.Orders,
		stock:    params.Stock,
		activity: params.Activity,
	}, nil
}

// Place reserves stock and creates the order in one transaction. The guarded
// decrement keeps two concurrent orders from overselling the same item; if
// any step fails the stock change rolls back with the order.
func (s *service) Place(ctx context.Context, actor Actor, dto PlaceOrderDTO) (*OrderDTO, error) {
	if dto.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if dto.Quantity > MaxOrderQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity cannot exceed %d", MaxOrderQuantity))
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		item, err := s.stock.FindByIDTx(ctx, tx, dto.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading item")
		}

		affected, err := s.stock.DecrementStockTx(ctx, tx, dto.ItemID, dto.Quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reserving stock")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock")
		}

		order = &models.Order{
			ItemID:    item.ID,
			ItemName:  item.ItemName,
			Quantity:  dto.Quantity,
			Status:    enums.OrderStatusPending,
			OrderedBy: actor.Username,
			Notes:     dto.Notes,
		}
		if err := s.orders.CreateTx(ctx, tx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
		}

		details := fmt.Sprintf("%d x %s", order.Quantity, order.ItemName)
		return s.activity.RecordTx(ctx, tx, &actor.ID, "Placed order", details)
	})
	if err != nil {
		return nil, err
	}

	result := FromModel(order)
	return &result, nil
}

// UpdateStatus moves the order to the requested status. Managers and admins
// only; any known status may follow any other.
func (s *service) UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if !actor.Role.CanManageOrders() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", status))
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	previous := order.Status
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	order.Status = status

	details := fmt.Sprintf("%s: %s -> %s", order.ItemName, previous, status)
	s.activity.Record(ctx, &actor.ID, "Updated order status", details)

	result := FromModel(order)
	return &result, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	result := FromModel(order)
	return &result, nil
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (*ListResponse, error) {
	rows, next, err := s.orders.List(ctx, filter, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}

	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return &ListResponse{Orders: out, NextCursor: next}, nil
}
