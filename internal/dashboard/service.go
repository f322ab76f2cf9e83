package dashboard

import (
	"context"
	"fmt"

	"github.com/openwims/wims-backend/internal/inventory"
	"github.com/openwims/wims-backend/internal/orders"
	"github.com/openwims/wims-backend/pkg/db/models"
	"github.com/openwims/wims-backend/pkg/enums"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
)

const recentOrderCount = 10

// Summary is the headline view rendered on the dashboard.
type Summary struct {
	TotalItems      int64               `json:"total_items"`
	TotalStockUnits int64               `json:"total_stock_units"`
	PendingOrders   int64               `json:"pending_orders"`
	TotalSuppliers  int64               `json:"total_suppliers"`
	LowStockCount   int64               `json:"low_stock_count"`
	RecentOrders    []orders.OrderDTO   `json:"recent_orders"`
	LowStockItems   []inventory.ItemDTO `json:"low_stock_items"`
}

// Service assembles the dashboard summary.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type inventoryReader interface {
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
	SumStock(ctx context.Context) (int64, error)
	List(ctx context.Context, filter inventory.ListFilter) ([]models.InventoryItem, error)
}

type orderReader interface {
	CountByStatus(ctx context.Context, status enums.OrderStatus) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.Order, error)
}

type supplierCounter interface {
	Count(ctx context.Context) (int64, error)
}

type service struct {
	inventory inventoryReader
	orders    orderReader
	suppliers supplierCounter
}

// ServiceParams bundles the dependencies required to build a dashboard service.
type ServiceParams struct {
	Inventory inventoryReader
	Orders    orderReader
	Suppliers supplierCounter
}

// NewService constructs a dashboard service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Inventory == nil {
		return nil, fmt.Errorf("inventory reader is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order reader is required")
	}
	if params.Suppliers == nil {
		return nil, fmt.Errorf("supplier counter is required")
	}
	return &service{
		inventory: params.Inventory,
		orders:    params.Orders,
		suppliers: params.Suppliers,
	}, nil
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	totalItems, err := s.inventory.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting items")
	}
	totalUnits, err := s.inventory.SumStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summing stock")
	}
	lowStockCount, err := s.inventory.CountLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting low stock")
	}
	pending, err := s.orders.CountByStatus(ctx, enums.OrderStatusPending)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting pending orders")
	}
	supplierCount, err := s.suppliers.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting suppliers")
	}

	recentRows, err := s.orders.Recent(ctx, recentOrderCount)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading recent orders")
	}
	recent := make([]orders.OrderDTO, 0, len(recentRows))
	for i := range recentRows {
		recent = append(recent, orders.FromModel(&recentRows[i]))
	}

	lowRows, err := s.inventory.List(ctx, inventory.ListFilter{LowStockOnly: true})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading low stock items")
	}
	low := make([]inventory.ItemDTO, 0, len(lowRows))
	for i := range lowRows {
		low = append(low, inventory.FromModel(&lowRows[i]))
	}

	return &Summary{
		TotalItems:      totalItems,
		TotalStockUnits: totalUnits,
		PendingOrders:   pending,
		TotalSuppliers:  supplierCount,
		LowStockCount:   lowStockCount,
		RecentOrders:    recent,
		LowStockItems:   low,
	}, nil
}
