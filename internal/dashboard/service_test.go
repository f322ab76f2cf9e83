package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openwims/wims-backend/internal/inventory"
	"github.com/openwims/wims-backend/pkg/db/models"
	"github.com/openwims/wims-backend/pkg/enums"
)

type stubInventory struct {
	total    int64
	lowCount int64
	units    int64
	lowItems []models.InventoryItem
}

func (s *stubInventory) Count(context.Context) (int64, error)         { return s.total, nil }
func (s *stubInventory) CountLowStock(context.Context) (int64, error) { return s.lowCount, nil }
func (s *stubInventory) SumStock(context.Context) (int64, error)      { return s.units, nil }

func (s *stubInventory) List(_ context.Context, filter inventory.ListFilter) ([]models.InventoryItem, error) {
	if !filter.LowStockOnly {
		return nil, nil
	}
	return s.lowItems, nil
}

type stubOrders struct {
	pending int64
	recent  []models.Order
	limit   int
}

func (s *stubOrders) CountByStatus(_ context.Context, status enums.OrderStatus) (int64, error) {
	if status != enums.OrderStatusPending {
		return 0, nil
	}
	return s.pending, nil
}

func (s *stubOrders) Recent(_ context.Context, limit int) ([]models.Order, error) {
	s.limit = limit
	return s.recent, nil
}

type stubSuppliers struct {
	count int64
}

func (s *stubSuppliers) Count(context.Context) (int64, error) { return s.count, nil }

func TestSummaryAggregates(t *testing.T) {
	lowItem := models.InventoryItem{
		ID:          uuid.New(),
		ItemName:    "Shrink Wrap",
		Stock:       2,
		MinStock:    10,
		Price:       decimal.NewFromFloat(14.5),
		Supplier:    "Acme Supplies",
		LastUpdated: time.Now().UTC(),
	}
	order := models.Order{
		ID:        uuid.New(),
		ItemID:    lowItem.ID,
		ItemName:  lowItem.ItemName,
		Quantity:  3,
		Status:    enums.OrderStatusPending,
		OrderedBy: "alice",
		OrderDate: time.Now().UTC(),
	}

	inv := &stubInventory{total: 12, lowCount: 1, units: 340, lowItems: []models.InventoryItem{lowItem}}
	ord := &stubOrders{pending: 4, recent: []models.Order{order}}
	sup := &stubSuppliers{count: 3}

	svc, err := NewService(ServiceParams{Inventory: inv, Orders: ord, Suppliers: sup})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.TotalItems != 12 || summary.TotalStockUnits != 340 {
		t.Fatalf("unexpected inventory totals: %+v", summary)
	}
	if summary.PendingOrders != 4 || summary.TotalSuppliers != 3 || summary.LowStockCount != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if ord.limit != 10 {
		t.Fatalf("expected recent orders limited to 10, got %d", ord.limit)
	}
	if len(summary.RecentOrders) != 1 || summary.RecentOrders[0].OrderedBy != "alice" {
		t.Fatalf("unexpected recent orders: %+v", summary.RecentOrders)
	}
	if len(summary.LowStockItems) != 1 || !summary.LowStockItems[0].LowStock {
		t.Fatalf("expected low stock item flagged: %+v", summary.LowStockItems)
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(ServiceParams{Orders: &stubOrders{}, Suppliers: &stubSuppliers{}}); err == nil {
		t.Fatal("expected error without inventory reader")
	}
	if _, err := NewService(ServiceParams{Inventory: &stubInventory{}, Suppliers: &stubSuppliers{}}); err == nil {
		t.Fatal("expected error without order reader")
	}
	if _, err := NewService(ServiceParams{Inventory: &stubInventory{}, Orders: &stubOrders{}}); err == nil {
		t.Fatal("expected error without supplier counter")
	}
}
