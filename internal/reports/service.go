package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
)

// CategorySummary aggregates inventory per category.
type CategorySummary struct {
	Category   string          `json:"category" gorm:"column:category"`
	ItemCount  int             `json:"item_count" gorm:"column:item_count"`
	TotalStock int             `json:"total_stock" gorm:"column:total_stock"`
	AvgPrice   decimal.Decimal `json:"avg_price" gorm:"column:avg_price"`
}

// DailyOrders aggregates orders per calendar day.
type DailyOrders struct {
	Day        string `json:"day" gorm:"column:day"`
	OrderCount int    `json:"order_count" gorm:"column:order_count"`
	TotalUnits int    `json:"total_units" gorm:"column:total_units"`
}

// SupplierPerformance joins supplier metadata with the items they source.
type SupplierPerformance struct {
	Supplier     string `json:"supplier" gorm:"column:supplier"`
	ItemCount    int    `json:"item_count" gorm:"column:item_count"`
	TotalStock   int    `json:"total_stock" gorm:"column:total_stock"`
	LeadTimeDays int    `json:"lead_time_days" gorm:"column:lead_time_days"`
	Rating       int    `json:"rating" gorm:"column:rating"`
}

// Service exposes the read-only reporting projections.
type Service interface {
	InventorySummary(ctx context.Context) ([]CategorySummary, error)
	OrderHistory(ctx context.Context, from, to time.Time) ([]DailyOrders, error)
	SupplierPerformance(ctx context.Context) ([]SupplierPerformance, error)
}

type service struct {
	db *gorm.DB
}

// NewService constructs a reports service over the provided GORM DB.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &service{db: db}, nil
}

func (s *service) InventorySummary(ctx context.Context) ([]CategorySummary, error) {
	var rows []CategorySummary
	err := s.db.WithContext(ctx).Raw(`
SELECT category,
       COUNT(*)   AS item_count,
       SUM(stock) AS total_stock,
       AVG(price) AS avg_price
FROM inventory
GROUP BY category
ORDER BY total_stock DESC, category ASC`).Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "inventory summary")
	}
	return rows, nil
}

func (s *service) OrderHistory(ctx context.Context, from, to time.Time) ([]DailyOrders, error) {
	if to.Before(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "to must not precede from")
	}

	var rows []DailyOrders
	err := s.db.WithContext(ctx).Raw(`
SELECT DATE(order_date) AS day,
       COUNT(*)         AS order_count,
       SUM(quantity)    AS total_units
FROM orders
WHERE order_date >= ? AND order_date < ?
GROUP BY DATE(order_date)
ORDER BY day ASC`, from, to).Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order history")
	}
	return rows, nil
}

func (s *service) SupplierPerformance(ctx context.Context) ([]SupplierPerformance, error) {
	var rows []SupplierPerformance
	err := s.db.WithContext(ctx).Raw(`
SELECT s.name           AS supplier,
       COUNT(i.id)      AS item_count,
       COALESCE(SUM(i.stock), 0) AS total_stock,
       s.lead_time_days AS lead_time_days,
       s.rating         AS rating
FROM suppliers s
LEFT JOIN inventory i ON i.supplier = s.name
GROUP BY s.id, s.name, s.lead_time_days, s.rating
ORDER BY s.rating DESC, s.name ASC`).Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "supplier performance")
	}
	return rows, nil
}
