package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openwims/wims-backend/pkg/db/models"
	"github.com/openwims/wims-backend/pkg/enums"
	"github.com/openwims/wims-backend/pkg/pagination"
)

// Repository exposes order persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateTx inserts the order inside the supplied transaction.
func (r *Repository) CreateTx(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return tx.WithContext(ctx).Create(order).Error
}

// FindByID loads an order by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "order_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders newest first, keyset-paginated.
func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Order, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderedBy != "" {
		query = query.Where("ordered_by = ?", filter.OrderedBy)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where(
			"(order_date < ?) OR (order_date = ? AND order_id < ?)",
			cursor.Timestamp, cursor.Timestamp, cursor.ID,
		)
	}

	var rows []models.Order
	if err := query.
		Order("order_date DESC, order_id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{Timestamp: last.OrderDate, ID: last.ID})
	}
	return rows, next, nil
}

// UpdateStatus overwrites the order status. Returns gorm.ErrRecordNotFound
// when nothing matched.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", id).
		UpdateColumn("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Recent returns the most recently placed orders.
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.Order, error) {
	var rows []models.Order
	if err := r.db.WithContext(ctx).
		Order("order_date DESC, order_id DESC").
		Limit(pagination.NormalizeLimit(limit)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByStatus returns the number of orders currently in the given status.
func (r *Repository) CountByStatus(ctx context.Context, status enums.OrderStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count returns the total number of orders.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
