package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openwims/wims-backend/pkg/db/models"
)

// Repository exposes inventory persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an inventory repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new inventory item.
func (r *Repository) Create(ctx context.Context, dto CreateItemDTO) (*models.InventoryItem, error) {
	item := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads an item by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns items matching the filter ordered by name.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.InventoryItem, error) {
	query := r.db.WithContext(ctx).Model(&models.InventoryItem{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(item_name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if filter.LowStockOnly {
		query = query.Where("stock < min_stock")
	}

	var items []models.InventoryItem
	if err := query.Order("item_name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies the non-nil fields of the DTO to the stored item.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, dto UpdateItemDTO) (*models.InventoryItem, error) {
	updates := map[string]any{}
	if dto.ItemName != nil {
		updates["item_name"] = *dto.ItemName
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Category != nil {
		updates["category"] = *dto.Category
	}
	if dto.Stock != nil {
		updates["stock"] = *dto.Stock
	}
	if dto.MinStock != nil {
		updates["min_stock"] = *dto.MinStock
	}
	if dto.Price != nil {
		updates["price"] = *dto.Price
	}
	if dto.Supplier != nil {
		updates["supplier"] = *dto.Supplier
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.InventoryItem{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes the item. Returns gorm.ErrRecordNotFound when nothing matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InventoryItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementStockTx atomically subtracts qty from the item's stock inside the
// supplied transaction. The guard keeps stock from going negative under
// concurrent orders; RowsAffected reports whether the decrement happened.
func (r *Repository) DecrementStockTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	result := tx.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	return result.RowsAffected, result.Error
}

// FindByIDTx loads an item inside the supplied transaction.
func (r *Repository) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := tx.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Count returns the total number of items.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InventoryItem{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountLowStock returns the number of items below their minimum stock.
func (r *Repository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("stock < min_stock").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumStock returns the total units on hand across all items.
func (r *Repository) SumStock(ctx context.Context) (int64, error) {
	var total *int64
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Select("SUM(stock)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// Categories returns the distinct non-empty categories in use.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("category <> ''").
		Distinct("category").
		Order("category ASC").
		Pluck("category", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
