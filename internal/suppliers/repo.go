package suppliers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openwims/wims-backend/pkg/db/models"
)

// Repository exposes supplier persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a suppliers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new supplier.
func (r *Repository) Create(ctx context.Context, dto CreateSupplierDTO) (*models.Supplier, error) {
	supplier := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

// FindByID loads a supplier by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

// List returns every supplier ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Supplier, error) {
	var out []models.Supplier
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the total number of suppliers.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Supplier{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
