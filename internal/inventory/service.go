package inventory

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openwims/wims-backend/pkg/db/models"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
)

// Service defines the behavior needed by the inventory controller.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]ItemDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	Create(ctx context.Context, actor uuid.UUID, dto CreateItemDTO) (*ItemDTO, error)
	Update(ctx context.Context, actor uuid.UUID, id uuid.UUID, dto UpdateItemDTO) (*ItemDTO, error)
	Delete(ctx context.Context, actor uuid.UUID, id uuid.UUID) error
	Categories(ctx context.Context) ([]string, error)
	ExportCSV(ctx context.Context, actor uuid.UUID, filter ListFilter, w io.Writer) error
}

type itemRepository interface {
	Create(ctx context.Context, dto CreateItemDTO) (*models.InventoryItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	List(ctx context.Context, filter ListFilter) ([]models.InventoryItem, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateItemDTO) (*models.InventoryItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Categories(ctx context.Context) ([]string, error)
}

type activityRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action, details string)
}

type service struct {
	repo     itemRepository
	activity activityRecorder
}

// ServiceParams bundles the dependencies required to build an inventory service.
type ServiceParams struct {
	Repo     itemRepository
	Activity activityRecorder
}

// NewService constructs an inventory service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	if params.Activity == nil {
		return nil, fmt.Errorf("activity recorder is required")
	}
	return &service{repo: params.Repo, activity: params.Activity}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ItemDTO, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing inventory")
	}
	out := make([]ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, FromModel(&items[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading item")
	}
	dto := FromModel(item)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, actor uuid.UUID, dto CreateItemDTO) (*ItemDTO, error) {
	if strings.TrimSpace(dto.ItemName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if strings.TrimSpace(dto.Supplier) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier is required")
	}
	if dto.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	if dto.MinStock != nil && *dto.MinStock < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min stock must be at least 1")
	}
	if dto.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	item, err := s.repo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating item")
	}

	s.activity.Record(ctx, &actor, "Added item", fmt.Sprintf("%s (stock %d)", item.ItemName, item.Stock))
	result := FromModel(item)
	return &result, nil
}

func (s *service) Update(ctx context.Context, actor uuid.UUID, id uuid.UUID, dto UpdateItemDTO) (*ItemDTO, error) {
	if dto.Stock != nil && *dto.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	if dto.Price != nil && dto.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if dto.ItemName != nil && strings.TrimSpace(*dto.ItemName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name cannot be empty")
	}

	item, err := s.repo.Update(ctx, id, dto)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating item")
	}

	s.activity.Record(ctx, &actor, "Updated item", item.ItemName)
	result := FromModel(item)
	return &result, nil
}

func (s *service) Delete(ctx context.Context, actor uuid.UUID, id uuid.UUID) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading item")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting item")
	}

	s.activity.Record(ctx, &actor, "Deleted item", item.ItemName)
	return nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	return categories, nil
}

var csvHeader = []string{"item_name", "description", "category", "stock", "min_stock", "price", "supplier", "last_updated"}

// ExportCSV streams the filtered inventory as CSV.
func (s *service) ExportCSV(ctx context.Context, actor uuid.UUID, filter ListFilter, w io.Writer) error {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing inventory")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing csv header")
	}
	for i := range items {
		item := &items[i]
		record := []string{
			item.ItemName,
			item.Description,
			item.Category,
			strconv.Itoa(item.Stock),
			strconv.Itoa(item.MinStock),
			item.Price.StringFixed(2),
			item.Supplier,
			item.LastUpdated.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing csv row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flushing csv")
	}

	s.activity.Record(ctx, &actor, "Exported inventory", fmt.Sprintf("%d rows", len(items)))
	return nil
}
