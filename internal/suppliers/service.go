package suppliers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openwims/wims-backend/pkg/db/models"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
)

// Service defines the behavior needed by the suppliers controller. Suppliers
// are append-only; there is no update or delete.
type Service interface {
	List(ctx context.Context) ([]SupplierDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*SupplierDTO, error)
	Create(ctx context.Context, actor uuid.UUID, dto CreateSupplierDTO) (*SupplierDTO, error)
}

type supplierRepository interface {
	Create(ctx context.Context, dto CreateSupplierDTO) (*models.Supplier, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	List(ctx context.Context) ([]models.Supplier, error)
}

type activityRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action, details string)
}

type service struct {
	repo     supplierRepository
	activity activityRecorder
}

// ServiceParams bundles the dependencies required to build a suppliers service.
type ServiceParams struct {
	Repo     supplierRepository
	Activity activityRecorder
}

// NewService constructs a suppliers service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("suppliers repository is required")
	}
	if params.Activity == nil {
		return nil, fmt.Errorf("activity recorder is required")
	}
	return &service{repo: params.Repo, activity: params.Activity}, nil
}

func (s *service) List(ctx context.Context) ([]SupplierDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing suppliers")
	}
	out := make([]SupplierDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*SupplierDTO, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading supplier")
	}
	dto := FromModel(supplier)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, actor uuid.UUID, dto CreateSupplierDTO) (*SupplierDTO, error) {
	if strings.TrimSpace(dto.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}
	if dto.Rating != 0 && (dto.Rating < 1 || dto.Rating > 5) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if dto.LeadTimeDays < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lead time must be at least 1 day")
	}

	supplier, err := s.repo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating supplier")
	}

	s.activity.Record(ctx, &actor, "Added supplier", supplier.Name)
	result := FromModel(supplier)
	return &result, nil
}
