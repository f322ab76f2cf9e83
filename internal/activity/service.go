package activity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openwims/wims-backend/pkg/db/models"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
	"github.com/openwims/wims-backend/pkg/logger"
	"github.com/openwims/wims-backend/pkg/pagination"
)

// Service records and lists audit trail entries.
type Service interface {
	Record(ctx context.Context, userID *uuid.UUID, action, details string)
	RecordTx(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, details string) error
	List(ctx context.Context, filter ListFilter, params pagination.Params) (*ListResponse, error)
}

type entryRepository interface {
	Create(ctx context.Context, entry *models.ActivityEntry) error
	CreateTx(ctx context.Context, tx *gorm.DB, entry *models.ActivityEntry) error
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.ActivityEntry, string, error)
}

type service struct {
	repo entryRepository
	logg *logger.Logger
}

// ServiceParams bundles the dependencies required to build an activity service.
type ServiceParams struct {
	Repo   entryRepository
	Logger *logger.Logger
}

// NewService constructs the audit trail service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("activity repository is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

// Record writes an audit entry outside of any transaction. Failures are
// logged but never bubble up so they cannot fail the operation being audited.
func (s *service) Record(ctx context.Context, userID *uuid.UUID, action, details string) {
	entry := &models.ActivityEntry{UserID: userID, Action: action, Details: details}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "action", action), "recording audit entry", err)
	}
}

// RecordTx writes an audit entry inside the caller's transaction. The entry
// only becomes visible if the surrounding transaction commits.
func (s *service) RecordTx(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, details string) error {
	entry := &models.ActivityEntry{UserID: userID, Action: action, Details: details}
	if err := s.repo.CreateTx(ctx, tx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recording audit entry")
	}
	return nil
}

// List returns the audit trail page described by the filter and cursor.
func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (*ListResponse, error) {
	rows, next, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing audit entries")
	}

	entries := make([]EntryDTO, 0, len(rows))
	for i := range rows {
		entries = append(entries, FromModel(&rows[i]))
	}
	return &ListResponse{Entries: entries, NextCursor: next}, nil
}
