package activity

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openwims/wims-backend/pkg/db/models"
	"github.com/openwims/wims-backend/pkg/pagination"
)

// Repository persists and queries audit log entries.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an activity repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an audit entry.
func (r *Repository) Create(ctx context.Context, entry *models.ActivityEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreateTx inserts an audit entry inside the supplied transaction so the
// entry commits or rolls back together with the operation it describes.
func (r *Repository) CreateTx(ctx context.Context, tx *gorm.DB, entry *models.ActivityEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return tx.WithContext(ctx).Create(entry).Error
}

// ListFilter narrows the audit trail query.
type ListFilter struct {
	UserID *uuid.UUID
	Action string
}

// List returns audit entries newest first, keyset-paginated.
func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.ActivityEntry, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.ActivityEntry{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where(
			"(timestamp < ?) OR (timestamp = ? AND id < ?)",
			cursor.Timestamp, cursor.Timestamp, cursor.ID,
		)
	}

	var rows []models.ActivityEntry
	if err := query.
		Order("timestamp DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{Timestamp: last.Timestamp, ID: last.ID})
	}
	return rows, next, nil
}
