package activity

import (
	"time"

	"github.com/google/uuid"

	"github.com/openwims/wims-backend/pkg/db/models"
)

// EntryDTO is the transport shape of a single audit entry.
type EntryDTO struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Action    string     `json:"action"`
	Details   string     `json:"details,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// ListResponse carries one page of the audit trail.
type ListResponse struct {
	Entries    []EntryDTO `json:"entries"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

func FromModel(e *models.ActivityEntry) EntryDTO {
	return EntryDTO{
		ID:        e.ID,
		UserID:    e.UserID,
		Action:    e.Action,
		Details:   e.Details,
		Timestamp: e.Timestamp,
	}
}
