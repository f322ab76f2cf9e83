package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEntry is one append-only audit record. Rows are never updated or
// deleted.
type ActivityEntry struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID `gorm:"column:user_id;type:uuid;index"`
	Action    string     `gorm:"column:action;not null"`
	Details   string     `gorm:"column:details"`
	Timestamp time.Time  `gorm:"column:timestamp;autoCreateTime"`
}

// TableName keeps the table name inherited from the original schema.
func (ActivityEntry) TableName() string {
	return "activity_log"
}
