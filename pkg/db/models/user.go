package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/openwims/wims-backend/pkg/enums"
)

// User represents an account able to sign in to the dashboard.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Username     string         `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Role         enums.UserRole `gorm:"type:text;not null;default:user"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
}
