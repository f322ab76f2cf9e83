package models

import "github.com/google/uuid"

// Supplier is a vendor record. Suppliers are created once and never mutated.
type Supplier struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	ContactPerson string    `gorm:"column:contact_person"`
	Email         string    `gorm:"column:email"`
	Phone         string    `gorm:"column:phone"`
	LeadTimeDays  int       `gorm:"column:lead_time_days"`
	Rating        int       `gorm:"column:rating;check:rating >= 1 AND rating <= 5"`
}
