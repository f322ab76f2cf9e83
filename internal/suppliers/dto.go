package suppliers

import (
	"github.com/google/uuid"

	"github.com/openwims/wims-backend/pkg/db/models"
)

// SupplierDTO is the transport shape of a supplier row.
type SupplierDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	LeadTimeDays  int       `json:"lead_time_days"`
	Rating        int       `json:"rating"`
}

// CreateSupplierDTO holds the fields accepted when adding a supplier.
type CreateSupplierDTO struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	LeadTimeDays  int
	Rating        int
}

func FromModel(m *models.Supplier) SupplierDTO {
	return SupplierDTO{
		ID:            m.ID,
		Name:          m.Name,
		ContactPerson: m.ContactPerson,
		Email:         m.Email,
		Phone:         m.Phone,
		LeadTimeDays:  m.LeadTimeDays,
		Rating:        m.Rating,
	}
}

func (c CreateSupplierDTO) ToModel() *models.Supplier {
	rating := c.Rating
	if rating == 0 {
		rating = 3
	}
	return &models.Supplier{
		ID:            uuid.New(),
		Name:          c.Name,
		ContactPerson: c.ContactPerson,
		Email:         c.Email,
		Phone:         c.Phone,
		LeadTimeDays:  c.LeadTimeDays,
		Rating:        rating,
	}
}
