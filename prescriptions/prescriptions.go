package prescriptions

import (
	"time"

	"github.com/jrsteele09/clinic-admin-client/internal/validation"
)

// Type distinguishes treatment prescriptions from product prescriptions
type Type string

const (
	TypeService Type = "service"
	TypeProduct Type = "product"
)

// Item is one prescribed line. ItemID refers to a service or a product
// depending on the prescription type.
type Item struct {
	ItemID       int    `json:"item_id" validate:"gt=0"`
	Quantity     int    `json:"quantity" validate:"gt=0"`
	Instructions string `json:"instructions,omitempty"`
}

type Prescription struct {
	ID             int       `json:"id,omitempty"`
	ConsultationID int       `json:"consultation_id" validate:"gt=0"`
	CustomerID     int       `json:"customer_id" validate:"gt=0"`
	DoctorID       int       `json:"doctor_id" validate:"user_id"`
	Type           Type      `json:"type" validate:"oneof=service product"`
	Items          []Item    `json:"items" validate:"min=1,dive"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// Validate checks the prescription before it is sent
func (p *Prescription) Validate() error {
	return validation.Struct(p)
}
