package consultations

import (
	"time"
)

// Consultation is a doctor's session with a customer
type Consultation struct {
	ID          int       `json:"id,omitempty"`
	CustomerID  int       `json:"customer_id" validate:"gt=0"`
	DoctorID    int       `json:"doctor_id" validate:"user_id"`
	Complaint   string    `json:"complaint,omitempty"`
	Diagnosis   string    `json:"diagnosis,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	ConsultedAt time.Time `json:"consulted_at,omitempty"`
}
