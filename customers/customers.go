package customers

import (
	"time"

	"github.com/jrsteele09/clinic-admin-client/internal/utils"
)

type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
	GenderOther  Gender = "other"
)

type Customer struct {
	ID          int       `json:"id,omitempty"`
	FullName    string    `json:"full_name" validate:"notblank"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty" validate:"omitempty,email"`
	Gender      Gender    `json:"gender,omitempty" validate:"omitempty,oneof=female male other"`
	DateOfBirth string    `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Address     string    `json:"address,omitempty"`
	SkinType    string    `json:"skin_type,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Age returns the customer's age in whole years at now, or 0 when the date
// of birth is missing or malformed
func (c Customer) Age(now time.Time) int {
	dob, err := time.Parse(time.DateOnly, c.DateOfBirth)
	if err != nil {
		return 0
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || now.Month() == dob.Month() && now.Day() < dob.Day() {
		age--
	}
	return max(age, 0)
}

// Patch carries the fields to change; nil fields are left untouched
type Patch struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Address  *string `json:"address,omitempty"`
	SkinType *string `json:"skin_type,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// Apply returns a copy of c with the patch applied
func (c Customer) Apply(p Patch) Customer {
	c.FullName = utils.ValueOr(p.FullName, c.FullName)
	c.Phone = utils.ValueOr(p.Phone, c.Phone)
	c.Email = utils.ValueOr(p.Email, c.Email)
	c.Address = utils.ValueOr(p.Address, c.Address)
	c.SkinType = utils.ValueOr(p.SkinType, c.SkinType)
	c.Notes = utils.ValueOr(p.Notes, c.Notes)
	return c
}
