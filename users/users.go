package users

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
	"github.com/jrsteele09/clinic-admin-client/internal/validation"
)

// RoleType is a staff role in the clinic
type RoleType string

const (
	RoleAdmin        RoleType = "admin"        // Manages users, roles and inventory
	RoleDoctor       RoleType = "doctor"       // Runs consultations and writes prescriptions
	RoleReceptionist RoleType = "receptionist" // Registers customers and books consultations
	RolePharmacist   RoleType = "pharmacist"   // Dispenses product prescriptions, manages stock
)

var roles = []RoleType{RoleAdmin, RoleDoctor, RoleReceptionist, RolePharmacist}

func init() {
	validation.Register("staff_role", func(fl validator.FieldLevel) bool {
		return RoleType(fl.Field().String()).Valid()
	}, ierrors.ErrInvalidRole)
}

func (r RoleType) Valid() bool {
	for _, role := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// ParseRole accepts a role name in any case
func ParseRole(s string) (RoleType, error) {
	r := RoleType(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ierrors.ErrInvalidRole, s)
	}
	return r, nil
}

type User struct {
	ID        int       `json:"id,omitempty"`         // Unique identifier for the user
	FullName  string    `json:"full_name,omitempty"`  // Display name
	Email     string    `json:"email,omitempty"`      // Login email
	Username  string    `json:"username,omitempty"`   // Optional login name
	Phone     string    `json:"phone,omitempty"`      // Contact number
	Role      RoleType  `json:"role,omitempty"`       // Staff role
	Active    bool      `json:"is_active,omitempty"`  // Inactive users cannot log in
	CreatedAt time.Time `json:"created_at,omitempty"` // Date and time the account was created
	LastLogin time.Time `json:"last_login,omitempty"` // Last time the user logged in
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanPrescribe reports whether the user may create prescriptions
func (u *User) CanPrescribe() bool {
	return u.Role == RoleDoctor
}

// NewUser is the payload for creating a staff account
type NewUser struct {
	FullName string   `json:"full_name" validate:"notblank"`
	Email    string   `json:"email" validate:"required,email"`
	Username string   `json:"username,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Role     RoleType `json:"role" validate:"staff_role"`
	Password string   `json:"password"`
}

// Validate checks the payload fields, then the password strength
func (n NewUser) Validate() error {
	if err := validation.Struct(n); err != nil {
		return err
	}
	return ValidatePasswordStrength(n.Password)
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters long", ierrors.ErrWeakPassword)
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("%w: must contain at least one uppercase letter", ierrors.ErrWeakPassword)
	}
	if !hasLower {
		return fmt.Errorf("%w: must contain at least one lowercase letter", ierrors.ErrWeakPassword)
	}
	if !hasNumber {
		return fmt.Errorf("%w: must contain at least one number", ierrors.ErrWeakPassword)
	}

	return nil
}
