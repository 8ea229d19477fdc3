package validation_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
	"github.com/jrsteele09/clinic-admin-client/internal/validation"
	"github.com/stretchr/testify/require"
)

var errColour = ierrors.ErrInvalidRole

func init() {
	validation.Register("colour", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "red"
	}, errColour)
}

type line struct {
	Qty int `json:"qty" validate:"gt=0"`
}

type order struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"omitempty,email"`
	DoctorID int    `json:"doctor_id" validate:"user_id"`
	Price    int    `json:"price" validate:"gte=0"`
	Colour   string `json:"colour" validate:"omitempty,colour"`
	Lines    []line `json:"lines" validate:"min=1,dive"`
}

func validOrder() order {
	return order{Name: "Ana", DoctorID: 1, Lines: []line{{Qty: 1}}}
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *order)
		wantErr error
		wantMsg string
	}{
		{"valid", func(o *order) {}, nil, ""},
		{"blank name", func(o *order) { o.Name = "   " }, ierrors.ErrInvalidRequest, "name is required"},
		{"bad email", func(o *order) { o.Email = "ana" }, ierrors.ErrInvalidRequest, "email must be a valid email address"},
		{"missing doctor", func(o *order) { o.DoctorID = 0 }, ierrors.ErrNoUserID, "doctor_id is required"},
		{"negative price", func(o *order) { o.Price = -1 }, ierrors.ErrInvalidRequest, "price must not be less than 0"},
		{"custom tag sentinel", func(o *order) { o.Colour = "blue" }, errColour, "colour is invalid (blue)"},
		{"no lines", func(o *order) { o.Lines = nil }, ierrors.ErrInvalidRequest, "lines needs at least 1 entries"},
		{"dive", func(o *order) { o.Lines = []line{{Qty: 1}, {Qty: 0}} }, ierrors.ErrInvalidRequest, "lines[1].qty must be greater than 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOrder()
			tt.mutate(&o)

			err := validation.Struct(o)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorContains(t, err, tt.wantMsg)
		})
	}
}
