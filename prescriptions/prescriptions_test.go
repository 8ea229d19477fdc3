package prescriptions_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/clinic-admin-client/apiclient/requesterfake"
	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
	"github.com/jrsteele09/clinic-admin-client/internal/rest"
	"github.com/jrsteele09/clinic-admin-client/prescriptions"
	"github.com/stretchr/testify/require"
)

func newPrescription(items ...prescriptions.Item) prescriptions.Prescription {
	return prescriptions.Prescription{ConsultationID: 10, CustomerID: 5, DoctorID: 2, Items: items}
}

func TestHTTPRepo_CreateProductPrescription(t *testing.T) {
	fake := requesterfake.NewFakeRequester().
		Respond(http.MethodPost, "/prescriptions/product", prescriptions.Prescription{ID: 1, Type: prescriptions.TypeProduct})
	repo := prescriptions.NewHTTPRepo(fake)

	p, err := repo.CreateProductPrescription(context.Background(), newPrescription(prescriptions.Item{ItemID: 7, Quantity: 2}))
	require.NoError(t, err)
	require.Equal(t, prescriptions.TypeProduct, p.Type)

	sent := fake.LastCall().Body.(prescriptions.Prescription)
	require.Equal(t, prescriptions.TypeProduct, sent.Type)
}

func TestHTTPRepo_CreateServicePrescription(t *testing.T) {
	fake := requesterfake.NewFakeRequester()
	repo := prescriptions.NewHTTPRepo(fake)

	_, err := repo.CreateServicePrescription(context.Background(), newPrescription(prescriptions.Item{ItemID: 3, Quantity: 1}))
	require.NoError(t, err)
	require.Equal(t, "/prescriptions/service", fake.LastCall().Path)
}

func TestHTTPRepo_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		in      prescriptions.Prescription
		wantErr error
	}{
		{"no items", newPrescription(), ierrors.ErrInvalidRequest},
		{"zero quantity", newPrescription(prescriptions.Item{ItemID: 1}), ierrors.ErrInvalidRequest},
		{"negative quantity", newPrescription(prescriptions.Item{ItemID: 1, Quantity: -2}), ierrors.ErrInvalidRequest},
		{"missing item id", newPrescription(prescriptions.Item{Quantity: 1}), ierrors.ErrInvalidRequest},
		{"missing doctor", prescriptions.Prescription{ConsultationID: 10, CustomerID: 5, Items: []prescriptions.Item{{ItemID: 1, Quantity: 1}}}, ierrors.ErrNoUserID},
		{"missing consultation", prescriptions.Prescription{CustomerID: 5, DoctorID: 2, Items: []prescriptions.Item{{ItemID: 1, Quantity: 1}}}, ierrors.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := requesterfake.NewFakeRequester()
			repo := prescriptions.NewHTTPRepo(fake)

			_, err := repo.CreateServicePrescription(context.Background(), tt.in)
			require.ErrorIs(t, err, tt.wantErr)
			require.Empty(t, fake.Calls())
		})
	}
}

func TestHTTPRepo_ListByConsultation(t *testing.T) {
	fake := requesterfake.NewFakeRequester().
		Respond(http.MethodGet, "/prescriptions?consultation_id=10", rest.Page[prescriptions.Prescription]{
			Data: []prescriptions.Prescription{{ID: 1}, {ID: 2}},
		})
	repo := prescriptions.NewHTTPRepo(fake)

	out, err := repo.ListByConsultation(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, out, 2)

	_, err = repo.ListByConsultation(context.Background(), 0)
	require.ErrorIs(t, err, ierrors.ErrInvalidRequest)
}

func TestPrescription_ValidateReportsField(t *testing.T) {
	p := newPrescription(prescriptions.Item{ItemID: 1, Quantity: 1}, prescriptions.Item{ItemID: 2})
	p.Type = prescriptions.TypeProduct
	err := p.Validate()
	require.ErrorIs(t, err, ierrors.ErrInvalidRequest)
	require.ErrorContains(t, err, "items[1].quantity must be greater than 0")

	p = newPrescription(prescriptions.Item{ItemID: 1, Quantity: 1})
	p.Type = "injection"
	require.ErrorIs(t, p.Validate(), ierrors.ErrInvalidRequest)
}
