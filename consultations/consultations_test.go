package consultations_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/jrsteele09/clinic-admin-client/apiclient/requesterfake"
	"github.com/jrsteele09/clinic-admin-client/consultations"
	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
	"github.com/jrsteele09/clinic-admin-client/internal/rest"
	"github.com/stretchr/testify/require"
)

func TestHTTPRepo_CreateRejectsMissingDoctor(t *testing.T) {
	fake := requesterfake.NewFakeRequester()
	repo := consultations.NewHTTPRepo(fake)

	_, err := repo.Create(context.Background(), consultations.Consultation{CustomerID: 5})
	require.ErrorIs(t, err, ierrors.ErrNoUserID)

	_, err = repo.Create(context.Background(), consultations.Consultation{DoctorID: 2})
	require.ErrorIs(t, err, ierrors.ErrInvalidRequest)
	require.Empty(t, fake.Calls())
}

func TestHTTPRepo_Create(t *testing.T) {
	fake := requesterfake.NewFakeRequester().
		Respond(http.MethodPost, "/consultations", consultations.Consultation{ID: 10, CustomerID: 5, DoctorID: 2, Diagnosis: "mild acne"})
	repo := consultations.NewHTTPRepo(fake)

	c, err := repo.Create(context.Background(), consultations.Consultation{CustomerID: 5, DoctorID: 2, Complaint: "breakouts"})
	require.NoError(t, err)
	require.Equal(t, 10, c.ID)
	require.Equal(t, "mild acne", c.Diagnosis)
}

func TestHTTPRepo_ListByCustomer(t *testing.T) {
	fake := requesterfake.NewFakeRequester().
		Respond(http.MethodGet, "/consultations?page=1&customer_id=5", rest.Page[consultations.Consultation]{
			Data:  []consultations.Consultation{{ID: 10, CustomerID: 5}, {ID: 11, CustomerID: 5}},
			Total: 2,
		})
	repo := consultations.NewHTTPRepo(fake)

	page, err := repo.ListByCustomer(context.Background(), 5, rest.ListParams{Page: 1})
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)

	_, err = repo.ListByCustomer(context.Background(), 0, rest.ListParams{})
	require.ErrorIs(t, err, ierrors.ErrInvalidRequest)
}

func TestHTTPRepo_ListByCustomerLeavesCallerFiltersUntouched(t *testing.T) {
	fake := requesterfake.NewFakeRequester()
	repo := consultations.NewHTTPRepo(fake)
	params := rest.ListParams{Extra: url.Values{"status": {"open"}}}

	_, err := repo.ListByCustomer(context.Background(), 5, params)
	require.NoError(t, err)

	require.Equal(t, url.Values{"status": {"open"}}, params.Extra)
	require.Equal(t, "/consultations?customer_id=5&status=open", fake.LastCall().Path)
}
