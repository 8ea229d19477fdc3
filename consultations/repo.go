package consultations

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"strconv"

	"github.com/jrsteele09/clinic-admin-client/apiclient"
	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
	"github.com/jrsteele09/clinic-admin-client/internal/rest"
	"github.com/jrsteele09/clinic-admin-client/internal/validation"
)

type Repo interface {
	List(ctx context.Context, params rest.ListParams) (*rest.Page[Consultation], error)
	ListByCustomer(ctx context.Context, customerID int, params rest.ListParams) (*rest.Page[Consultation], error)
	Get(ctx context.Context, id int) (*Consultation, error)
	Create(ctx context.Context, c Consultation) (*Consultation, error)
	Update(ctx context.Context, id int, c Consultation) (*Consultation, error)
	Delete(ctx context.Context, id int) error
}

var _ Repo = (*HTTPRepo)(nil)

type HTTPRepo struct {
	rest.Resource[Consultation]
}

func NewHTTPRepo(client apiclient.Requester) *HTTPRepo {
	return &HTTPRepo{Resource: rest.New[Consultation](client, "/consultations")}
}

// ListByCustomer lists one customer's consultation history
func (r *HTTPRepo) ListByCustomer(ctx context.Context, customerID int, params rest.ListParams) (*rest.Page[Consultation], error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer id is required", ierrors.ErrInvalidRequest)
	}
	params.Extra = maps.Clone(params.Extra)
	if params.Extra == nil {
		params.Extra = url.Values{}
	}
	params.Extra.Set("customer_id", strconv.Itoa(customerID))
	return r.Resource.List(ctx, params)
}

func (r *HTTPRepo) Get(ctx context.Context, id int) (*Consultation, error) {
	return r.Resource.Get(ctx, id)
}

// Create records a consultation. The doctor must be set explicitly.
func (r *HTTPRepo) Create(ctx context.Context, c Consultation) (*Consultation, error) {
	if err := validation.Struct(c); err != nil {
		return nil, err
	}
	return r.Resource.Create(ctx, c)
}

func (r *HTTPRepo) Update(ctx context.Context, id int, c Consultation) (*Consultation, error) {
	if err := validation.Struct(c); err != nil {
		return nil, err
	}
	return r.Resource.Update(ctx, id, c)
}

func (r *HTTPRepo) Delete(ctx context.Context, id int) error {
	return r.Resource.Delete(ctx, id)
}
