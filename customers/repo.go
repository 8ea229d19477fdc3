package customers

import (
	"context"

	"github.com/jrsteele09/clinic-admin-client/apiclient"
	"github.com/jrsteele09/clinic-admin-client/internal/rest"
	"github.com/jrsteele09/clinic-admin-client/internal/validation"
)

type Repo interface {
	List(ctx context.Context, params rest.ListParams) (*rest.Page[Customer], error)
	Get(ctx context.Context, id int) (*Customer, error)
	Create(ctx context.Context, c Customer) (*Customer, error)
	Update(ctx context.Context, id int, c Customer) (*Customer, error)
	Patch(ctx context.Context, id int, p Patch) (*Customer, error)
	Delete(ctx context.Context, id int) error
}

var _ Repo = (*HTTPRepo)(nil)

type HTTPRepo struct {
	rest.Resource[Customer]
}

func NewHTTPRepo(client apiclient.Requester) *HTTPRepo {
	return &HTTPRepo{Resource: rest.New[Customer](client, "/customers")}
}

func (r *HTTPRepo) Get(ctx context.Context, id int) (*Customer, error) {
	return r.Resource.Get(ctx, id)
}

func (r *HTTPRepo) Create(ctx context.Context, c Customer) (*Customer, error) {
	if err := validation.Struct(c); err != nil {
		return nil, err
	}
	return r.Resource.Create(ctx, c)
}

func (r *HTTPRepo) Update(ctx context.Context, id int, c Customer) (*Customer, error) {
	if err := validation.Struct(c); err != nil {
		return nil, err
	}
	return r.Resource.Update(ctx, id, c)
}

func (r *HTTPRepo) Patch(ctx context.Context, id int, p Patch) (*Customer, error) {
	return r.Resource.Patch(ctx, id, p)
}

func (r *HTTPRepo) Delete(ctx context.Context, id int) error {
	return r.Resource.Delete(ctx, id)
}
