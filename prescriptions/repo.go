package prescriptions

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jrsteele09/clinic-admin-client/apiclient"
	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
	"github.com/jrsteele09/clinic-admin-client/internal/rest"
)

type Repo interface {
	List(ctx context.Context, params rest.ListParams) (*rest.Page[Prescription], error)
	ListByConsultation(ctx context.Context, consultationID int) ([]Prescription, error)
	Get(ctx context.Context, id int) (*Prescription, error)
	CreateServicePrescription(ctx context.Context, p Prescription) (*Prescription, error)
	CreateProductPrescription(ctx context.Context, p Prescription) (*Prescription, error)
	Delete(ctx context.Context, id int) error
}

var _ Repo = (*HTTPRepo)(nil)

type HTTPRepo struct {
	rest.Resource[Prescription]
}

func NewHTTPRepo(client apiclient.Requester) *HTTPRepo {
	return &HTTPRepo{Resource: rest.New[Prescription](client, "/prescriptions")}
}

func (r *HTTPRepo) Get(ctx context.Context, id int) (*Prescription, error) {
	return r.Resource.Get(ctx, id)
}

func (r *HTTPRepo) ListByConsultation(ctx context.Context, consultationID int) ([]Prescription, error) {
	if consultationID <= 0 {
		return nil, fmt.Errorf("%w: consultation id is required", ierrors.ErrInvalidRequest)
	}
	page, err := r.Resource.List(ctx, rest.ListParams{
		Extra: url.Values{"consultation_id": {strconv.Itoa(consultationID)}},
	})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

func (r *HTTPRepo) CreateServicePrescription(ctx context.Context, p Prescription) (*Prescription, error) {
	return r.create(ctx, TypeService, p)
}

func (r *HTTPRepo) CreateProductPrescription(ctx context.Context, p Prescription) (*Prescription, error) {
	return r.create(ctx, TypeProduct, p)
}

func (r *HTTPRepo) create(ctx context.Context, typ Type, p Prescription) (*Prescription, error) {
	p.Type = typ
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var out Prescription
	if err := r.Client.Post(ctx, r.Path+"/"+string(typ), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPRepo) Delete(ctx context.Context, id int) error {
	return r.Resource.Delete(ctx, id)
}
