package services

import (
	"context"
	"time"

	"github.com/jrsteele09/clinic-admin-client/apiclient"
	"github.com/jrsteele09/clinic-admin-client/internal/rest"
	"github.com/jrsteele09/clinic-admin-client/internal/validation"
)

// Service is a treatment offered by the clinic, e.g. a facial or a peel
type Service struct {
	ID              int     `json:"id,omitempty"`
	Name            string  `json:"name" validate:"notblank"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price" validate:"gte=0"`
	DurationMinutes int     `json:"duration_minutes,omitempty" validate:"gte=0"`
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

type Repo interface {
	List(ctx context.Context, params rest.ListParams) (*rest.Page[Service], error)
	Get(ctx context.Context, id int) (*Service, error)
	Create(ctx context.Context, s Service) (*Service, error)
	Update(ctx context.Context, id int, s Service) (*Service, error)
	Delete(ctx context.Context, id int) error
}

var _ Repo = (*HTTPRepo)(nil)

type HTTPRepo struct {
	rest.Resource[Service]
}

func NewHTTPRepo(client apiclient.Requester) *HTTPRepo {
	return &HTTPRepo{Resource: rest.New[Service](client, "/services")}
}

func (r *HTTPRepo) Get(ctx context.Context, id int) (*Service, error) {
	return r.Resource.Get(ctx, id)
}

func (r *HTTPRepo) Create(ctx context.Context, s Service) (*Service, error) {
	if err := validation.Struct(s); err != nil {
		return nil, err
	}
	return r.Resource.Create(ctx, s)
}

func (r *HTTPRepo) Update(ctx context.Context, id int, s Service) (*Service, error) {
	if err := validation.Struct(s); err != nil {
		return nil, err
	}
	return r.Resource.Update(ctx, id, s)
}

func (r *HTTPRepo) Delete(ctx context.Context, id int) error {
	return r.Resource.Delete(ctx, id)
}
