package products

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/jrsteele09/clinic-admin-client/apiclient"
	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
	"github.com/jrsteele09/clinic-admin-client/internal/rest"
	"github.com/jrsteele09/clinic-admin-client/internal/validation"
)

type Repo interface {
	List(ctx context.Context, params rest.ListParams) (*rest.Page[Product], error)
	Get(ctx context.Context, id int) (*Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, id int, p Product) (*Product, error)
	Delete(ctx context.Context, id int) error
	UploadImage(ctx context.Context, id int, filename string, image io.Reader) (*Product, error)
	AdjustStock(ctx context.Context, id int, delta int, reason string) (*Product, error)
	LowStock(ctx context.Context, threshold int) ([]Product, error)
}

var _ Repo = (*HTTPRepo)(nil)

type HTTPRepo struct {
	rest.Resource[Product]
}

func NewHTTPRepo(client apiclient.Requester) *HTTPRepo {
	return &HTTPRepo{Resource: rest.New[Product](client, "/products")}
}

func (r *HTTPRepo) Get(ctx context.Context, id int) (*Product, error) {
	return r.Resource.Get(ctx, id)
}

func (r *HTTPRepo) Create(ctx context.Context, p Product) (*Product, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	return r.Resource.Create(ctx, p)
}

func (r *HTTPRepo) Update(ctx context.Context, id int, p Product) (*Product, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	return r.Resource.Update(ctx, id, p)
}

func (r *HTTPRepo) Delete(ctx context.Context, id int) error {
	return r.Resource.Delete(ctx, id)
}

// UploadImage sends the product photo as the multipart "image" field
func (r *HTTPRepo) UploadImage(ctx context.Context, id int, filename string, image io.Reader) (*Product, error) {
	if image == nil {
		return nil, fmt.Errorf("%w: image is required", ierrors.ErrInvalidRequest)
	}
	body := apiclient.NewMultipart().AddFile("image", filename, image)
	var p Product
	if err := r.Client.Post(ctx, r.ItemPath(id, "image"), body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *HTTPRepo) AdjustStock(ctx context.Context, id int, delta int, reason string) (*Product, error) {
	adj := StockAdjustment{Delta: delta, Reason: reason}
	if err := validation.Struct(adj); err != nil {
		return nil, err
	}
	var p Product
	if err := r.Client.Patch(ctx, r.ItemPath(id, "stock"), adj, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// LowStock lists products whose stock is at or below threshold
func (r *HTTPRepo) LowStock(ctx context.Context, threshold int) ([]Product, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: threshold must not be negative", ierrors.ErrInvalidRequest)
	}
	q := url.Values{"threshold": {strconv.Itoa(threshold)}}
	var out []Product
	if err := r.Client.Get(ctx, r.Path+"/low-stock?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}
