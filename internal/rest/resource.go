package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/clinic-admin-client/apiclient"
)

// ListParams are the paging and search parameters understood by every list endpoint
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Extra  url.Values // endpoint-specific filters, e.g. customer_id
}

// Encode returns the query string, empty when no parameter is set.
// page comes first so paths read like "/products?page=1".
func (p ListParams) Encode() string {
	var parts []string
	if p.Page > 0 {
		parts = append(parts, "page="+strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		parts = append(parts, "limit="+strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		parts = append(parts, "search="+url.QueryEscape(p.Search))
	}
	if len(p.Extra) > 0 {
		parts = append(parts, p.Extra.Encode())
	}
	return strings.Join(parts, "&")
}

// Page is the paginated envelope returned by list endpoints
type Page[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Resource is a REST collection rooted at Path, e.g. "/customers".
type Resource[T any] struct {
	Client apiclient.Requester
	Path   string
}

func New[T any](client apiclient.Requester, path string) Resource[T] {
	return Resource[T]{Client: client, Path: "/" + strings.Trim(path, "/")}
}

// ItemPath returns the path of one entity, optionally with sub-resource segments
func (r Resource[T]) ItemPath(id any, segments ...string) string {
	p := fmt.Sprintf("%s/%v", r.Path, id)
	for _, s := range segments {
		p += "/" + strings.Trim(s, "/")
	}
	return p
}

// ListPath returns the collection path with params encoded
func (r Resource[T]) ListPath(params ListParams) string {
	if q := params.Encode(); q != "" {
		return r.Path + "?" + q
	}
	return r.Path
}

func (r Resource[T]) List(ctx context.Context, params ListParams) (*Page[T], error) {
	var page Page[T]
	if err := r.Client.Get(ctx, r.ListPath(params), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (r Resource[T]) Get(ctx context.Context, id any) (*T, error) {
	var item T
	if err := r.Client.Get(ctx, r.ItemPath(id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r Resource[T]) Create(ctx context.Context, in any) (*T, error) {
	var item T
	if err := r.Client.Post(ctx, r.Path, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update replaces the entity (PUT)
func (r Resource[T]) Update(ctx context.Context, id any, in any) (*T, error) {
	var item T
	if err := r.Client.Put(ctx, r.ItemPath(id), in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Patch partially updates the entity
func (r Resource[T]) Patch(ctx context.Context, id any, in any) (*T, error) {
	var item T
	if err := r.Client.Patch(ctx, r.ItemPath(id), in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r Resource[T]) Delete(ctx context.Context, id any) error {
	return r.Client.Delete(ctx, r.ItemPath(id), nil)
}
