package users

import (
	"context"
	"fmt"

	"github.com/jrsteele09/clinic-admin-client/apiclient"
	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
	"github.com/jrsteele09/clinic-admin-client/internal/rest"
)

var _ Repo = (*HTTPRepo)(nil)

// HTTPRepo manages staff accounts through the admin API
type HTTPRepo struct {
	rest.Resource[User]
}

func NewHTTPRepo(client apiclient.Requester) *HTTPRepo {
	return &HTTPRepo{Resource: rest.New[User](client, "/users")}
}

func (r *HTTPRepo) Get(ctx context.Context, id int) (*User, error) {
	return r.Resource.Get(ctx, id)
}

// Create validates the account, including password strength, before sending it
func (r *HTTPRepo) Create(ctx context.Context, user NewUser) (*User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return r.Resource.Create(ctx, user)
}

func (r *HTTPRepo) Update(ctx context.Context, id int, user User) (*User, error) {
	return r.Resource.Update(ctx, id, user)
}

func (r *HTTPRepo) SetRole(ctx context.Context, id int, role RoleType) (*User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ierrors.ErrInvalidRole, role)
	}
	var u User
	if err := r.Client.Patch(ctx, r.ItemPath(id, "role"), map[string]RoleType{"role": role}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *HTTPRepo) SetActive(ctx context.Context, id int, active bool) (*User, error) {
	return r.Resource.Patch(ctx, id, map[string]bool{"is_active": active})
}

func (r *HTTPRepo) ResetPassword(ctx context.Context, id int, password string) error {
	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}
	return r.Client.Post(ctx, r.ItemPath(id, "reset-password"), map[string]string{"password": password}, nil)
}

func (r *HTTPRepo) Delete(ctx context.Context, id int) error {
	return r.Resource.Delete(ctx, id)
}
