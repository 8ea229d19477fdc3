package users

import (
	"context"

	"github.com/jrsteele09/clinic-admin-client/internal/rest"
)

type Repo interface {
	List(ctx context.Context, params rest.ListParams) (*rest.Page[User], error)
	Get(ctx context.Context, id int) (*User, error)
	Create(ctx context.Context, user NewUser) (*User, error)
	Update(ctx context.Context, id int, user User) (*User, error)
	SetRole(ctx context.Context, id int, role RoleType) (*User, error)
	SetActive(ctx context.Context, id int, active bool) (*User, error)
	ResetPassword(ctx context.Context, id int, password string) error
	Delete(ctx context.Context, id int) error
}
