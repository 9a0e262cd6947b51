package api

import (
	"context"

	"blogctl/internal/apiclient"
	"blogctl/internal/blog"
)

type UsersAPI struct {
	client *apiclient.Client
}

func (u *UsersAPI) List(ctx context.Context, params ListParams) (*blog.Page[blog.User], error) {
	return list[blog.User](ctx, u.client, "/v1/users", params)
}

func (u *UsersAPI) GetByID(ctx context.Context, id string) (*blog.User, error) {
	return get[blog.User](ctx, u.client, "/v1/users/"+seg(id))
}

func (u *UsersAPI) Create(ctx context.Context, in blog.UserCreateInput) (*blog.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, blog.ValidationError("email and password are required")
	}
	if in.Role != "" && !in.Role.Valid() {
		return nil, blog.ValidationError("unknown role %q", in.Role)
	}
	return create[blog.User](ctx, u.client, "/v1/users", in)
}

// Update never sends an email: the server rejects email changes.
func (u *UsersAPI) Update(ctx context.Context, id string, in blog.UserUpdateInput) (*blog.User, error) {
	if in.Role != nil && !in.Role.Valid() {
		return nil, blog.ValidationError("unknown role %q", *in.Role)
	}
	return update[blog.User](ctx, u.client, "/v1/users/"+seg(id), in)
}

func (u *UsersAPI) Delete(ctx context.Context, id string) error {
	return u.client.Delete(ctx, "/v1/users/"+seg(id), nil)
}
