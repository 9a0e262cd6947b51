package api

import (
	"context"

	"blogctl/internal/apiclient"
	"blogctl/internal/blog"
)

// TermsAPI serves the two taxonomy resources, which share one REST shape.
type TermsAPI[T any] struct {
	client   *apiclient.Client
	resource string
}

type (
	CategoriesAPI = TermsAPI[blog.Category]
	TagsAPI       = TermsAPI[blog.Tag]
)

func (a *TermsAPI[T]) path() string { return "/v1/" + a.resource }

func (a *TermsAPI[T]) List(ctx context.Context, params ListParams) (*blog.Page[T], error) {
	return list[T](ctx, a.client, a.path(), params)
}

// GetBySlug is the public lookup used by archive pages.
func (a *TermsAPI[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	return get[T](ctx, a.client, a.path()+"/"+seg(slug))
}

func (a *TermsAPI[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return get[T](ctx, a.client, a.path()+"/id/"+seg(id))
}

// Create derives the slug from the name when none is given and rejects an
// invalid slug before any request is made.
func (a *TermsAPI[T]) Create(ctx context.Context, in blog.TermInput) (*T, error) {
	if in.Name == "" {
		return nil, blog.ValidationError("name is required")
	}
	if in.Slug == "" {
		in.Slug = blog.DeriveSlug(in.Name)
	}
	if !blog.ValidSlug(in.Slug) {
		return nil, blog.ValidationError("invalid slug %q", in.Slug)
	}
	return create[T](ctx, a.client, a.path(), in)
}

func (a *TermsAPI[T]) Update(ctx context.Context, id string, in blog.TermUpdateInput) (*T, error) {
	if in.Slug != nil && !blog.ValidSlug(*in.Slug) {
		return nil, blog.ValidationError("invalid slug %q", *in.Slug)
	}
	return update[T](ctx, a.client, a.path()+"/"+seg(id), in)
}

func (a *TermsAPI[T]) Delete(ctx context.Context, id string) error {
	return a.client.Delete(ctx, a.path()+"/"+seg(id), nil)
}
