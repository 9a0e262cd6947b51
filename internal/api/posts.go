package api

import (
	"context"

	"blogctl/internal/apiclient"
	"blogctl/internal/blog"
)

type PostsAPI struct {
	client *apiclient.Client
}

// List returns one page of posts filtered by status, search, category and tag.
func (p *PostsAPI) List(ctx context.Context, params ListParams) (*blog.Page[blog.Post], error) {
	return list[blog.Post](ctx, p.client, "/v1/posts", params)
}

func (p *PostsAPI) GetByID(ctx context.Context, id string) (*blog.Post, error) {
	return get[blog.Post](ctx, p.client, "/v1/posts/id/"+seg(id))
}

func (p *PostsAPI) GetBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	return get[blog.Post](ctx, p.client, "/v1/posts/"+seg(slug))
}

func (p *PostsAPI) Create(ctx context.Context, in blog.PostCreateInput) (*blog.Post, error) {
	if in.Slug == "" {
		in.Slug = blog.DeriveSlug(in.Title)
	}
	if !blog.ValidSlug(in.Slug) {
		return nil, blog.ValidationError("invalid slug %q", in.Slug)
	}
	return create[blog.Post](ctx, p.client, "/v1/posts", in)
}

func (p *PostsAPI) Update(ctx context.Context, id string, in blog.PostUpdateInput) (*blog.Post, error) {
	if in.Slug != nil && !blog.ValidSlug(*in.Slug) {
		return nil, blog.ValidationError("invalid slug %q", *in.Slug)
	}
	return update[blog.Post](ctx, p.client, "/v1/posts/"+seg(id), in)
}

func (p *PostsAPI) Delete(ctx context.Context, id string) error {
	return p.client.Delete(ctx, "/v1/posts/"+seg(id), nil)
}
