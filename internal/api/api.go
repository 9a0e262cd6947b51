// Package api maps each blog resource onto REST calls made through the
// shared apiclient.Client. Modules hold no state beyond the client.
package api

import (
	"context"
	"net/url"
	"strconv"

	"blogctl/internal/apiclient"
	"blogctl/internal/blog"
)

// API groups every resource module behind one client.
type API struct {
	Auth       *AuthAPI
	Posts      *PostsAPI
	Categories *CategoriesAPI
	Tags       *TagsAPI
	Users      *UsersAPI
	Media      *MediaAPI
	Comments   *CommentsAPI
	Dashboard  *DashboardAPI
}

// New builds every resource module on top of c.
func New(c *apiclient.Client) *API {
	a := &API{
		Auth:       NewAuthAPI(c),
		Posts:      &PostsAPI{client: c},
		Categories: &CategoriesAPI{client: c, resource: "categories"},
		Tags:       &TagsAPI{client: c, resource: "tags"},
		Users:      &UsersAPI{client: c},
		Media:      &MediaAPI{client: c},
		Comments:   &CommentsAPI{client: c},
	}
	a.Dashboard = &DashboardAPI{api: a}
	return a
}

// ListParams are the paging and filter options shared by list endpoints.
// Zero values are not sent.
type ListParams struct {
	Page     int
	Limit    int
	Status   string
	Search   string
	Category string // category slug, posts only
	Tag      string // tag slug, posts only
	PostID   string // comments only
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	set := func(key, v string) {
		if v != "" {
			q.Set(key, v)
		}
	}
	set("status", p.Status)
	set("search", p.Search)
	set("category", p.Category)
	set("tag", p.Tag)
	set("postId", p.PostID)
	return q
}

func list[T any](ctx context.Context, c *apiclient.Client, path string, params ListParams) (*blog.Page[T], error) {
	var page blog.Page[T]
	if err := c.Get(ctx, path, &page, apiclient.WithQuery(params.values())); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return &page, nil
}

func get[T any](ctx context.Context, c *apiclient.Client, path string) (*T, error) {
	var item blog.Item[T]
	if err := c.Get(ctx, path, &item); err != nil {
		return nil, err
	}
	return &item.Data, nil
}

func create[T any](ctx context.Context, c *apiclient.Client, path string, body any) (*T, error) {
	var item blog.Item[T]
	if err := c.Post(ctx, path, body, &item); err != nil {
		return nil, err
	}
	return &item.Data, nil
}

func update[T any](ctx context.Context, c *apiclient.Client, path string, body any) (*T, error) {
	var item blog.Item[T]
	if err := c.Put(ctx, path, body, &item); err != nil {
		return nil, err
	}
	return &item.Data, nil
}

func seg(s string) string {
	return url.PathEscape(s)
}
