package api

import (
	"context"

	"golang.org/x/sync/errgroup"

	"blogctl/internal/blog"
)

// DashboardAPI computes the admin console totals from the list endpoints.
type DashboardAPI struct {
	api *API
}

// Stats issues the count queries concurrently. Each reads only the
// pagination total of a one-item page. The first failure cancels the rest.
func (d *DashboardAPI) Stats(ctx context.Context) (*blog.DashboardStats, error) {
	var s blog.DashboardStats
	one := ListParams{Limit: 1}
	g, ctx := errgroup.WithContext(ctx)

	count := func(dst *int, fetch func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := fetch(ctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	total := func(p ListParams) func(context.Context) (int, error) {
		return func(ctx context.Context) (int, error) {
			page, err := d.api.Posts.List(ctx, p)
			if err != nil {
				return 0, err
			}
			return page.Pagination.Total, nil
		}
	}

	count(&s.TotalPosts, total(one))
	count(&s.PublishedPosts, total(ListParams{Limit: 1, Status: string(blog.PostPublished)}))
	count(&s.DraftPosts, total(ListParams{Limit: 1, Status: string(blog.PostDraft)}))
	count(&s.TotalMedia, func(ctx context.Context) (int, error) {
		page, err := d.api.Media.List(ctx, one)
		if err != nil {
			return 0, err
		}
		return page.Pagination.Total, nil
	})
	count(&s.TotalUsers, func(ctx context.Context) (int, error) {
		page, err := d.api.Users.List(ctx, one)
		if err != nil {
			return 0, err
		}
		return page.Pagination.Total, nil
	})
	count(&s.TotalCategories, func(ctx context.Context) (int, error) {
		page, err := d.api.Categories.List(ctx, one)
		if err != nil {
			return 0, err
		}
		return page.Pagination.Total, nil
	})
	count(&s.TotalTags, func(ctx context.Context) (int, error) {
		page, err := d.api.Tags.List(ctx, one)
		if err != nil {
			return 0, err
		}
		return page.Pagination.Total, nil
	})
	count(&s.PendingComments, func(ctx context.Context) (int, error) {
		page, err := d.api.Comments.List(ctx, ListParams{Limit: 1, Status: string(blog.CommentPending)})
		if err != nil {
			return 0, err
		}
		return page.Pagination.Total, nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}
