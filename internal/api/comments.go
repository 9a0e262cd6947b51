package api

import (
	"context"

	"blogctl/internal/apiclient"
	"blogctl/internal/blog"
)

type CommentsAPI struct {
	client *apiclient.Client
}

// ListForPost returns the approved comments of the post with the given slug.
func (c *CommentsAPI) ListForPost(ctx context.Context, slug string, params ListParams) (*blog.Page[blog.Comment], error) {
	return list[blog.Comment](ctx, c.client, "/v1/posts/"+seg(slug)+"/comments", params)
}

// Create submits a public comment. It needs no session; new comments start PENDING.
func (c *CommentsAPI) Create(ctx context.Context, slug string, in blog.CommentInput) (*blog.Comment, error) {
	if in.Content == "" || in.AuthorName == "" || in.AuthorEmail == "" {
		return nil, blog.ValidationError("content, name and email are required")
	}
	return create[blog.Comment](ctx, c.client, "/v1/posts/"+seg(slug)+"/comments", in)
}

// List is the moderation queue, filterable by status and post id.
func (c *CommentsAPI) List(ctx context.Context, params ListParams) (*blog.Page[blog.Comment], error) {
	return list[blog.Comment](ctx, c.client, "/v1/comments", params)
}

type statusRequest struct {
	Status blog.CommentStatus `json:"status"`
}

func (c *CommentsAPI) UpdateStatus(ctx context.Context, id string, status blog.CommentStatus) (*blog.Comment, error) {
	if !status.Valid() {
		return nil, blog.ValidationError("unknown comment status %q", status)
	}
	var item blog.Item[blog.Comment]
	if err := c.client.Patch(ctx, "/v1/comments/"+seg(id)+"/status", statusRequest{Status: status}, &item); err != nil {
		return nil, err
	}
	return &item.Data, nil
}

func (c *CommentsAPI) Delete(ctx context.Context, id string) error {
	return c.client.Delete(ctx, "/v1/comments/"+seg(id), nil)
}
