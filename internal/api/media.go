package api

import (
	"context"
	"encoding/json"
	"fmt"

	"blogctl/internal/apiclient"
	"blogctl/internal/blog"
)

// MediaAPI normalizes every record it returns; callers never see the legacy
// field names.
type MediaAPI struct {
	client *apiclient.Client
}

func (m *MediaAPI) List(ctx context.Context, params ListParams) (*blog.Page[blog.Media], error) {
	raw, err := list[json.RawMessage](ctx, m.client, "/v1/media", params)
	if err != nil {
		return nil, err
	}
	data, err := blog.NormalizeMediaList(raw.Data)
	if err != nil {
		return nil, decodeError(err)
	}
	return &blog.Page[blog.Media]{Data: data, Pagination: raw.Pagination}, nil
}

func (m *MediaAPI) GetByID(ctx context.Context, id string) (*blog.Media, error) {
	raw, err := get[json.RawMessage](ctx, m.client, "/v1/media/"+seg(id))
	if err != nil {
		return nil, err
	}
	return normalizeOne(*raw)
}

// Upload sends one file under the form field "file".
func (m *MediaAPI) Upload(ctx context.Context, file blog.UploadFile) (*blog.Media, error) {
	var item blog.Item[json.RawMessage]
	if err := m.client.PostMultipart(ctx, "/v1/media/upload", "file", []blog.UploadFile{file}, &item); err != nil {
		return nil, err
	}
	return normalizeOne(item.Data)
}

type rawUploadBatch struct {
	Uploads     []json.RawMessage    `json:"uploads"`
	Failed      []blog.UploadFailure `json:"failed"`
	Total       int                  `json:"total"`
	Successful  int                  `json:"successful"`
	FailedCount int                  `json:"failedCount"`
}

// UploadMultiple sends every file under the repeated form field "files".
// A nil error only means the request succeeded; individual files may still
// be listed in Failed.
func (m *MediaAPI) UploadMultiple(ctx context.Context, files []blog.UploadFile) (*blog.UploadBatch, error) {
	if len(files) == 0 {
		return nil, blog.ValidationError("no files to upload")
	}
	var item blog.Item[rawUploadBatch]
	if err := m.client.PostMultipart(ctx, "/v1/media/upload-multiple", "files", files, &item); err != nil {
		return nil, err
	}
	uploads, err := blog.NormalizeMediaList(item.Data.Uploads)
	if err != nil {
		return nil, decodeError(err)
	}
	failed := item.Data.Failed
	if failed == nil {
		failed = []blog.UploadFailure{}
	}
	return &blog.UploadBatch{
		Uploads:     uploads,
		Failed:      failed,
		Total:       item.Data.Total,
		Successful:  item.Data.Successful,
		FailedCount: item.Data.FailedCount,
	}, nil
}

func (m *MediaAPI) Delete(ctx context.Context, id string) error {
	return m.client.Delete(ctx, "/v1/media/"+seg(id), nil)
}

func normalizeOne(raw json.RawMessage) (*blog.Media, error) {
	media, err := blog.NormalizeMedia(raw)
	if err != nil {
		return nil, decodeError(err)
	}
	return &media, nil
}

func decodeError(err error) error {
	return &blog.Error{Kind: blog.KindTransport, Cause: fmt.Errorf("unexpected media payload: %w", err)}
}
