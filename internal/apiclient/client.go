package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"time"

	"blogctl/internal/blog"
)

// DefaultTimeout aborts a hung request. Requests are never retried.
const DefaultTimeout = 30 * time.Second

// Credentials supplies the bearer token for outbound requests and is told
// when the API rejects it. The session context implements it.
type Credentials interface {
	// Token returns the current bearer token, or "" when there is none.
	Token() string

	// HandleUnauthorized is called for every 401 response.
	HandleUnauthorized()
}

// Client is the single configured request pipeline used by all resource
// modules. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  blog.Logger
	idgen   blog.IDGenerator

	mu    sync.RWMutex
	creds Credentials
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. Its Timeout is kept as given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l blog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithIDGenerator sets the generator for X-Request-ID values.
func WithIDGenerator(g blog.IDGenerator) Option {
	return func(c *Client) { c.idgen = g }
}

// New creates a Client rooted at baseURL (e.g. "http://localhost:3001/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  blog.NewNopLogger(),
		idgen:   blog.UUIDGenerator{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// SetCredentials binds the token source and 401 handler. It must be called
// before requests that need authentication are issued.
func (c *Client) SetCredentials(creds Credentials) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds = creds
}

func (c *Client) credentials() Credentials {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds
}

// RequestOption adjusts a single request.
type RequestOption func(*request)

type request struct {
	query  url.Values
	bearer string
}

// WithQuery appends query parameters to the request URL.
func WithQuery(q url.Values) RequestOption {
	return func(r *request) { r.query = q }
}

// WithBearer sends token instead of the one held by the bound credentials.
func WithBearer(token string) RequestOption {
	return func(r *request) { r.bearer = token }
}

// Get issues a GET and decodes the response body into out.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out, opts)
}

// Post issues a POST with a JSON body and decodes the response body into out.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out, opts)
}

// Put issues a PUT with a JSON body and decodes the response body into out.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out, opts)
}

// Patch issues a PATCH with a JSON body and decodes the response body into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out, opts)
}

// Delete issues a DELETE. out may be nil.
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out, opts)
}

// PostMultipart uploads files as multipart/form-data under the given form
// field, repeating the field once per file. The body is streamed, so file
// contents are never held in memory all at once.
func (c *Client) PostMultipart(ctx context.Context, path, field string, files []blog.UploadFile, out any, opts ...RequestOption) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	written := make(chan error, 1)
	go func() {
		err := writeParts(mw, field, files)
		pw.CloseWithError(err)
		written <- err
	}()

	err := c.do(ctx, http.MethodPost, path, pr, mw.FormDataContentType(), out, opts)
	pr.Close()
	if werr := <-written; werr != nil && !errors.Is(werr, io.ErrClosedPipe) {
		return werr
	}
	return err
}

func writeParts(mw *multipart.Writer, field string, files []blog.UploadFile) error {
	for _, f := range files {
		part, err := createFilePart(mw, field, f)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return fmt.Errorf("reading %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalizing multipart body: %w", err)
	}
	return nil
}

func createFilePart(mw *multipart.Writer, field string, f blog.UploadFile) (io.Writer, error) {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Name))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("creating form part for %s: %w", f.Name, err)
	}
	return part, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, opts []RequestOption) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		r = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, r, "application/json", out, opts)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any, opts []RequestOption) error {
	var ro request
	for _, opt := range opts {
		opt(&ro)
	}

	target := c.baseURL + path
	if len(ro.query) > 0 {
		target += "?" + ro.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", c.idgen.New())

	creds := c.credentials()
	token := ro.bearer
	if token == "" && creds != nil {
		token = creds.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return transportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(fmt.Errorf("reading response body: %w", err))
	}

	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start).Truncate(time.Millisecond))

	if resp.StatusCode == http.StatusUnauthorized && creds != nil {
		creds.HandleUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &blog.Error{
			Kind:   blog.KindTransport,
			Status: resp.StatusCode,
			Cause:  fmt.Errorf("decoding response body: %w", err),
		}
	}
	return nil
}

func transportError(err error) *blog.Error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &blog.Error{Kind: blog.KindTransport, Cause: fmt.Errorf("request timed out: %w", err)}
	}
	return &blog.Error{Kind: blog.KindTransport, Cause: err}
}

// errorBody covers both error payload shapes the API produces.
type errorBody struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

func statusError(status int, data []byte) *blog.Error {
	e := &blog.Error{
		Kind:   kindForStatus(status),
		Status: status,
		Cause:  fmt.Errorf("request failed with status code %d", status),
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		switch {
		case body.Error != nil && body.Error.Message != "":
			e.Message = body.Error.Message
		case body.Message != "":
			e.Message = body.Message
		}
	}
	return e
}

func kindForStatus(status int) blog.ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return blog.KindAuth
	case status == http.StatusNotFound:
		return blog.KindNotFound
	case status >= 400 && status < 500:
		return blog.KindValidation
	default:
		return blog.KindTransport
	}
}
