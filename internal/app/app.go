package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"blogctl/internal/api"
	"blogctl/internal/apiclient"
	"blogctl/internal/blog"
	"blogctl/internal/config"
	"blogctl/internal/database"
	"blogctl/internal/encryption"
	"blogctl/internal/session"
	"blogctl/internal/tokenstore"
)

// Minimum role per console area.
var areaRoles = map[string]blog.Role{
	"posts":      blog.RoleAuthor,
	"media":      blog.RoleAuthor,
	"categories": blog.RoleEditor,
	"tags":       blog.RoleEditor,
	"comments":   blog.RoleEditor,
	"users":      blog.RoleAdmin,
	"dashboard":  blog.RoleAdmin,
}

// RoleFor returns the minimum role for a console area. Unknown areas
// require ADMIN.
func RoleFor(area string) blog.Role {
	if r, ok := areaRoles[area]; ok {
		return r
	}
	return blog.RoleAdmin
}

// BlogApp is the application layer between the CLI and the API client.
// It constructs all dependencies from config, owns the session for one
// process, and records mutating commands in the journal.
type BlogApp struct {
	cfg     *config.Config
	client  *apiclient.Client
	api     *api.API
	session *session.Session
	journal blog.Journal
	nav     *TerminalNavigator
	logger  blog.Logger
	runID   string
	op      *ConsoleOperation
	logFile *os.File
}

type options struct {
	httpClient *http.Client
	console    io.Writer
	level      slog.Level
	clock      blog.Clock
	ids        blog.IDGenerator
}

// Option configures NewBlogApp.
type Option func(*options)

// WithHTTPClient replaces the http.Client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithConsole sets where log lines and navigation hints are echoed.
// The default is stderr.
func WithConsole(w io.Writer) Option {
	return func(o *options) { o.console = w }
}

// WithVerbose enables debug logging, including one line per request.
func WithVerbose(v bool) Option {
	return func(o *options) {
		if v {
			o.level = slog.LevelDebug
		} else {
			o.level = slog.LevelInfo
		}
	}
}

func WithClock(c blog.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithIDGenerator sets the generator for run and request ids.
func WithIDGenerator(g blog.IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

// NewBlogApp creates a fully wired BlogApp from the given config.
// operation identifies the CLI command being run (e.g. "posts.create").
// The caller must call Close when done.
func NewBlogApp(cfg *config.Config, operation string, opts ...Option) (*BlogApp, error) {
	o := &options{
		console: os.Stderr,
		level:   slog.LevelInfo,
		clock:   blog.RealClock{},
		ids:     blog.UUIDGenerator{},
	}
	for _, opt := range opts {
		opt(o)
	}

	runID := o.ids.New()
	sl, logFile, err := newLogger(cfg.LogDir, runID, o.console, o.level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: sl}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption, cfg.TokenStore)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	store, err := tokenstore.NewTokenStoreFromConfig(cfg.TokenStore, enc)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating token store: %w", err)
	}

	journal, err := database.NewJournalFromConfig(cfg.Journal, o.clock)
	if err != nil {
		closeStore(store)
		logFile.Close()
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	clientOpts := []apiclient.Option{
		apiclient.WithLogger(logger),
		apiclient.WithIDGenerator(o.ids),
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, apiclient.WithHTTPClient(o.httpClient))
	}
	client := apiclient.New(cfg.ResolveAPIURL(), clientOpts...)
	blogAPI := api.New(client)

	nav := NewTerminalNavigator(o.console)
	sess := session.New(store, blogAPI.Auth, nav, logger, session.WithClock(o.clock))
	client.SetCredentials(sess)

	logger.Debug("starting", "operation", operation, "api", client.BaseURL())

	return &BlogApp{
		cfg:     cfg,
		client:  client,
		api:     blogAPI,
		session: sess,
		journal: journal,
		nav:     nav,
		logger:  logger,
		runID:   runID,
		op:      NewConsoleOperation(operation, ""),
		logFile: logFile,
	}, nil
}

func closeStore(store blog.TokenStore) {
	if c, ok := store.(io.Closer); ok {
		c.Close()
	}
}

// API returns the resource modules bound to this app's session.
func (a *BlogApp) API() *api.API { return a.api }

// Session returns the process session.
func (a *BlogApp) Session() *session.Session { return a.session }

// RunID identifies this process in logs and in the journal.
func (a *BlogApp) RunID() string { return a.runID }

// Authorize restores the session and checks it against required. An empty
// required role only asks for a session.
func (a *BlogApp) Authorize(ctx context.Context, required blog.Role) error {
	if err := a.session.Boot(ctx); err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	switch a.session.Guard(required) {
	case session.AccessGranted:
		return nil
	case session.AccessForbidden:
		return &blog.Error{Kind: blog.KindAuth, Message: fmt.Sprintf("This command requires the %s role", required)}
	default:
		return &blog.Error{Kind: blog.KindAuth, Message: "Not logged in"}
	}
}

// persistOperation saves the console operation to the journal, giving it an
// auto-increment ID. This should only be called for mutating commands.
func (a *BlogApp) persistOperation(parameters string) error {
	if a.op.Persisted() {
		return nil
	}
	a.op.Parameters = parameters
	rec := &blog.Operation{
		RunID:      a.runID,
		Operation:  a.op.Operation,
		Parameters: parameters,
	}
	if err := a.journal.CreateOperation(rec); err != nil {
		return fmt.Errorf("recording operation: %w", err)
	}
	a.op.ID = rec.ID
	return nil
}

// Record journals the operation with parameters and runs fn. A failing fn
// marks the operation as failed. Use it directly for commands that need no
// session, such as posting a public comment.
func (a *BlogApp) Record(ctx context.Context, parameters string, fn func(ctx context.Context) error) error {
	if err := a.persistOperation(parameters); err != nil {
		return err
	}
	if err := fn(ctx); err != nil {
		a.op.Fail()
		return err
	}
	return nil
}

// Mutate authorizes the session for required, then records and runs fn.
// A denied command is not journaled.
func (a *BlogApp) Mutate(ctx context.Context, required blog.Role, parameters string, fn func(ctx context.Context) error) error {
	if err := a.Authorize(ctx, required); err != nil {
		return err
	}
	return a.Record(ctx, parameters, fn)
}

// Read authorizes the session for required and runs fn. Nothing is journaled.
func (a *BlogApp) Read(ctx context.Context, required blog.Role, fn func(ctx context.Context) error) error {
	if err := a.Authorize(ctx, required); err != nil {
		return err
	}
	return fn(ctx)
}

// Login signs in and persists the token.
func (a *BlogApp) Login(ctx context.Context, email, password string) (*blog.User, error) {
	if err := a.session.Boot(ctx); err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	var user *blog.User
	err := a.Record(ctx, "email="+email, func(ctx context.Context) error {
		var err error
		user, err = a.session.Login(ctx, email, password)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Logout forgets the stored token. It never calls the API, so the session
// is not booted first.
func (a *BlogApp) Logout(ctx context.Context) error {
	return a.Record(ctx, "", a.session.Logout)
}

// WhoAmI returns the signed-in user.
func (a *BlogApp) WhoAmI(ctx context.Context) (*blog.User, error) {
	if err := a.Authorize(ctx, ""); err != nil {
		return nil, err
	}
	return a.session.User(), nil
}

// Dashboard returns the admin totals.
func (a *BlogApp) Dashboard(ctx context.Context) (*blog.DashboardStats, error) {
	if err := a.Authorize(ctx, RoleFor("dashboard")); err != nil {
		return nil, err
	}
	return a.api.Dashboard.Stats(ctx)
}

// History returns the most recent journal entries, newest first.
func (a *BlogApp) History(limit int) ([]*blog.Operation, error) {
	return a.journal.ListOperations(limit)
}

// Close finalizes the operation and closes all resources.
func (a *BlogApp) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.journal.FinishOperation(a.op.ID, a.op.Status); err != nil {
			firstErr = fmt.Errorf("finishing operation: %w", err)
		}
	}

	if err := a.journal.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing journal: %w", err)
	}

	if err := a.session.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing session: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
