// Package session owns the authentication state of one console process: the
// current user, the bearer token and the store the token is persisted in.
//
// Lifecycle: New → Boot → Login/Logout (any number of times) → Close.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"blogctl/internal/blog"
)

// State is the session's lifecycle state.
type State int

const (
	// StateLoading is the state before Boot has settled.
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Authenticator is the slice of the auth API the session needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*blog.LoginResult, error)
	Me(ctx context.Context, token string) (*blog.User, error)
}

// LoginFailed is the message used when the server gives no reason.
const LoginFailed = "Login failed"

// Session is safe for concurrent use. Its lock is never held across a
// network call, so HandleUnauthorized may be invoked from within any request.
type Session struct {
	store  blog.TokenStore
	auth   Authenticator
	nav    blog.Navigator
	logger blog.Logger
	clock  blog.Clock

	mu     sync.RWMutex
	state  State
	user   *blog.User
	token  string
	booted bool
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used to check token expiry.
func WithClock(c blog.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// New creates a session in StateLoading. Call Boot before use.
func New(store blog.TokenStore, auth Authenticator, nav blog.Navigator, logger blog.Logger, opts ...Option) *Session {
	if nav == nil {
		nav = blog.NopNavigator{}
	}
	if logger == nil {
		logger = blog.NewNopLogger()
	}
	s := &Session{
		store:  store,
		auth:   auth,
		nav:    nav,
		logger: logger,
		clock:  blog.RealClock{},
		state:  StateLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Boot restores the session from the token store. It runs once; later calls
// return nil without doing anything. Without a stored token, or with a JWT
// that has already expired, it settles to StateUnauthenticated with no
// network call. Otherwise the token is validated against the profile
// endpoint and discarded on any failure. A failure to validate is not an
// error of Boot.
func (s *Session) Boot(ctx context.Context) error {
	s.mu.Lock()
	if s.booted {
		s.mu.Unlock()
		return nil
	}
	s.booted = true
	s.mu.Unlock()

	token, err := s.store.Load(ctx)
	if err != nil {
		s.settle(nil, "")
		return fmt.Errorf("loading token: %w", err)
	}
	if token == "" {
		s.settle(nil, "")
		return nil
	}

	if s.expired(token) {
		s.logger.Info("stored token expired, discarding")
		return s.discard(ctx)
	}

	user, err := s.auth.Me(ctx, token)
	if err != nil {
		s.logger.Info("stored token rejected, discarding", "error", err)
		return s.discard(ctx)
	}

	s.settle(user, token)
	s.logger.Debug("session restored", "user", user.Email, "role", string(user.Role))
	return nil
}

// expired reports whether token is a JWT whose exp claim is in the past.
// Opaque tokens are never considered expired here.
func (s *Session) expired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(s.clock.Now())
}

func (s *Session) discard(ctx context.Context) error {
	err := s.store.Clear(ctx)
	s.settle(nil, "")
	if err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

func (s *Session) settle(user *blog.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
	if user != nil && token != "" {
		s.state = StateAuthenticated
	} else {
		s.state = StateUnauthenticated
	}
}

// Login exchanges credentials for a token, persists it, then publishes the
// token and user together. On failure the previous state is kept and the
// error carries the server's message, or LoginFailed when there is none.
func (s *Session) Login(ctx context.Context, email, password string) (*blog.User, error) {
	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, loginError(err)
	}
	if res.Token == "" || res.User == nil {
		return nil, &blog.Error{Kind: blog.KindTransport, Message: LoginFailed, Cause: errors.New("login response missing token or user")}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, res.Token); err != nil {
		return nil, fmt.Errorf("saving token: %w", err)
	}
	s.booted = true
	s.token = res.Token
	s.user = res.User
	s.state = StateAuthenticated
	s.logger.Info("logged in", "user", res.User.Email, "role", string(res.User.Role))
	return res.User, nil
}

func loginError(err error) error {
	var e *blog.Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return err
		}
		return &blog.Error{Kind: e.Kind, Status: e.Status, Message: LoginFailed, Cause: err}
	}
	return &blog.Error{Kind: blog.KindTransport, Message: LoginFailed, Cause: err}
}

// Logout forgets the token and user. It makes no network call.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	s.state = StateUnauthenticated
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

// HandleUnauthorized is invoked by the API client for every 401 response.
// It clears the token and user and sends the user to the login screen.
func (s *Session) HandleUnauthorized() {
	s.mu.Lock()
	hadSession := s.token != ""
	s.token = ""
	s.user = nil
	s.state = StateUnauthenticated
	err := s.store.Clear(context.Background())
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("failed to clear token after 401", "error", err)
	}
	if hadSession {
		s.logger.Info("session rejected by server, logged out")
	}
	s.nav.RedirectTo(blog.LoginPath)
}

// Token returns the current bearer token, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil.
func (s *Session) User() *blog.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// State returns where the session is in its lifecycle.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated is true iff both a user and a token are present.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// Access is the outcome of a role check.
type Access int

const (
	// AccessPending means Boot has not settled yet; nothing was redirected.
	AccessPending Access = iota
	AccessGranted
	// AccessLogin means there is no session; the user was sent to login.
	AccessLogin
	// AccessForbidden means the role is too low; the user was sent to the admin home.
	AccessForbidden
)

func (a Access) String() string {
	switch a {
	case AccessPending:
		return "pending"
	case AccessGranted:
		return "granted"
	case AccessLogin:
		return "login"
	case AccessForbidden:
		return "forbidden"
	default:
		return fmt.Sprintf("access(%d)", int(a))
	}
}

// Guard checks the current user against required and redirects when access
// is not granted. An empty required role only asks for a session. A user
// without a role is treated as an author.
func (s *Session) Guard(required blog.Role) Access {
	s.mu.RLock()
	state := s.state
	authed := s.user != nil && s.token != ""
	var role blog.Role
	if s.user != nil {
		role = s.user.Role.OrDefault()
	}
	s.mu.RUnlock()

	switch {
	case state == StateLoading:
		return AccessPending
	case !authed:
		s.nav.RedirectTo(blog.LoginPath)
		return AccessLogin
	case required != "" && !role.AtLeast(required):
		s.nav.RedirectTo(blog.AdminHomePath)
		return AccessForbidden
	default:
		return AccessGranted
	}
}

// Close drops the in-memory session and releases the token store. The
// persisted token is kept, so the next process can Boot from it.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	s.state = StateLoading
	if c, ok := s.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
