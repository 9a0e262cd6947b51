package blog

import "context"

// TokenKey is the fixed key the bearer token is persisted under.
const TokenKey = "auth_token"

// TokenStore persists the bearer token, the only piece of client state that
// survives a process. The session context is its only user.
type TokenStore interface {
	// Load returns the stored token, or "" when none is stored.
	Load(ctx context.Context) (string, error)

	// Save replaces the stored token.
	Save(ctx context.Context, token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
