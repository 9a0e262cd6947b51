package api

import (
	"context"
	"errors"

	"blogctl/internal/apiclient"
	"blogctl/internal/blog"
)

// AuthAPI covers login and the current-user profile.
type AuthAPI struct {
	client *apiclient.Client
}

func NewAuthAPI(c *apiclient.Client) *AuthAPI {
	return &AuthAPI{client: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token and the user it belongs to.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*blog.LoginResult, error) {
	return create[blog.LoginResult](ctx, a.client, "/v1/auth/login", loginRequest{Email: email, Password: password})
}

// Me resolves token into its user. The token is sent explicitly because the
// session has not published it yet when this is called at boot. A response
// without a user id is an error, so the caller never holds an empty user.
func (a *AuthAPI) Me(ctx context.Context, token string) (*blog.User, error) {
	var item blog.Item[*blog.User]
	if err := a.client.Get(ctx, "/v1/auth/me", &item, apiclient.WithBearer(token)); err != nil {
		return nil, err
	}
	if item.Data == nil || item.Data.ID == "" {
		return nil, &blog.Error{Kind: blog.KindTransport, Message: "Profile response has no user", Cause: errMissingUser}
	}
	return item.Data, nil
}

var errMissingUser = errors.New("profile response missing user")
