package api

import (
	"context"
	"net/url"
)

// Token is the response of the token endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The token endpoint takes
// form-encoded credentials, not JSON.
func (c *Client) Login(ctx context.Context, username, password string) (Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var tok Token
	if err := c.PostForm(ctx, "/token", form, &tok); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// CurrentUser fetches the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var u User
	if err := c.Get(ctx, "/users/me", nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// ChangePassword updates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	q := url.Values{}
	q.Set("old_password", oldPassword)
	q.Set("new_password", newPassword)
	return c.Post(ctx, "/config/change-password", q, nil, nil)
}

// ForgotPassword asks the server to email a reset token.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	q := url.Values{}
	q.Set("email", email)
	return c.Post(ctx, "/config/forgot-password", q, nil, nil)
}

// ResetPassword completes a password reset with an emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	q := url.Values{}
	q.Set("token", token)
	q.Set("new_password", newPassword)
	return c.Post(ctx, "/config/reset-password", q, nil, nil)
}
