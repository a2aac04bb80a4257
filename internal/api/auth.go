package api

import (
	"context"
	"net/http"

	"github.com/commercehq/shopctl/internal/errors"
)

// Credentials is the login request payload
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the registration request payload
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// AuthSuccess is the payload both login and signup return
type AuthSuccess struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*AuthSuccess, error) {
	var out AuthSuccess
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, Credentials{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeAuthTokenRejected) {
			return nil, errors.NewInvalidCredentialsError(err)
		}
		return nil, err
	}
	return &out, nil
}

// Signup registers a new account and returns the same payload as Login
func (c *Client) Signup(ctx context.Context, email, password, name string) (*AuthSuccess, error) {
	var out AuthSuccess
	err := c.do(ctx, http.MethodPost, "/auth/signup", nil, SignupRequest{
		Email:    email,
		Password: password,
		Name:     name,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Me verifies the current token and returns the authenticated identity
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
