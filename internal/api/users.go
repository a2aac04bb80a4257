package api

import (
	"context"
	"fmt"
	"net/http"
)

// UserInput is the create/update payload for user administration.
// An empty Password on update keeps the existing one.
type UserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

// ListUsers returns a page of users, optionally filtered by search text.
// Admin only; the server enforces the role.
func (c *Client) ListUsers(ctx context.Context, params ListParams) (*UserPage, error) {
	var out UserPage
	if err := c.do(ctx, http.MethodGet, "/users", params.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser creates a user account
func (c *Client) CreateUser(ctx context.Context, input UserInput) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/users", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser replaces a user's fields
func (c *Client) UpdateUser(ctx context.Context, id int64, input UserInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, input, nil)
}

// DeleteUser removes a user account
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}
