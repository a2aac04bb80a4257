package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListOrders returns the current user's orders, newest first
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrder returns a single order with its items
func (c *Client) GetOrder(ctx context.Context, id int64) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaceOrder converts the current cart into a new order.
// The server consumes the cart; callers must invalidate both the cart
// and orders caches afterwards.
func (c *Client) PlaceOrder(ctx context.Context) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
