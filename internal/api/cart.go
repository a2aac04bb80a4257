package api

import (
	"context"
	"fmt"
	"net/http"
)

type addCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// ListCart returns the current user's cart items
func (c *Client) ListCart(ctx context.Context) ([]CartItem, error) {
	var out []CartItem
	if err := c.do(ctx, http.MethodGet, "/cart", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddCartItem adds a product to the cart
func (c *Client) AddCartItem(ctx context.Context, productID int64, quantity int) error {
	return c.do(ctx, http.MethodPost, "/cart", nil, addCartItemRequest{
		ProductID: productID,
		Quantity:  quantity,
	}, nil)
}

// UpdateCartItem changes the quantity of a cart line
func (c *Client) UpdateCartItem(ctx context.Context, id int64, quantity int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/cart/%d", id), nil, updateCartItemRequest{
		Quantity: quantity,
	}, nil)
}

// RemoveCartItem removes a cart line
func (c *Client) RemoveCartItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", id), nil, nil, nil)
}
