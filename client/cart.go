package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/xdranel/Menu-Ordering/entity"
)

type AddToCartRequest struct {
	MenuID   int64 `json:"menuId"`
	Quantity int   `json:"quantity"`
}

// Cart fetches the current server-session cart snapshot.
func (c *Client) Cart(ctx context.Context) (*entity.Cart, error) {
	var cart entity.Cart
	if err := c.do(ctx, http.MethodGet, "/cart", nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// CartCount returns the total item count, for the badge next to the cart icon.
func (c *Client) CartCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/cart/count", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) AddToCart(ctx context.Context, menuID int64, qty int) (*entity.Cart, error) {
	if err := entity.ValidateQuantity(qty); err != nil {
		return nil, err
	}
	var cart entity.Cart
	req := AddToCartRequest{MenuID: menuID, Quantity: qty}
	if err := c.do(ctx, http.MethodPost, "/cart/add", nil, req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartQuantity sets a line item's quantity. A quantity of zero (or
// below) means the item is removed, matching what decrementing past one
// does on the cart page.
func (c *Client) UpdateCartQuantity(ctx context.Context, menuID int64, qty int) (*entity.Cart, error) {
	if qty <= 0 {
		return c.RemoveFromCart(ctx, menuID)
	}
	if err := entity.ValidateQuantity(qty); err != nil {
		return nil, err
	}
	q := url.Values{"quantity": {strconv.Itoa(qty)}}
	var cart entity.Cart
	path := fmt.Sprintf("/cart/update/%d", menuID)
	if err := c.do(ctx, http.MethodPut, path, q, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, menuID int64) (*entity.Cart, error) {
	var cart entity.Cart
	path := fmt.Sprintf("/cart/remove/%d", menuID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart/clear", nil, nil, nil)
}
