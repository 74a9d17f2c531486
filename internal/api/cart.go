package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
)

func (c *Client) GetCart(ctx context.Context) ([]models.CartLine, error) {
	var lines []models.CartLine

	if err := c.Do(ctx, &Request{Method: http.MethodGet, Path: "/cart"}, &lines); err != nil {
		return nil, err
	}

	return lines, nil
}

// AddToCart returns the resulting line; the backend increments an existing
// line for the same product.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) (*models.CartLine, error) {
	var line models.CartLine

	req := &Request{
		Method: http.MethodPost,
		Path:   "/products/cart",
		JSON:   &models.AddToCartRequest{ProductID: productID, Quantity: quantity},
	}
	if err := c.Do(ctx, req, &line); err != nil {
		return nil, err
	}

	return &line, nil
}

// UpdateCartLine sets the quantity of a line. The backend deletes the line
// when quantity <= 0.
func (c *Client) UpdateCartLine(ctx context.Context, lineID int64, quantity int) (*models.CartLine, error) {
	var line models.CartLine

	req := &Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/cart/%d", lineID),
		Query:  url.Values{"quantity": []string{strconv.Itoa(quantity)}},
	}
	if err := c.Do(ctx, req, &line); err != nil {
		return nil, err
	}

	return &line, nil
}

func (c *Client) DeleteCartLine(ctx context.Context, lineID int64) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: fmt.Sprintf("/cart/%d", lineID)}, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: "/cart"}, nil)
}
