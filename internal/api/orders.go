package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
)

func (c *Client) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order

	if err := c.Do(ctx, &Request{Method: http.MethodPost, Path: "/orders", JSON: req}, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// ListOrders is the admin view of every order, filtered server side.
func (c *Client) ListOrders(ctx context.Context, query *models.OrderQuery) ([]models.Order, error) {
	var orders []models.Order

	if err := c.Do(ctx, &Request{Method: http.MethodGet, Path: "/orders", Query: query.Values()}, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (c *Client) MyOrders(ctx context.Context, query *models.OrderQuery) ([]models.Order, error) {
	var orders []models.Order

	if err := c.Do(ctx, &Request{Method: http.MethodGet, Path: "/orders/my_orders", Query: query.Values()}, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	var order models.Order

	req := &Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/orders/%d", id),
		JSON:   &models.UpdateOrderStatusRequest{Status: status},
	}
	if err := c.Do(ctx, req, &order); err != nil {
		return nil, err
	}

	return &order, nil
}
