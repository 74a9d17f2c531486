package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
)

func (c *Client) UpdateMe(ctx context.Context, req *models.UpdateProfileRequest) (*models.User, error) {
	var user models.User

	if err := c.Do(ctx, &Request{Method: http.MethodPut, Path: "/users/me", JSON: req}, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) DeleteMe(ctx context.Context) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: "/users/me"}, nil)
}

func (c *Client) ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: "/users/me/password", JSON: req}, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User

	if err := c.Do(ctx, &Request{Method: http.MethodGet, Path: "/users"}, &users); err != nil {
		return nil, err
	}

	return users, nil
}

func (c *Client) UserStats(ctx context.Context) ([]models.UserStats, error) {
	var stats []models.UserStats

	if err := c.Do(ctx, &Request{Method: http.MethodGet, Path: "/users/stats"}, &stats); err != nil {
		return nil, err
	}

	return stats, nil
}

func (c *Client) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	var user models.User

	if err := c.Do(ctx, &Request{Method: http.MethodPost, Path: "/users/create_user", JSON: req}, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error) {
	var user models.User

	if err := c.Do(ctx, &Request{Method: http.MethodPut, Path: fmt.Sprintf("/users/%d", id), JSON: req}, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: fmt.Sprintf("/users/%d", id)}, nil)
}

// TempPassword asks the backend to issue a one-time password for email.
func (c *Client) TempPassword(ctx context.Context, email string) (*models.TempPasswordResponse, error) {
	var resp models.TempPasswordResponse

	req := &Request{Method: http.MethodPost, Path: "/admin/temp-password", JSON: &models.TempPasswordRequest{Email: email}}
	if err := c.Do(ctx, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
