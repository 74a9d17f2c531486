package api

import (
	"context"
	"errors"
	"net/http"

	appErrors "github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"golang.org/x/oauth2"
)

// Login runs the OAuth2 password grant against /login. The backend reads
// the email from the "username" field.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Token, error) {

	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.endpoint("/login", nil),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := conf.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, appErrors.FromResponse(retrieveErr.Response.StatusCode, retrieveErr.Body).WithError(err)
		}

		return nil, appErrors.TransportError("POST /login failed").WithError(err)
	}

	result := &models.Token{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	}

	if role, ok := token.Extra("role").(string); ok {
		result.Role = role
	}

	return result, nil
}

func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	var user models.User

	err := c.Do(ctx, &Request{Method: http.MethodPost, Path: "/register", JSON: req, NoAuth: true}, &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Me is the "whoami" call used to validate a stored token.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User

	if err := c.Do(ctx, &Request{Method: http.MethodGet, Path: "/users/me"}, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
