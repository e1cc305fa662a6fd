// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"

	"github.com/avdeenko/bookclub/internal/utils"
	"github.com/avdeenko/bookclub/models"
)

// Register creates an account and stores the issued bearer token on the
// client for subsequent authenticated calls.
func (c *Client) Register(ctx context.Context, user models.User) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&auth).
		Post("/api/auth/register")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("register parse bearer token: %w", err)
	}

	c.SetToken(token)
	return auth, nil
}

// Login authenticates the username/password pair and stores the issued
// bearer token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Username: username, Password: password}).
		SetResult(&auth).
		Post("/api/auth/login")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	c.SetToken(token)
	return auth, nil
}

// Me returns the account behind the stored token.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := c.authorized().
		SetContext(ctx).
		SetResult(&user).
		Get("/api/users/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}
