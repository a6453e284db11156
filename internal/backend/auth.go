package backend

import (
	"context"
	"net/http"

	"foodflow-frontend/internal/domain"
)

type RegisterInput struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      domain.Role `json:"role"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
}

func (c *Client) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	creds := map[string]string{"username": username, "password": password}
	var pair domain.TokenPair
	err := c.request(ctx, http.MethodPost, "/accounts/token/", nil, creds, "", &pair)
	return pair, err
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	var user domain.User
	if err := c.request(ctx, http.MethodPost, "/accounts/register/", nil, in, "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) RefreshToken(ctx context.Context, refresh string) (string, error) {
	var resp struct {
		Access string `json:"access"`
	}
	body := map[string]string{"refresh": refresh}
	if err := c.request(ctx, http.MethodPost, "/accounts/token/refresh/", nil, body, "", &resp); err != nil {
		return "", err
	}
	return resp.Access, nil
}

func (c *Client) GetProfile(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := c.request(ctx, http.MethodGet, "/accounts/profile/", nil, nil, token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, fields map[string]any) (*domain.User, error) {
	var user domain.User
	if err := c.request(ctx, http.MethodPatch, "/accounts/profile/", nil, fields, token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
