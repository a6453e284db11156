package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"foodflow-frontend/internal/domain"
)

type RestaurantInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

func (in RestaurantInput) fields() map[string]string {
	return map[string]string{
		"name":         in.Name,
		"description":  in.Description,
		"address":      in.Address,
		"phone_number": in.PhoneNumber,
	}
}

func (c *Client) ListRestaurants(ctx context.Context, params url.Values) ([]domain.Restaurant, error) {
	restaurants := []domain.Restaurant{}
	if err := c.request(ctx, http.MethodGet, "/restaurants/restaurant/", params, nil, "", &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (c *Client) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	endpoint := fmt.Sprintf("/restaurants/restaurant/%d/", id)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, nil, "", &rest); err != nil {
		return nil, err
	}
	return &rest, nil
}

func (c *Client) CreateRestaurant(ctx context.Context, token string, in RestaurantInput, image *Upload) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	if image != nil {
		if err := c.requestMultipart(ctx, http.MethodPost, "/restaurants/restaurant/", in.fields(), image, token, &rest); err != nil {
			return nil, err
		}
		return &rest, nil
	}
	if err := c.request(ctx, http.MethodPost, "/restaurants/restaurant/", nil, in, token, &rest); err != nil {
		return nil, err
	}
	return &rest, nil
}

func (c *Client) UpdateRestaurant(ctx context.Context, token string, id int, in RestaurantInput, image *Upload) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	endpoint := fmt.Sprintf("/restaurants/restaurant/%d/", id)
	if image != nil {
		if err := c.requestMultipart(ctx, http.MethodPatch, endpoint, in.fields(), image, token, &rest); err != nil {
			return nil, err
		}
		return &rest, nil
	}
	if err := c.request(ctx, http.MethodPatch, endpoint, nil, in, token, &rest); err != nil {
		return nil, err
	}
	return &rest, nil
}

func (c *Client) DeleteRestaurant(ctx context.Context, token string, id int) error {
	endpoint := fmt.Sprintf("/restaurants/restaurant/%d/", id)
	return c.request(ctx, http.MethodDelete, endpoint, nil, nil, token, nil)
}
