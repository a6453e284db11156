package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"foodflow-frontend/internal/domain"
)

type MenuItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Restaurant  int     `json:"restaurant,omitempty"`
	IsAvailable bool    `json:"is_available"`
}

// fields leaves restaurant out when unset so a partial update never
// reassigns the item to another restaurant.
func (in MenuItemInput) fields() map[string]string {
	f := map[string]string{
		"name":         in.Name,
		"description":  in.Description,
		"price":        strconv.FormatFloat(in.Price, 'f', 2, 64),
		"is_available": strconv.FormatBool(in.IsAvailable),
	}
	if in.Restaurant > 0 {
		f["restaurant"] = strconv.Itoa(in.Restaurant)
	}
	return f
}

func (c *Client) ListMenuItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	params := url.Values{}
	if restaurantID > 0 {
		params.Set("restaurant", strconv.Itoa(restaurantID))
	}
	items := []domain.MenuItem{}
	if err := c.request(ctx, http.MethodGet, "/restaurants/menu-items/", params, nil, "", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	var item domain.MenuItem
	endpoint := fmt.Sprintf("/restaurants/menu-items/%d/", id)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, nil, "", &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) CreateMenuItem(ctx context.Context, token string, in MenuItemInput, image *Upload) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if image != nil {
		if err := c.requestMultipart(ctx, http.MethodPost, "/restaurants/menu-items/", in.fields(), image, token, &item); err != nil {
			return nil, err
		}
		return &item, nil
	}
	if err := c.request(ctx, http.MethodPost, "/restaurants/menu-items/", nil, in, token, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, token string, id int, in MenuItemInput, image *Upload) (*domain.MenuItem, error) {
	var item domain.MenuItem
	endpoint := fmt.Sprintf("/restaurants/menu-items/%d/", id)
	if image != nil {
		if err := c.requestMultipart(ctx, http.MethodPatch, endpoint, in.fields(), image, token, &item); err != nil {
			return nil, err
		}
		return &item, nil
	}
	if err := c.request(ctx, http.MethodPatch, endpoint, nil, in, token, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, token string, id int) error {
	endpoint := fmt.Sprintf("/restaurants/menu-items/%d/", id)
	return c.request(ctx, http.MethodDelete, endpoint, nil, nil, token, nil)
}
