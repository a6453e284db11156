package backend

import (
	"context"
	"fmt"
	"net/http"

	"foodflow-frontend/internal/domain"
)

type OrderItemInput struct {
	MenuItem int `json:"menu_item"`
	Quantity int `json:"quantity"`
}

// OrderCreate deliberately carries no prices; the backend is the source
// of truth for pricing at order-creation time.
type OrderCreate struct {
	Restaurant      int              `json:"restaurant"`
	DeliveryAddress string           `json:"delivery_address"`
	OrderItems      []OrderItemInput `json:"order_items"`
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	orders := []domain.Order{}
	if err := c.request(ctx, http.MethodGet, "/orders/", nil, nil, token, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, token string, id int) (*domain.Order, error) {
	var order domain.Order
	endpoint := fmt.Sprintf("/orders/%d/", id)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, nil, token, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CreateOrder(ctx context.Context, token string, in OrderCreate) (*domain.Order, error) {
	var order domain.Order
	if err := c.request(ctx, http.MethodPost, "/orders/", nil, in, token, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token string, id int, status domain.OrderStatus) (*domain.Order, error) {
	var order domain.Order
	endpoint := fmt.Sprintf("/orders/%d/", id)
	body := map[string]domain.OrderStatus{"status": status}
	if err := c.request(ctx, http.MethodPatch, endpoint, nil, body, token, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
