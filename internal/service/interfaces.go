package service

import (
	"context"
	"net/url"

	"foodflow-frontend/internal/backend"
	"foodflow-frontend/internal/domain"
)

// Backend is the full outbound surface the frontend consumes; implemented
// by backend.Client and mocked in tests.
type Backend interface {
	Login(ctx context.Context, username, password string) (domain.TokenPair, error)
	Register(ctx context.Context, in backend.RegisterInput) (*domain.User, error)
	RefreshToken(ctx context.Context, refresh string) (string, error)
	GetProfile(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, token string, fields map[string]any) (*domain.User, error)

	ListRestaurants(ctx context.Context, params url.Values) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	CreateRestaurant(ctx context.Context, token string, in backend.RestaurantInput, image *backend.Upload) (*domain.Restaurant, error)
	UpdateRestaurant(ctx context.Context, token string, id int, in backend.RestaurantInput, image *backend.Upload) (*domain.Restaurant, error)
	DeleteRestaurant(ctx context.Context, token string, id int) error

	ListMenuItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, token string, in backend.MenuItemInput, image *backend.Upload) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, token string, id int, in backend.MenuItemInput, image *backend.Upload) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, token string, id int) error

	ListOrders(ctx context.Context, token string) ([]domain.Order, error)
	GetOrder(ctx context.Context, token string, id int) (*domain.Order, error)
	CreateOrder(ctx context.Context, token string, in backend.OrderCreate) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, token string, id int, status domain.OrderStatus) (*domain.Order, error)
}

type ViewServiceInterface interface {
	RestaurantDetail(ctx context.Context, id int) (*RestaurantDetailView, error)
	Dashboard(ctx context.Context, token string, user *domain.User) (*DashboardView, error)
}

var _ Backend = (*backend.Client)(nil)
