package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"foodflow-frontend/internal/backend"
	"foodflow-frontend/internal/domain"
)

// Backend mocks the full outbound client surface; it satisfies
// service.Backend, auth.Gateway and draft.OrderGateway.
type Backend struct {
	mock.Mock
}

func (m *Backend) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.TokenPair), args.Error(1)
}

func (m *Backend) Register(ctx context.Context, in backend.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *Backend) RefreshToken(ctx context.Context, refresh string) (string, error) {
	args := m.Called(ctx, refresh)
	return args.String(0), args.Error(1)
}

func (m *Backend) GetProfile(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *Backend) UpdateProfile(ctx context.Context, token string, fields map[string]any) (*domain.User, error) {
	args := m.Called(ctx, token, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *Backend) ListRestaurants(ctx context.Context, params url.Values) ([]domain.Restaurant, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Restaurant), args.Error(1)
}

func (m *Backend) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *Backend) CreateRestaurant(ctx context.Context, token string, in backend.RestaurantInput, image *backend.Upload) (*domain.Restaurant, error) {
	args := m.Called(ctx, token, in, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *Backend) UpdateRestaurant(ctx context.Context, token string, id int, in backend.RestaurantInput, image *backend.Upload) (*domain.Restaurant, error) {
	args := m.Called(ctx, token, id, in, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *Backend) DeleteRestaurant(ctx context.Context, token string, id int) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *Backend) ListMenuItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *Backend) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *Backend) CreateMenuItem(ctx context.Context, token string, in backend.MenuItemInput, image *backend.Upload) (*domain.MenuItem, error) {
	args := m.Called(ctx, token, in, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *Backend) UpdateMenuItem(ctx context.Context, token string, id int, in backend.MenuItemInput, image *backend.Upload) (*domain.MenuItem, error) {
	args := m.Called(ctx, token, id, in, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *Backend) DeleteMenuItem(ctx context.Context, token string, id int) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *Backend) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *Backend) GetOrder(ctx context.Context, token string, id int) (*domain.Order, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *Backend) CreateOrder(ctx context.Context, token string, in backend.OrderCreate) (*domain.Order, error) {
	args := m.Called(ctx, token, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *Backend) UpdateOrderStatus(ctx context.Context, token string, id int, status domain.OrderStatus) (*domain.Order, error) {
	args := m.Called(ctx, token, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
