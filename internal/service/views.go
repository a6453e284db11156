package service

import (
	"context"
	"sort"

	"foodflow-frontend/internal/domain"
)

type RestaurantDetailView struct {
	Restaurant *domain.Restaurant `json:"restaurant"`
	MenuItems  []domain.MenuItem  `json:"menu_items"`
}

type DashboardView struct {
	Restaurants []domain.Restaurant `json:"restaurants"`
	Orders      []domain.Order      `json:"orders"`
}

// ViewService aggregates backend reads into page view models.
type ViewService struct {
	backend Backend
}

func NewViewService(b Backend) *ViewService {
	return &ViewService{backend: b}
}

var _ ViewServiceInterface = (*ViewService)(nil)

// RestaurantDetail fetches the restaurant and its menu concurrently and
// joins both before the page renders. Either failure fails the view.
func (s *ViewService) RestaurantDetail(ctx context.Context, id int) (*RestaurantDetailView, error) {
	type restResult struct {
		rest *domain.Restaurant
		err  error
	}
	type menuResult struct {
		items []domain.MenuItem
		err   error
	}

	restCh := make(chan restResult, 1)
	menuCh := make(chan menuResult, 1)

	go func() {
		rest, err := s.backend.GetRestaurant(ctx, id)
		restCh <- restResult{rest, err}
	}()
	go func() {
		items, err := s.backend.ListMenuItems(ctx, id)
		menuCh <- menuResult{items, err}
	}()

	rest := <-restCh
	menu := <-menuCh

	if rest.err != nil {
		return nil, rest.err
	}
	if menu.err != nil {
		return nil, menu.err
	}

	return &RestaurantDetailView{Restaurant: rest.rest, MenuItems: menu.items}, nil
}

// Dashboard lists restaurants and orders concurrently, then narrows both
// to the owner's: restaurants they own, orders placed at those
// restaurants, newest orders first.
func (s *ViewService) Dashboard(ctx context.Context, token string, user *domain.User) (*DashboardView, error) {
	type restsResult struct {
		rests []domain.Restaurant
		err   error
	}
	type ordersResult struct {
		orders []domain.Order
		err    error
	}

	restsCh := make(chan restsResult, 1)
	ordersCh := make(chan ordersResult, 1)

	go func() {
		rests, err := s.backend.ListRestaurants(ctx, nil)
		restsCh <- restsResult{rests, err}
	}()
	go func() {
		orders, err := s.backend.ListOrders(ctx, token)
		ordersCh <- ordersResult{orders, err}
	}()

	rests := <-restsCh
	orders := <-ordersCh

	if rests.err != nil {
		return nil, rests.err
	}
	if orders.err != nil {
		return nil, orders.err
	}

	owned := []domain.Restaurant{}
	ownedIDs := make(map[int]bool)
	for _, r := range rests.rests {
		if r.Owner.ID == user.ID {
			owned = append(owned, r)
			ownedIDs[r.ID] = true
		}
	}

	filtered := []domain.Order{}
	for _, o := range orders.orders {
		if ownedIDs[o.Restaurant] {
			filtered = append(filtered, o)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	return &DashboardView{Restaurants: owned, Orders: filtered}, nil
}
