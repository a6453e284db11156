package httpapi

import (
	"sync"

	"foodflow-frontend/internal/cart"
)

type cartKey struct {
	sid          string
	restaurantID int
}

// cartStore holds the per-visit carts in process memory. A cart lives
// only while its restaurant page is the one being visited; opening a
// different restaurant discards it, matching single-page-visit scope.
// The shared maps never leave the lock; callers only ever see clones.
type cartStore struct {
	mu    sync.Mutex
	carts map[cartKey]cart.Cart
}

func newCartStore() *cartStore {
	return &cartStore{carts: make(map[cartKey]cart.Cart)}
}

// locked returns the live cart for the key; the caller must hold mu.
func (s *cartStore) locked(sid string, restaurantID int) cart.Cart {
	key := cartKey{sid, restaurantID}
	c, ok := s.carts[key]
	if !ok {
		c = cart.New()
		s.carts[key] = c
	}
	return c
}

// snapshot returns a copy of the cart for reading.
func (s *cartStore) snapshot(sid string, restaurantID int) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts[cartKey{sid, restaurantID}].Clone()
}

// update applies fn to the cart under the store lock and returns a copy
// of the result.
func (s *cartStore) update(sid string, restaurantID int, fn func(cart.Cart)) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.locked(sid, restaurantID)
	fn(c)
	return c.Clone()
}

// visit returns a copy of the cart for the given restaurant and drops
// this session's carts for every other restaurant.
func (s *cartStore) visit(sid string, restaurantID int) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.carts {
		if key.sid == sid && key.restaurantID != restaurantID {
			delete(s.carts, key)
		}
	}
	return s.locked(sid, restaurantID).Clone()
}

func (s *cartStore) drop(sid string, restaurantID int) {
	s.mu.Lock()
	delete(s.carts, cartKey{sid, restaurantID})
	s.mu.Unlock()
}
