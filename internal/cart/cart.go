// Package cart is the in-memory menu selection for a single
// restaurant-detail visit. It is a pure quantity map: no entry ever holds
// a zero or negative quantity, and nothing here is persisted.
package cart

import "foodflow-frontend/internal/domain"

type Cart map[int]int

func New() Cart {
	return make(Cart)
}

func (c Cart) Add(itemID int) {
	c[itemID]++
}

// Remove decrements the quantity, deleting the entry when it reaches
// zero. Removing an item that is not in the cart is a no-op.
func (c Cart) Remove(itemID int) {
	q, ok := c[itemID]
	if !ok {
		return
	}
	if q > 1 {
		c[itemID] = q - 1
		return
	}
	delete(c, itemID)
}

// Clone returns an independent copy. Cloning a nil cart yields an
// empty one.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, q := range c {
		out[id] = q
	}
	return out
}

func (c Cart) TotalItems() int {
	total := 0
	for _, q := range c {
		total += q
	}
	return total
}

// TotalPrice sums quantity times catalog price. Entries referencing an
// item absent from the catalog contribute zero.
func (c Cart) TotalPrice(catalog []domain.MenuItem) float64 {
	total := 0.0
	for _, item := range catalog {
		if q, ok := c[item.ID]; ok {
			total += item.Price * float64(q)
		}
	}
	return total
}

// Items shapes the cart into draft entries, pricing each line from the
// catalog. Unknown items are priced at zero; they should not occur under
// normal navigation.
func (c Cart) Items(catalog []domain.MenuItem) []domain.DraftItem {
	prices := make(map[int]float64, len(catalog))
	for _, item := range catalog {
		prices[item.ID] = item.Price
	}

	items := make([]domain.DraftItem, 0, len(c))
	for id, q := range c {
		items = append(items, domain.DraftItem{
			MenuItem: id,
			Quantity: q,
			Price:    prices[id],
		})
	}
	return items
}
