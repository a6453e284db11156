// Package draft bridges the cart between the restaurant page and the
// order-confirmation page: an explicit stage/resume/commit/abandon
// lifecycle over a single per-session storage slot.
package draft

import (
	"context"
	"encoding/json"
	"log"

	"foodflow-frontend/internal/backend"
	"foodflow-frontend/internal/domain"
)

type Store interface {
	SetDraft(ctx context.Context, sid string, data []byte) error
	GetDraft(ctx context.Context, sid string) ([]byte, error)
	DeleteDraft(ctx context.Context, sid string) error
}

type OrderGateway interface {
	CreateOrder(ctx context.Context, token string, in backend.OrderCreate) (*domain.Order, error)
}

type Handoff struct {
	store Store
	gw    OrderGateway
}

func NewHandoff(store Store, gw OrderGateway) *Handoff {
	return &Handoff{store: store, gw: gw}
}

// Stage serializes the draft into the session's slot, silently replacing
// any previously staged draft. One draft per session, no multi-cart.
func (h *Handoff) Stage(ctx context.Context, sid string, d domain.OrderDraft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return h.store.SetDraft(ctx, sid, data)
}

// Resume returns the staged draft. An absent or malformed draft yields
// ErrNoDraft; the caller redirects back to the restaurant listing.
func (h *Handoff) Resume(ctx context.Context, sid string) (*domain.OrderDraft, error) {
	data, err := h.store.GetDraft(ctx, sid)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domain.ErrNoDraft
	}

	var d domain.OrderDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, domain.ErrNoDraft
	}
	if d.Restaurant == 0 || len(d.Items) == 0 {
		return nil, domain.ErrNoDraft
	}
	return &d, nil
}

// Commit shapes the creation payload and submits it. Prices are omitted:
// the backend reprices every line at creation time. The slot is deleted
// only after the order is accepted; a failed cleanup is logged rather
// than surfaced, so an accepted order is never rendered as a failure
// that invites resubmission.
func (h *Handoff) Commit(ctx context.Context, sid, token, deliveryAddress string) (*domain.Order, error) {
	d, err := h.Resume(ctx, sid)
	if err != nil {
		return nil, err
	}

	in := backend.OrderCreate{
		Restaurant:      d.Restaurant,
		DeliveryAddress: deliveryAddress,
		OrderItems:      make([]backend.OrderItemInput, 0, len(d.Items)),
	}
	for _, item := range d.Items {
		in.OrderItems = append(in.OrderItems, backend.OrderItemInput{
			MenuItem: item.MenuItem,
			Quantity: item.Quantity,
		})
	}

	order, err := h.gw.CreateOrder(ctx, token, in)
	if err != nil {
		return nil, err
	}

	if err := h.store.DeleteDraft(ctx, sid); err != nil {
		log.Printf("[draft] failed to clear committed draft: %v", err)
	}
	return order, nil
}

func (h *Handoff) Abandon(ctx context.Context, sid string) error {
	return h.store.DeleteDraft(ctx, sid)
}
