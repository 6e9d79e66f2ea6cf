package queries

import (
	"context"

	"cart-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartItemView struct {
	ProductID     string
	Name          string
	ThumbnailRef  string
	UnitPrice     int64
	PreviousPrice *int64
	Promotional   bool
	Quantity      int
	Subtotal      int64
}

type CartView struct {
	Items []CartItemView
	Total int64
	Count int
}

type CartQueries interface {
	GetCart(ctx context.Context, sessionID uuid.UUID) (*CartView, error)
}

type cartQueriesImpl struct {
	hydrator *shared.CartHydrator
}

func NewCartQueries(hydrator *shared.CartHydrator) CartQueries {
	return &cartQueriesImpl{hydrator: hydrator}
}

// GetCart hydrates through the same TTL gate as mutations, so a stale
// snapshot reads as an empty cart. Reads do not refresh the TTL window.
func (uc *cartQueriesImpl) GetCart(ctx context.Context, sessionID uuid.UUID) (*CartView, error) {
	c, err := uc.hydrator.Hydrate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := c.Items()
	view := &CartView{
		Items: make([]CartItemView, len(items)),
		Total: c.Total(),
		Count: c.Count(),
	}
	for i, it := range items {
		view.Items[i] = CartItemView{
			ProductID:     it.ProductID,
			Name:          it.Name,
			ThumbnailRef:  it.ThumbnailRef,
			UnitPrice:     it.UnitPrice,
			PreviousPrice: it.PreviousPrice,
			Promotional:   it.Promotional,
			Quantity:      it.Quantity,
			Subtotal:      it.Subtotal(),
		}
	}
	return view, nil
}
