package commands

import (
	"context"

	"cart-engine/internal/domain/cart"
	"cart-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type AddItemRequest struct {
	ProductID     string
	Name          string
	ThumbnailRef  string
	UnitPrice     int64
	PreviousPrice *int64
	Promotional   bool
	Quantity      int
}

// AddItemResult distinguishes "quantity increased" from "item added" so the
// caller can word its feedback.
type AddItemResult struct {
	Item   cart.LineItem
	Merged bool
	Total  int64
	Count  int
}

type CartCommands interface {
	AddItem(ctx context.Context, sessionID uuid.UUID, req AddItemRequest) (*AddItemResult, error)
	UpdateQuantity(ctx context.Context, sessionID uuid.UUID, productID string, quantity int) error
	RemoveItem(ctx context.Context, sessionID uuid.UUID, productID string) error
	ClearCart(ctx context.Context, sessionID uuid.UUID) error
}

type cartCommandsImpl struct {
	hydrator *shared.CartHydrator
	store    shared.SnapshotStore
	nonces   shared.NonceStore
}

func NewCartCommands(hydrator *shared.CartHydrator, store shared.SnapshotStore, nonces shared.NonceStore) CartCommands {
	return &cartCommandsImpl{hydrator: hydrator, store: store, nonces: nonces}
}

func (uc *cartCommandsImpl) AddItem(ctx context.Context, sessionID uuid.UUID, req AddItemRequest) (*AddItemResult, error) {
	item, err := cart.NewLineItem(req.ProductID, req.Name, req.ThumbnailRef, req.UnitPrice, req.PreviousPrice, req.Promotional, 1)
	if err != nil {
		return nil, err
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, cart.ErrInvalidQuantity
	}

	c, err := uc.hydrator.Hydrate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	added, merged := c.Add(item, qty)
	if err := uc.hydrator.Persist(ctx, sessionID, c); err != nil {
		return nil, err
	}

	return &AddItemResult{Item: added, Merged: merged, Total: c.Total(), Count: c.Count()}, nil
}

func (uc *cartCommandsImpl) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, productID string, quantity int) error {
	c, err := uc.hydrator.Hydrate(ctx, sessionID)
	if err != nil {
		return err
	}

	// Absent ids are a no-op by contract; the fresh snapshot write still
	// refreshes the TTL window like any other interaction.
	c.UpdateQuantity(productID, quantity)
	return uc.hydrator.Persist(ctx, sessionID, c)
}

func (uc *cartCommandsImpl) RemoveItem(ctx context.Context, sessionID uuid.UUID, productID string) error {
	c, err := uc.hydrator.Hydrate(ctx, sessionID)
	if err != nil {
		return err
	}

	c.Remove(productID)
	return uc.hydrator.Persist(ctx, sessionID, c)
}

// ClearCart deletes the backing key outright instead of writing an empty
// snapshot, so a cleared cart cannot be resurrected by a stale read. The
// staging nonce goes with it.
func (uc *cartCommandsImpl) ClearCart(ctx context.Context, sessionID uuid.UUID) error {
	if err := uc.store.Clear(ctx, sessionID); err != nil {
		return err
	}
	return uc.nonces.Rotate(ctx, sessionID)
}
