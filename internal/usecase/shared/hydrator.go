package shared

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cart-engine/internal/domain/cart"
	"cart-engine/internal/pkg/clock"

	"github.com/google/uuid"
)

// CartHydrator turns a persisted snapshot back into a live aggregate.
// Expired or corrupt snapshots are discarded whole: the backing key is
// cleared and an empty cart returned. Only store transport failures
// propagate as errors.
type CartHydrator struct {
	store  SnapshotStore
	clock  clock.Clock
	ttl    time.Duration
	logger *slog.Logger
}

func NewCartHydrator(store SnapshotStore, clk clock.Clock, ttl time.Duration, logger *slog.Logger) *CartHydrator {
	return &CartHydrator{store: store, clock: clk, ttl: ttl, logger: logger}
}

func (h *CartHydrator) TTL() time.Duration {
	return h.ttl
}

func (h *CartHydrator) Now() time.Time {
	return h.clock.Now()
}

func (h *CartHydrator) Hydrate(ctx context.Context, sessionID uuid.UUID) (*cart.Cart, error) {
	snap, err := h.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			return cart.New(), nil
		}
		return nil, err
	}

	if !snap.ValidAt(h.clock.Now(), h.ttl) {
		h.clearStale(ctx, sessionID, "expired")
		return cart.New(), nil
	}

	c, err := cart.FromItems(snap.Items)
	if err != nil {
		h.clearStale(ctx, sessionID, "corrupt")
		return cart.New(), nil
	}
	return c, nil
}

// Persist writes a fresh snapshot stamped with the current time, refreshing
// the TTL window. Called after every accepted mutation.
func (h *CartHydrator) Persist(ctx context.Context, sessionID uuid.UUID, c *cart.Cart) error {
	return h.store.Save(ctx, sessionID, cart.NewSnapshot(h.clock.Now(), c.Items()))
}

func (h *CartHydrator) clearStale(ctx context.Context, sessionID uuid.UUID, reason string) {
	if err := h.store.Clear(ctx, sessionID); err != nil {
		h.logger.Warn("failed to clear stale cart snapshot",
			"session_id", sessionID.String(), "reason", reason, "error", err.Error())
	}
}
