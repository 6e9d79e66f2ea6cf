package shared

import (
	"context"

	"cart-engine/internal/domain/cart"
	"cart-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrSnapshotNotFound covers both "never stored" and "stored but corrupt":
// the store normalizes malformed payloads to absence and clears the key, so
// callers only ever see an empty startup state.
var ErrSnapshotNotFound = errs.New("cart snapshot not found")

// SnapshotStore is the ephemeral keyed store behind a session's cart.
// Implementations attach a TTL to every Save; a key may vanish at any time
// and callers must treat that as a normal empty state.
type SnapshotStore interface {
	Load(ctx context.Context, sessionID uuid.UUID) (*cart.Snapshot, error)
	Save(ctx context.Context, sessionID uuid.UUID, snap *cart.Snapshot) error
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

// NonceStore persists the staging idempotency nonce alongside the cart, with
// the same TTL. The nonce is reused across user-initiated retries of a failed
// staging call and rotated once an attempt succeeds.
type NonceStore interface {
	// Current returns the nonce for the session, minting and persisting one
	// if none exists.
	Current(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error)
	// Rotate discards the nonce so the next staging attempt mints a fresh one.
	Rotate(ctx context.Context, sessionID uuid.UUID) error
}

// StagingGateway converts a staging request into a redirect target via the
// remote staging endpoint. At most one redirect target per invocation; no
// automatic retries.
type StagingGateway interface {
	Stage(ctx context.Context, req StagingRequest) (string, error)
}
