//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"cart-engine/internal/domain/cart"
	"cart-engine/internal/pkg/clock"
	"cart-engine/internal/usecase/commands"
	"cart-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const snapshotTTL = 24 * time.Hour

type fakeSnapshotStore struct {
	mu        sync.Mutex
	snaps     map[uuid.UUID]*cart.Snapshot
	loadErr   error
	saveErr   error
	clearErr  error
	saveCount int
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{snaps: map[uuid.UUID]*cart.Snapshot{}}
}

func (s *fakeSnapshotStore) Load(_ context.Context, sessionID uuid.UUID) (*cart.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	snap, ok := s.snaps[sessionID]
	if !ok {
		return nil, shared.ErrSnapshotNotFound
	}
	return snap, nil
}

func (s *fakeSnapshotStore) Save(_ context.Context, sessionID uuid.UUID, snap *cart.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snaps[sessionID] = snap
	s.saveCount++
	return nil
}

func (s *fakeSnapshotStore) Clear(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clearErr != nil {
		return s.clearErr
	}
	delete(s.snaps, sessionID)
	return nil
}

func (s *fakeSnapshotStore) stored(sessionID uuid.UUID) (*cart.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[sessionID]
	return snap, ok
}

type fakeNonceStore struct {
	mu         sync.Mutex
	nonce      uuid.UUID
	currentErr error
	rotations  int
}

func (s *fakeNonceStore) Current(context.Context, uuid.UUID) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentErr != nil {
		return uuid.Nil, s.currentErr
	}
	if s.nonce == uuid.Nil {
		s.nonce = uuid.New()
	}
	return s.nonce, nil
}

func (s *fakeNonceStore) Rotate(context.Context, uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotations++
	s.nonce = uuid.Nil
	return nil
}

type fakeGateway struct {
	mu       sync.Mutex
	redirect string
	err      error
	requests []shared.StagingRequest
}

func (g *fakeGateway) Stage(_ context.Context, req shared.StagingRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.err != nil {
		return "", g.err
	}
	return g.redirect, nil
}

func (g *fakeGateway) calls() []shared.StagingRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]shared.StagingRequest(nil), g.requests...)
}

type testEnv struct {
	store  *fakeSnapshotStore
	nonces *fakeNonceStore
	clock  *clock.MockClock
	cmds   commands.CartCommands
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newFakeSnapshotStore()
	nonces := &fakeNonceStore{}
	clk := clock.NewMockClock(baseTime)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hydrator := shared.NewCartHydrator(store, clk, snapshotTTL, logger)
	return &testEnv{
		store:  store,
		nonces: nonces,
		clock:  clk,
		cmds:   commands.NewCartCommands(hydrator, store, nonces),
	}
}

func addRequest(productID string, unitPrice int64, qty int) commands.AddItemRequest {
	return commands.AddItemRequest{
		ProductID: productID,
		Name:      "Item " + productID,
		UnitPrice: unitPrice,
		Quantity:  qty,
	}
}

func seedSnapshot(t *testing.T, store *fakeSnapshotStore, sid uuid.UUID, capturedAt time.Time, items ...cart.LineItem) {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), sid, cart.NewSnapshot(capturedAt, items)))
	store.mu.Lock()
	store.saveCount = 0
	store.mu.Unlock()
}

func lineItem(t *testing.T, productID string, unitPrice int64, qty int) cart.LineItem {
	t.Helper()
	item, err := cart.NewLineItem(productID, "Item "+productID, "", unitPrice, nil, false, qty)
	require.NoError(t, err)
	return item
}
