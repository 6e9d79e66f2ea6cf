package commands

import (
	"context"
	"log/slog"
	"strings"

	"cart-engine/internal/domain/cart"
	"cart-engine/internal/pkg/errs"
	"cart-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart       = errs.New("cart is empty")
	ErrBlankClientName = errs.New("client name is blank")
)

type StageResult struct {
	RedirectURL string
}

type SingleItemRequest struct {
	ProductID     string
	Name          string
	ThumbnailRef  string
	UnitPrice     int64
	PreviousPrice *int64
	Promotional   bool
}

type CheckoutCommands interface {
	// StageCart stages the whole cart. On success the cart is cleared and
	// the redirect target returned; on any failure the cart is untouched.
	StageCart(ctx context.Context, sessionID uuid.UUID, clientName string) (*StageResult, error)
	// StageSingleItem stages one ad-hoc item at quantity 1, independent of
	// whatever is in the cart.
	StageSingleItem(ctx context.Context, req SingleItemRequest, clientName string) (*StageResult, error)
}

type checkoutCommandsImpl struct {
	hydrator *shared.CartHydrator
	store    shared.SnapshotStore
	nonces   shared.NonceStore
	gateway  shared.StagingGateway
	currency string
	logger   *slog.Logger
}

func NewCheckoutCommands(hydrator *shared.CartHydrator, store shared.SnapshotStore, nonces shared.NonceStore, gateway shared.StagingGateway, currency string, logger *slog.Logger) CheckoutCommands {
	return &checkoutCommandsImpl{
		hydrator: hydrator,
		store:    store,
		nonces:   nonces,
		gateway:  gateway,
		currency: currency,
		logger:   logger,
	}
}

// cartSource is the tagged origin of a staging request: the whole cart or a
// single ad-hoc item. Both shapes share one request builder.
type cartSource struct {
	items []cart.LineItem
	total int64
}

func wholeCart(c *cart.Cart) cartSource {
	return cartSource{items: c.Items(), total: c.Total()}
}

func singleItem(item cart.LineItem) cartSource {
	return cartSource{items: []cart.LineItem{item}, total: item.Subtotal()}
}

func (uc *checkoutCommandsImpl) StageCart(ctx context.Context, sessionID uuid.UUID, clientName string) (*StageResult, error) {
	if strings.TrimSpace(clientName) == "" {
		return nil, ErrBlankClientName
	}

	c, err := uc.hydrator.Hydrate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	nonce := uc.currentNonce(ctx, sessionID)

	redirect, err := uc.stage(ctx, wholeCart(c), clientName, nonce)
	if err != nil {
		return nil, err
	}

	// A canceled caller must not have a success applied behind its back.
	if ctx.Err() != nil {
		return nil, errs.Wrap(ctx.Err(), "staging succeeded after caller went away")
	}

	// The order draft exists remotely at this point; a failed local cleanup
	// must not fail the checkout. TTL expiry self-corrects either way.
	if err := uc.store.Clear(ctx, sessionID); err != nil {
		uc.logger.Warn("failed to clear cart after successful staging",
			"session_id", sessionID.String(), "error", err.Error())
	}
	if err := uc.nonces.Rotate(ctx, sessionID); err != nil {
		uc.logger.Warn("failed to rotate staging nonce",
			"session_id", sessionID.String(), "error", err.Error())
	}

	return &StageResult{RedirectURL: redirect}, nil
}

func (uc *checkoutCommandsImpl) StageSingleItem(ctx context.Context, req SingleItemRequest, clientName string) (*StageResult, error) {
	if strings.TrimSpace(clientName) == "" {
		return nil, ErrBlankClientName
	}

	item, err := cart.NewLineItem(req.ProductID, req.Name, req.ThumbnailRef, req.UnitPrice, req.PreviousPrice, req.Promotional, 1)
	if err != nil {
		return nil, err
	}

	// Buy-now attempts are independent requests: a one-off nonce per call.
	redirect, err := uc.stage(ctx, singleItem(item), clientName, uuid.New())
	if err != nil {
		return nil, err
	}

	return &StageResult{RedirectURL: redirect}, nil
}

func (uc *checkoutCommandsImpl) stage(ctx context.Context, source cartSource, clientName string, nonce uuid.UUID) (string, error) {
	products := make([]shared.StagingProduct, len(source.items))
	for i, it := range source.items {
		products[i] = shared.StagingProduct{
			ProductID:    it.ProductID,
			Description:  it.Name,
			ThumbnailRef: it.ThumbnailRef,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
		}
	}

	return uc.gateway.Stage(ctx, shared.StagingRequest{
		ClientName:  strings.TrimSpace(clientName),
		Products:    products,
		TotalAmount: source.total,
		Currency:    uc.currency,
		Nonce:       nonce,
	})
}

// currentNonce falls back to a one-off nonce when the store misbehaves;
// losing dedup across retries is better than blocking checkout.
func (uc *checkoutCommandsImpl) currentNonce(ctx context.Context, sessionID uuid.UUID) uuid.UUID {
	nonce, err := uc.nonces.Current(ctx, sessionID)
	if err != nil {
		uc.logger.Warn("failed to load staging nonce, using one-off",
			"session_id", sessionID.String(), "error", err.Error())
		return uuid.New()
	}
	return nonce
}
