package components

import (
	"log/slog"

	"cart-engine/internal/infra/staging"
	"cart-engine/internal/infra/store"
	"cart-engine/internal/pkg/config"
	"cart-engine/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		fx.Annotate(
			NewSnapshotStore,
			fx.As(new(shared.SnapshotStore)),
		),
		fx.Annotate(
			NewNonceStore,
			fx.As(new(shared.NonceStore)),
		),
		fx.Annotate(
			NewStagingGateway,
			fx.As(new(shared.StagingGateway)),
		),
	),
)

func NewSnapshotStore(client *redis.Client, cfg config.Config, logger *slog.Logger) *store.RedisSnapshotStore {
	return store.NewRedisSnapshotStore(client, cfg.Cart.KeyPrefix, cfg.Cart.SnapshotTTL, logger)
}

func NewNonceStore(client *redis.Client, cfg config.Config) *store.RedisNonceStore {
	return store.NewRedisNonceStore(client, cfg.Cart.KeyPrefix, cfg.Cart.SnapshotTTL)
}

func NewStagingGateway(cfg config.Config) *staging.Client {
	return staging.NewClient(cfg.Staging)
}
