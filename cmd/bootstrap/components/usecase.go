package components

import (
	"log/slog"

	"cart-engine/internal/pkg/clock"
	"cart-engine/internal/pkg/config"
	"cart-engine/internal/usecase/commands"
	"cart-engine/internal/usecase/queries"
	"cart-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewCartHydrator,
)

func NewCartHydrator(store shared.SnapshotStore, clk clock.Clock, cfg config.Config, logger *slog.Logger) *shared.CartHydrator {
	return shared.NewCartHydrator(store, clk, cfg.Cart.SnapshotTTL, logger)
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCartCommands,
		NewCheckoutCommands,
	),
)

func NewCheckoutCommands(hydrator *shared.CartHydrator, store shared.SnapshotStore, nonces shared.NonceStore, gateway shared.StagingGateway, cfg config.Config, logger *slog.Logger) commands.CheckoutCommands {
	return commands.NewCheckoutCommands(hydrator, store, nonces, gateway, cfg.Staging.Currency, logger)
}

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCartQueries,
	),
)
