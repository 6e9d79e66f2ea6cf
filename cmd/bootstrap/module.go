package bootstrap

import (
	"cart-engine/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	RedisModule,
	SessionModule,
	components.StoreModule,
	components.UseCaseModule,
	components.HandlerModule,
)
