package components

import (
	"cart-engine/internal/handler"
	"cart-engine/internal/handler/api"
	"cart-engine/internal/handler/middleware"
	"cart-engine/internal/pkg/config"
	"cart-engine/internal/pkg/session"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCartHandler,
		api.NewCheckoutHandler,
		NewSessionMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewSessionMiddleware(tokens *session.TokenService, cfg config.Config) *middleware.SessionMiddleware {
	return middleware.NewSessionMiddleware(tokens, cfg.Session)
}
