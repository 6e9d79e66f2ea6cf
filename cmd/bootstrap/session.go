package bootstrap

import (
	"cart-engine/internal/pkg/config"
	"cart-engine/internal/pkg/session"

	"go.uber.org/fx"
)

var SessionModule = fx.Module("session",
	fx.Provide(
		NewSessionTokenService,
	),
)

func NewSessionTokenService(cfg config.Config) *session.TokenService {
	return session.NewTokenService(cfg.Session.Secret, cfg.Session.TTL)
}
