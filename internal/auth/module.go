package auth

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/simskyeconomy/simsky-core/internal/account"
	"github.com/simskyeconomy/simsky-core/internal/config"
	"github.com/simskyeconomy/simsky-core/internal/geo"
	"github.com/simskyeconomy/simsky-core/internal/notify"
)

// NewModule returns the auth module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				func(config *config.AppConfig) *SessionManager {
					return NewSessionManager(&config.Auth)
				},
			),
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger, accounts account.Repository, resolver geo.Resolver, sender notify.Sender, sessions *SessionManager) *Service {
					return NewService(&config.Auth, log, accounts, resolver, sender, sessions)
				},
			),
			fx.Annotate(
				func(svc *Service, log *zap.Logger) *Handler {
					return NewHandler(svc, log)
				},
			),
			fx.Annotate(
				func(sessions *SessionManager) *SessionMiddleware {
					return NewSessionMiddleware(sessions)
				},
			),
		),
	)
}
