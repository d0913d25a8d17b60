package token

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/simskyeconomy/simsky-core/internal/account"
	"github.com/simskyeconomy/simsky-core/internal/config"
	"github.com/simskyeconomy/simsky-core/internal/notify"
)

// NewModule returns the token module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				func(db *gorm.DB) Repository {
					return NewRepository(db)
				},
			),
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger, repo Repository) *Store {
					return NewStore(&config.Token, log, repo)
				},
			),
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger, store *Store, accounts account.Repository, sender notify.Sender) *Service {
					return NewService(&config.Server, log, store, accounts, sender)
				},
			),
			// Signup reuses the verification workflow.
			fx.Annotate(
				func(svc *Service) account.VerificationStarter {
					return svc
				},
			),
			fx.Annotate(
				func(svc *Service, log *zap.Logger) *Handler {
					return NewHandler(svc, log)
				},
			),
		),
	)
}
