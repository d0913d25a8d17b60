package app

import (
	"context"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/simskyeconomy/simsky-core/internal/account"
	"github.com/simskyeconomy/simsky-core/internal/auth"
	"github.com/simskyeconomy/simsky-core/internal/config"
	"github.com/simskyeconomy/simsky-core/internal/database"
	"github.com/simskyeconomy/simsky-core/internal/geo"
	"github.com/simskyeconomy/simsky-core/internal/migration"
	"github.com/simskyeconomy/simsky-core/internal/notify"
	"github.com/simskyeconomy/simsky-core/internal/reputation"
	"github.com/simskyeconomy/simsky-core/internal/server"
	"github.com/simskyeconomy/simsky-core/internal/token"
)

// Module combines all application modules
func Module() fx.Option {
	return fx.Options(
		// Logger
		fx.Provide(newLogger),

		// Configuration
		fx.Provide(server.LoadConfig),

		// Infrastructure
		database.Module(),
		migration.Module(),

		// Outbound integrations
		fx.Provide(
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger) notify.Sender {
					return notify.NewWebhookSender(&config.Notify, log)
				},
			),
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger) geo.Resolver {
					return geo.NewHTTPResolver(&config.Geo, log)
				},
			),
		),

		// Feature modules
		account.NewModule(),
		auth.NewModule(),
		token.NewModule(),
		reputation.NewModule(),

		// Server
		fx.Provide(server.NewServer),

		// Start the server
		fx.Invoke(registerHooks),
	)
}

func newLogger() (*zap.Logger, error) {
	env := os.Getenv("APP_ENV")
	return server.NewLogger(env)
}

func registerHooks(
	lifecycle fx.Lifecycle,
	srv *server.Server,
	log *zap.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil {
					log.Error("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		},
	})
}
