package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/simskyeconomy/simsky-core/internal/account"
	"github.com/simskyeconomy/simsky-core/internal/api"
	"github.com/simskyeconomy/simsky-core/internal/auth"
	"github.com/simskyeconomy/simsky-core/internal/config"
	"github.com/simskyeconomy/simsky-core/internal/reputation"
	"github.com/simskyeconomy/simsky-core/internal/token"
)

type Server struct {
	config     *config.AppConfig
	log        *zap.Logger
	httpServer *http.Server
}

type Params struct {
	fx.In

	Config            *config.AppConfig
	Logger            *zap.Logger
	AccountHandler    *account.Handler
	AuthHandler       *auth.Handler
	TokenHandler      *token.Handler
	ReputationHandler *reputation.Handler
	SessionMiddleware *auth.SessionMiddleware
}

func NewServer(p Params) *Server {
	loginLimiter := NewRateLimiter(&p.Config.RateLimit)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Post(api.SignupPath, p.AccountHandler.Signup)
	r.With(loginLimiter.Middleware).Post(api.LoginPath, p.AuthHandler.Login)

	r.Post(api.PasswordResetRequestPath, p.TokenHandler.RequestPasswordReset)
	r.Get(api.PasswordResetPath, p.TokenHandler.CheckPasswordReset)
	r.Post(api.PasswordResetPath, p.TokenHandler.CompletePasswordReset)
	r.Get(api.VerifyEmailPath, p.TokenHandler.CheckEmailVerification)
	r.Post(api.VerifyEmailPath, p.TokenHandler.CompleteEmailVerification)
	r.Post(api.ResendVerificationPath, p.TokenHandler.ResendVerification)

	r.Group(func(r chi.Router) {
		r.Use(p.SessionMiddleware.Require)
		r.Get(api.ReputationPath, p.ReputationHandler.GetStanding)
	})

	addr := fmt.Sprintf("%s:%s", p.Config.Server.Host, p.Config.Server.Port)

	return &Server{
		config: p.Config,
		log:    p.Logger,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		zap.String("address", s.httpServer.Addr),
		zap.Object("config", serverConfigToField(s.config)),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

func serverConfigToField(config *config.AppConfig) zapcore.ObjectMarshaler {
	return zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddString("environment", os.Getenv("APP_ENV"))
		enc.AddString("public_base_url", config.Server.PublicBaseURL)
		enc.AddInt("rate_limit_rpm", config.RateLimit.RequestsPerMinute)
		enc.AddInt("max_login_attempts", config.Auth.MaxLoginAttempts)
		return nil
	})
}

func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
