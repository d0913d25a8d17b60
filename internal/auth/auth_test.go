package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simskyeconomy/simsky-core/internal/account"
	"github.com/simskyeconomy/simsky-core/internal/config"
	"github.com/simskyeconomy/simsky-core/internal/geo"
	"github.com/simskyeconomy/simsky-core/internal/notify"
)

func newTestLogger(t *testing.T) *zap.Logger {
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	return logger
}

func newTestConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:        "test-secret-key",
		SessionDuration:  time.Hour,
		MaxLoginAttempts: 5,
	}
}

type fixture struct {
	service  *Service
	sessions *SessionManager
	accounts *account.MemoryRepository
	sender   *notify.RecordingSender
	resolver geo.StaticResolver
	acct     *account.Account
	profile  *account.Profile
}

// newFixture seeds one verified account with password "correctpass1".
func newFixture(t *testing.T) *fixture {
	accounts := account.NewMemoryRepository()
	sender := notify.NewRecordingSender()
	resolver := geo.StaticResolver{Loc: geo.Unknown()}
	sessions := NewSessionManager(newTestConfig())

	hash, err := account.HashSecret("correctpass1")
	require.NoError(t, err)

	acct := &account.Account{Username: "bobpilot", Email: "bob@example.com", PasswordHash: hash}
	profile := &account.Profile{FirstName: "Bob", Email: "bob@example.com", EmailVerified: true}
	require.NoError(t, accounts.CreateAccount(acct, profile))

	svc := NewService(newTestConfig(), newTestLogger(t), accounts, resolver, sender, sessions)

	return &fixture{
		service:  svc,
		sessions: sessions,
		accounts: accounts,
		sender:   sender,
		resolver: resolver,
		acct:     acct,
		profile:  profile,
	}
}
