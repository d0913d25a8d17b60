package token

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simskyeconomy/simsky-core/internal/account"
	"github.com/simskyeconomy/simsky-core/internal/config"
	"github.com/simskyeconomy/simsky-core/internal/notify"
)

type serviceFixture struct {
	service  *Service
	store    *Store
	tokens   *mockRepository
	accounts *account.MemoryRepository
	sender   *notify.RecordingSender
	acct     *account.Account
	profile  *account.Profile
}

func newServiceFixture(t *testing.T) *serviceFixture {
	tokens := newMockRepository()
	accounts := account.NewMemoryRepository()
	sender := notify.NewRecordingSender()

	hash, err := account.HashSecret("originalpass1")
	require.NoError(t, err)

	acct := &account.Account{Username: "bobpilot", Email: "bob@example.com", PasswordHash: hash}
	profile := &account.Profile{FirstName: "Bob", Email: "bob@example.com"}
	require.NoError(t, accounts.CreateAccount(acct, profile))

	store := NewStore(&config.TokenConfig{TTL: 30 * time.Minute}, newTestLogger(t), tokens)
	svc := NewService(
		&config.ServerConfig{PublicBaseURL: "https://simsky.test"},
		newTestLogger(t), store, accounts, sender,
	)

	return &serviceFixture{
		service:  svc,
		store:    store,
		tokens:   tokens,
		accounts: accounts,
		sender:   sender,
		acct:     acct,
		profile:  profile,
	}
}

func TestService_RequestReset(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		setup      func(*serviceFixture)
		wantErr    error
	}{
		{
			name:       "by username",
			identifier: "bobpilot",
		},
		{
			name:       "by email",
			identifier: "bob@example.com",
		},
		{
			name:       "unknown identifier",
			identifier: "nobody",
			wantErr:    account.ErrAccountNotFound,
		},
		{
			name:       "locked account refused",
			identifier: "bobpilot",
			setup: func(f *serviceFixture) {
				require.NoError(t, f.accounts.Lock(f.profile.ID, account.FailureContext{IP: "203.0.113.7"}))
			},
			wantErr: account.ErrLocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			err := f.service.RequestReset(context.Background(), tt.identifier)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, f.tokens.count())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1, f.tokens.count())

			messages := f.sender.Messages()
			require.Len(t, messages, 1)
			assert.Equal(t, "bob@example.com", messages[0].RecipientEmail)
			assert.Contains(t, messages[0].Body, "https://simsky.test/password-reset/")
		})
	}
}

func TestService_CompleteReset(t *testing.T) {
	f := newServiceFixture(t)

	issued, err := f.store.Issue(f.acct.ID, KindReset)
	require.NoError(t, err)

	t.Run("mismatched confirmation leaves token intact", func(t *testing.T) {
		err := f.service.CompleteReset(context.Background(), issued.Value, "newpass123", "different")
		assert.ErrorIs(t, err, ErrPasswordMismatch)
		assert.Equal(t, 1, f.tokens.count())
	})

	t.Run("successful reset", func(t *testing.T) {
		err := f.service.CompleteReset(context.Background(), issued.Value, "newpass123", "newpass123")
		require.NoError(t, err)

		acct, err := f.accounts.GetAccountByID(f.acct.ID)
		require.NoError(t, err)
		assert.True(t, account.CheckSecret("newpass123", acct.PasswordHash))
		assert.Equal(t, 0, f.tokens.count())

		messages := f.sender.Messages()
		require.NotEmpty(t, messages)
		assert.Contains(t, messages[len(messages)-1].Subject, "Has Been Reset")
	})

	t.Run("token cannot be reused", func(t *testing.T) {
		err := f.service.CompleteReset(context.Background(), issued.Value, "again1234", "again1234")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_CompleteResetExpired(t *testing.T) {
	f := newServiceFixture(t)

	issued, err := f.store.Issue(f.acct.ID, KindReset)
	require.NoError(t, err)
	f.store.now = func() time.Time { return issued.CreatedAt.Add(31 * time.Minute) }

	err = f.service.CompleteReset(context.Background(), issued.Value, "newpass123", "newpass123")
	assert.ErrorIs(t, err, ErrExpired)

	// Secret is untouched and the token record is gone.
	acct, err := f.accounts.GetAccountByID(f.acct.ID)
	require.NoError(t, err)
	assert.True(t, account.CheckSecret("originalpass1", acct.PasswordHash))
	assert.Equal(t, 0, f.tokens.count())
}

func TestService_CompleteVerification(t *testing.T) {
	f := newServiceFixture(t)

	issued, err := f.store.Issue(f.acct.ID, KindVerification)
	require.NoError(t, err)

	err = f.service.CompleteVerification(context.Background(), issued.Value)
	require.NoError(t, err)

	profile, err := f.accounts.GetProfileByAccountID(f.acct.ID)
	require.NoError(t, err)
	assert.True(t, profile.EmailVerified)
	assert.Equal(t, 0, f.tokens.count())

	err = f.service.CompleteVerification(context.Background(), issued.Value)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_SendVerification(t *testing.T) {
	f := newServiceFixture(t)

	err := f.service.SendVerification(context.Background(), f.acct.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.tokens.count())

	messages := f.sender.Messages()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Body, "https://simsky.test/verify-email/")

	link := messages[0].Body[strings.Index(messages[0].Body, "https://simsky.test/verify-email/"):]
	link = link[:strings.Index(link, `"`)]
	value := strings.TrimPrefix(link, "https://simsky.test/verify-email/")
	assert.NoError(t, f.service.PeekVerification(value))

	err = f.service.SendVerification(context.Background(), 999)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestService_SendVerificationDeliveryFailureIsSwallowed(t *testing.T) {
	f := newServiceFixture(t)
	f.sender.Err = assert.AnError

	err := f.service.SendVerification(context.Background(), f.acct.ID)
	assert.NoError(t, err)
}
