package token

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/simskyeconomy/simsky-core/internal/account"
	"github.com/simskyeconomy/simsky-core/internal/config"
	"github.com/simskyeconomy/simsky-core/internal/notify"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// Service drives the two token workflows: password reset and email
// verification. Notification delivery is best-effort throughout.
type Service struct {
	log      *zap.Logger
	store    *Store
	accounts account.Repository
	sender   notify.Sender
	baseURL  string
}

func NewService(serverConfig *config.ServerConfig, log *zap.Logger, store *Store, accounts account.Repository, sender notify.Sender) *Service {
	return &Service{
		log:      log,
		store:    store,
		accounts: accounts,
		sender:   sender,
		baseURL:  serverConfig.PublicBaseURL,
	}
}

// RequestReset issues a reset token for the account matching the
// identifier (handle or email) and mails the reset link. Locked
// accounts must go through support first.
func (s *Service) RequestReset(ctx context.Context, identifier string) error {
	acct, err := s.accounts.GetAccountByUsername(identifier)
	if errors.Is(err, account.ErrAccountNotFound) {
		acct, err = s.accounts.GetAccountByEmail(identifier)
	}
	if err != nil {
		return err
	}

	profile, err := s.accounts.GetProfileByAccountID(acct.ID)
	if err != nil {
		return err
	}
	if profile.Locked {
		return account.ErrLocked
	}

	t, err := s.store.Issue(acct.ID, KindReset)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/password-reset/%s", s.baseURL, t.Value)
	if err := s.sender.Send(ctx, notify.PasswordResetEmail(acct.Username, profile.Email, link)); err != nil {
		s.log.Warn("failed to send password reset email",
			zap.String("username", acct.Username),
			zap.Error(err))
	}

	s.log.Info("password reset requested", zap.String("username", acct.Username))
	return nil
}

// PeekReset checks a reset token without redeeming it, so a form can be
// shown only for live links.
func (s *Service) PeekReset(value string) error {
	_, err := s.store.Peek(value, KindReset)
	return err
}

// CompleteReset replaces the account secret. The confirmation equality
// check runs before the token is consumed or anything is mutated.
func (s *Service) CompleteReset(ctx context.Context, value, newSecret, confirmSecret string) error {
	t, err := s.store.Peek(value, KindReset)
	if err != nil {
		return err
	}

	if newSecret != confirmSecret {
		return ErrPasswordMismatch
	}

	hash, err := account.HashSecret(newSecret)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.accounts.UpdatePassword(t.AccountID, hash); err != nil {
		return err
	}
	if _, err := s.store.Consume(value, KindReset); err != nil {
		return err
	}

	acct, err := s.accounts.GetAccountByID(t.AccountID)
	if err != nil {
		return err
	}
	profile, err := s.accounts.GetProfileByAccountID(acct.ID)
	if err != nil {
		return err
	}
	if err := s.sender.Send(ctx, notify.PasswordResetConfirmedEmail(acct.Username, profile.Email)); err != nil {
		s.log.Warn("failed to send reset confirmation email",
			zap.String("username", acct.Username),
			zap.Error(err))
	}

	s.log.Info("password reset completed", zap.String("username", acct.Username))
	return nil
}

// PeekVerification checks a verification token without redeeming it.
func (s *Service) PeekVerification(value string) error {
	_, err := s.store.Peek(value, KindVerification)
	return err
}

// CompleteVerification marks the profile email verified, then consumes
// the token and sends the confirmation.
func (s *Service) CompleteVerification(ctx context.Context, value string) error {
	t, err := s.store.Peek(value, KindVerification)
	if err != nil {
		return err
	}

	profile, err := s.accounts.GetProfileByAccountID(t.AccountID)
	if err != nil {
		return err
	}
	if err := s.accounts.VerifyEmail(profile.ID); err != nil {
		return err
	}
	if _, err := s.store.Consume(value, KindVerification); err != nil {
		return err
	}

	acct, err := s.accounts.GetAccountByID(t.AccountID)
	if err != nil {
		return err
	}
	if err := s.sender.Send(ctx, notify.EmailVerifiedEmail(acct.Username, profile.Email)); err != nil {
		s.log.Warn("failed to send verification confirmation email",
			zap.String("username", acct.Username),
			zap.Error(err))
	}

	s.log.Info("email verified", zap.String("username", acct.Username))
	return nil
}

// SendVerification issues a fresh verification token and mails the
// link. Used both at signup and for the resend action.
func (s *Service) SendVerification(ctx context.Context, accountID uint) error {
	acct, err := s.accounts.GetAccountByID(accountID)
	if err != nil {
		return err
	}
	profile, err := s.accounts.GetProfileByAccountID(acct.ID)
	if err != nil {
		return err
	}

	t, err := s.store.Issue(acct.ID, KindVerification)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/verify-email/%s", s.baseURL, t.Value)
	if err := s.sender.Send(ctx, notify.VerificationEmail(acct.Username, profile.Email, link)); err != nil {
		s.log.Warn("failed to send verification email",
			zap.String("username", acct.Username),
			zap.Error(err))
	}
	return nil
}
