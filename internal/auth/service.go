package auth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/simskyeconomy/simsky-core/internal/account"
	"github.com/simskyeconomy/simsky-core/internal/config"
	"github.com/simskyeconomy/simsky-core/internal/geo"
	"github.com/simskyeconomy/simsky-core/internal/notify"
)

// RequestContext carries the request facts the guard may persist on a
// lockout transition.
type RequestContext struct {
	SourceIP string
}

// Result is a successfully established session.
type Result struct {
	AccountID    uint
	ProfileID    uint
	SessionToken string
}

// Service is the credential guard: it authenticates an identifier plus
// secret, tracks failed attempts, and enforces the sticky lockout.
type Service struct {
	config   *config.AuthConfig
	log      *zap.Logger
	accounts account.Repository
	geo      geo.Resolver
	sender   notify.Sender
	sessions *SessionManager
}

func NewService(config *config.AuthConfig, log *zap.Logger, accounts account.Repository, resolver geo.Resolver, sender notify.Sender, sessions *SessionManager) *Service {
	return &Service{
		config:   config,
		log:      log,
		accounts: accounts,
		geo:      resolver,
		sender:   sender,
		sessions: sessions,
	}
}

// Authenticate runs the full login state machine. The lock check comes
// before secret verification, so locked accounts never touch bcrypt and
// never move the counter.
func (s *Service) Authenticate(ctx context.Context, identifier, secret string, reqCtx RequestContext) (*Result, error) {
	if err := validateCredentials(identifier, secret); err != nil {
		return nil, err
	}

	acct, err := s.resolveIdentifier(identifier)
	if err != nil {
		// Burn a hash to keep unknown identifiers indistinguishable by
		// timing.
		_, _ = account.HashSecret("dummy")
		return nil, ErrInvalidCredentials
	}

	profile, err := s.accounts.GetProfileByAccountID(acct.ID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if profile.Locked {
		s.log.Info("login refused, account locked", zap.String("username", acct.Username))
		return nil, account.ErrLocked
	}

	if !account.CheckSecret(secret, acct.PasswordHash) {
		return nil, s.recordFailure(ctx, acct, profile, reqCtx)
	}

	if !profile.EmailVerified {
		return nil, &EmailNotVerifiedError{AccountID: acct.ID}
	}

	if err := s.accounts.ResetLoginAttempts(profile.ID); err != nil {
		s.log.Error("failed to reset login attempts",
			zap.String("username", acct.Username),
			zap.Error(err))
	}

	sessionToken, err := s.sessions.Establish(acct.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to establish session: %w", err)
	}

	s.log.Info("login successful", zap.String("username", acct.Username))
	return &Result{
		AccountID:    acct.ID,
		ProfileID:    profile.ID,
		SessionToken: sessionToken,
	}, nil
}

// resolveIdentifier maps a handle or an email to the account. An
// "@"-marked identifier is tried as an email first, then as a handle.
func (s *Service) resolveIdentifier(identifier string) (*account.Account, error) {
	if strings.Contains(identifier, "@") {
		if profile, err := s.accounts.GetProfileByEmail(identifier); err == nil {
			return s.accounts.GetAccountByID(profile.AccountID)
		}
		if acct, err := s.accounts.GetAccountByEmail(identifier); err == nil {
			return acct, nil
		}
	}
	return s.accounts.GetAccountByUsername(identifier)
}

// recordFailure bumps the attempt counter atomically and, at the
// threshold, flips the profile into the locked state with the captured
// failure context. Geolocation and the notification are both
// best-effort and cannot fail the transition.
func (s *Service) recordFailure(ctx context.Context, acct *account.Account, profile *account.Profile, reqCtx RequestContext) error {
	attempts, err := s.accounts.IncrementLoginAttempts(profile.ID)
	if err != nil {
		s.log.Error("failed to update login attempts",
			zap.String("username", acct.Username),
			zap.Error(err))
		return ErrInvalidCredentials
	}

	s.log.Info("failed login attempt",
		zap.String("username", acct.Username),
		zap.Int("attempts", attempts))

	if attempts < s.config.MaxLoginAttempts {
		return ErrInvalidCredentials
	}

	location := s.geo.Lookup(ctx, reqCtx.SourceIP)
	failure := account.FailureContext{
		IP:        reqCtx.SourceIP,
		Location:  location.Name,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
	}

	if err := s.accounts.Lock(profile.ID, failure); err != nil {
		s.log.Error("failed to lock account",
			zap.String("username", acct.Username),
			zap.Error(err))
		return ErrInvalidCredentials
	}

	s.log.Warn("account locked after repeated failures",
		zap.String("username", acct.Username),
		zap.String("ip", reqCtx.SourceIP),
		zap.String("location", location.Name))

	// Persisted first, notified after.
	if err := s.sender.Send(ctx, notify.LockoutEmail(acct.Username, profile.Email, reqCtx.SourceIP, location)); err != nil {
		s.log.Warn("failed to send lockout email",
			zap.String("username", acct.Username),
			zap.Error(err))
	}

	return account.ErrLocked
}

func validateCredentials(identifier, secret string) error {
	if len(identifier) < 3 || len(identifier) > 150 {
		return fmt.Errorf("%w: identifier must be between 3 and 150 characters", ErrValidation)
	}
	if len(secret) < 8 || len(secret) > 128 {
		return fmt.Errorf("%w: password must be between 8 and 128 characters", ErrValidation)
	}
	return nil
}
