package account

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simskyeconomy/simsky-core/internal/notify"
)

// ErrInvalidInput wraps every client-fixable signup validation failure.
var ErrInvalidInput = errors.New("invalid input")

var startingCashBalance = decimal.NewFromFloat(5000.00)

// TierRef is the slice of a reputation tier signup needs: the row to
// pin on a fresh profile.
type TierRef struct {
	ID    uint
	Grade string
}

// TierSource yields the tier with the globally smallest floor, assigned
// at signup.
type TierSource interface {
	LowestTier() (TierRef, error)
}

// VerificationStarter issues an email verification token and sends the
// matching notification.
type VerificationStarter interface {
	SendVerification(ctx context.Context, accountID uint) error
}

type Service struct {
	log      *zap.Logger
	repo     Repository
	tiers    TierSource
	verifier VerificationStarter
	sender   notify.Sender
}

func NewService(log *zap.Logger, repo Repository, tiers TierSource, verifier VerificationStarter, sender notify.Sender) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		tiers:    tiers,
		verifier: verifier,
		sender:   sender,
	}
}

type SignupRequest struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// Signup creates the identity and its profile in one transaction, then
// sends the welcome and verification emails. Both emails are
// best-effort; a delivery failure never rolls back the signup.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*Account, error) {
	if err := validateSignup(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetAccountByUsername(req.Username); err == nil {
		return nil, ErrUsernameTaken
	}
	if _, err := s.repo.GetAccountByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashSecret(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tier, err := s.tiers.LowestTier()
	if err != nil {
		return nil, fmt.Errorf("initial reputation tier not found: %w", err)
	}

	acct := &Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	profile := &Profile{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		RegistrationDate: time.Now(),
		ReputationTierID: tier.ID,
		Score:            0,
		CashBalance:      startingCashBalance,
		FirstAccess:      true,
		EmailVerified:    false,
	}

	if err := s.repo.CreateAccount(acct, profile); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if err := s.sender.Send(ctx, notify.WelcomeEmail(acct.Username, profile.FirstName, profile.Email)); err != nil {
		s.log.Warn("failed to send welcome email",
			zap.String("username", acct.Username),
			zap.Error(err))
	}
	if err := s.verifier.SendVerification(ctx, acct.ID); err != nil {
		s.log.Warn("failed to send verification email",
			zap.String("username", acct.Username),
			zap.Error(err))
	}

	s.log.Info("account created",
		zap.String("username", acct.Username),
		zap.String("initial_grade", tier.Grade))
	return acct, nil
}

func validateSignup(req SignupRequest) error {
	if req.Username == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}
	if len(req.Username) < 3 || len(req.Username) > 30 {
		return fmt.Errorf("%w: username must be between 3 and 30 characters", ErrInvalidInput)
	}
	if len(req.Password) < 8 || len(req.Password) > 128 {
		return fmt.Errorf("%w: password must be between 8 and 128 characters", ErrInvalidInput)
	}
	if len(req.FirstName) < 3 || len(req.FirstName) > 30 {
		return fmt.Errorf("%w: first name must be between 3 and 30 characters", ErrInvalidInput)
	}
	if len(req.LastName) < 3 || len(req.LastName) > 30 {
		return fmt.Errorf("%w: last name must be between 3 and 30 characters", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	return nil
}
