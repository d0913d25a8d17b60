package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simskyeconomy/simsky-core/internal/config"
)

// maxIssueAttempts bounds the regenerate-on-collision loop. The random
// spaces are large enough that a second attempt is already rare.
const maxIssueAttempts = 5

// Store issues and redeems time-boxed, single-use opaque tokens.
type Store struct {
	config *config.TokenConfig
	log    *zap.Logger
	repo   Repository
	now    func() time.Time
}

func NewStore(config *config.TokenConfig, log *zap.Logger, repo Repository) *Store {
	return &Store{
		config: config,
		log:    log,
		repo:   repo,
		now:    time.Now,
	}
}

// Issue persists a fresh token for the account with the configured
// validity window. The opaque value is regenerated on collision.
func (s *Store) Issue(accountID uint, kind Kind) (*Token, error) {
	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		now := s.now()
		t := &Token{
			AccountID: accountID,
			Kind:      kind,
			Value:     newValue(kind),
			CreatedAt: now,
			ExpiresAt: now.Add(s.config.TTL),
		}

		err := s.repo.Create(t)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, errValueTaken) {
			return nil, err
		}
		s.log.Warn("token value collision, regenerating",
			zap.String("kind", string(kind)),
			zap.Int("attempt", attempt+1))
	}
	return nil, fmt.Errorf("failed to issue unique %s token", kind)
}

// Consume redeems a token. Expired tokens are deleted on detection and
// reported as ErrExpired; valid tokens are deleted before the owning
// account id is returned, so a second redemption always misses.
func (s *Store) Consume(value string, kind Kind) (*Token, error) {
	t, err := s.lookup(value, kind)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// Peek runs the same lookup and expiry check as Consume without
// redeeming the token. Expired tokens are still deleted.
func (s *Store) Peek(value string, kind Kind) (*Token, error) {
	return s.lookup(value, kind)
}

func (s *Store) lookup(value string, kind Kind) (*Token, error) {
	t, err := s.repo.GetByValue(value, kind)
	if err != nil {
		return nil, err
	}

	if t.Expired(s.now()) {
		if err := s.repo.Delete(t.ID); err != nil {
			s.log.Error("failed to delete expired token",
				zap.String("kind", string(kind)),
				zap.Error(err))
		}
		return nil, ErrExpired
	}
	return t, nil
}

func newValue(kind Kind) string {
	if kind == KindVerification {
		return uuid.NewString()
	}

	// Reset tokens are short fixed-length hex strings.
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in no state to
		// continue issuing security tokens.
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return hex.EncodeToString(buf)
}
