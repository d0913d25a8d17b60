package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simskyeconomy/simsky-core/internal/config"
)

func newTestLogger(t *testing.T) *zap.Logger {
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	return logger
}

func newTestStore(t *testing.T, repo Repository) *Store {
	return NewStore(&config.TokenConfig{TTL: 30 * time.Minute}, newTestLogger(t), repo)
}

func TestStore_IssueValueShapes(t *testing.T) {
	store := newTestStore(t, newMockRepository())

	reset, err := store.Issue(1, KindReset)
	require.NoError(t, err)
	assert.Len(t, reset.Value, 12)

	verification, err := store.Issue(1, KindVerification)
	require.NoError(t, err)
	assert.Len(t, verification.Value, 36)

	assert.Equal(t, reset.CreatedAt.Add(30*time.Minute), reset.ExpiresAt)
}

func TestStore_ConsumeWithinWindow(t *testing.T) {
	repo := newMockRepository()
	store := newTestStore(t, repo)

	issued, err := store.Issue(7, KindReset)
	require.NoError(t, err)

	store.now = func() time.Time { return issued.CreatedAt.Add(29 * time.Minute) }

	consumed, err := store.Consume(issued.Value, KindReset)
	require.NoError(t, err)
	assert.Equal(t, uint(7), consumed.AccountID)
	assert.Equal(t, 0, repo.count())
}

func TestStore_ConsumeExpired(t *testing.T) {
	repo := newMockRepository()
	store := newTestStore(t, repo)

	issued, err := store.Issue(7, KindReset)
	require.NoError(t, err)

	store.now = func() time.Time { return issued.CreatedAt.Add(31 * time.Minute) }

	_, err = store.Consume(issued.Value, KindReset)
	assert.ErrorIs(t, err, ErrExpired)

	// Expiry detection deletes the record.
	assert.Equal(t, 0, repo.count())
	_, err = store.Consume(issued.Value, KindReset)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ConsumeIsSingleUse(t *testing.T) {
	store := newTestStore(t, newMockRepository())

	issued, err := store.Issue(7, KindVerification)
	require.NoError(t, err)

	_, err = store.Consume(issued.Value, KindVerification)
	require.NoError(t, err)

	_, err = store.Consume(issued.Value, KindVerification)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_PeekDoesNotRedeem(t *testing.T) {
	repo := newMockRepository()
	store := newTestStore(t, repo)

	issued, err := store.Issue(7, KindReset)
	require.NoError(t, err)

	_, err = store.Peek(issued.Value, KindReset)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.count())

	_, err = store.Consume(issued.Value, KindReset)
	assert.NoError(t, err)
}

func TestStore_KindsDoNotCross(t *testing.T) {
	store := newTestStore(t, newMockRepository())

	issued, err := store.Issue(7, KindReset)
	require.NoError(t, err)

	_, err = store.Consume(issued.Value, KindVerification)
	assert.ErrorIs(t, err, ErrNotFound)
}

type collidingRepository struct {
	*mockRepository
	collisions int
}

func (r *collidingRepository) Create(t *Token) error {
	if r.collisions > 0 {
		r.collisions--
		return errValueTaken
	}
	return r.mockRepository.Create(t)
}

func TestStore_IssueRegeneratesOnCollision(t *testing.T) {
	repo := &collidingRepository{mockRepository: newMockRepository(), collisions: 2}
	store := newTestStore(t, repo)

	issued, err := store.Issue(7, KindReset)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Value)
}

func TestStore_IssueGivesUpAfterMaxAttempts(t *testing.T) {
	repo := &collidingRepository{mockRepository: newMockRepository(), collisions: maxIssueAttempts}
	store := newTestStore(t, repo)

	_, err := store.Issue(7, KindReset)
	assert.Error(t, err)
}
