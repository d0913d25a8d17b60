package reputation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simskyeconomy/simsky-core/internal/account"
)

var testToday = time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

func newTestLogger(t *testing.T) *zap.Logger {
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	return logger
}

func newTestService(t *testing.T, repo *mockRepository) *Service {
	svc := NewService(newTestLogger(t), repo)
	svc.now = func() time.Time { return testToday.Add(14 * time.Hour) }
	return svc
}

func standardTiers() []Tier {
	return []Tier{
		{ID: 1, Grade: "F-", MinScore: 0},
		{ID: 2, Grade: "F", MinScore: 100},
		{ID: 3, Grade: "E-", MinScore: 250},
	}
}

func seedProfile(repo *mockRepository, score int, tierID uint) *account.Profile {
	profile := &account.Profile{ID: 1, AccountID: 10, Score: score, ReputationTierID: tierID}
	repo.addProfile(profile)
	return profile
}

func TestService_TierResolution(t *testing.T) {
	tests := []struct {
		name         string
		score        int
		wantGrade    string
		wantNextMin  *int
		wantProgress float64
	}{
		{
			name:         "mid tier",
			score:        150,
			wantGrade:    "F",
			wantNextMin:  intPtr(250),
			wantProgress: 33.3,
		},
		{
			name:         "exactly at floor",
			score:        100,
			wantGrade:    "F",
			wantNextMin:  intPtr(250),
			wantProgress: 0.0,
		},
		{
			name:         "top tier",
			score:        300,
			wantGrade:    "E-",
			wantProgress: 100.0,
		},
		{
			name:         "exactly at top floor",
			score:        250,
			wantGrade:    "E-",
			wantProgress: 100.0,
		},
		{
			name:         "below lowest floor falls back",
			score:        -5,
			wantGrade:    "F-",
			wantNextMin:  intPtr(100),
			wantProgress: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			repo.addTiers(standardTiers()...)
			seedProfile(repo, tt.score, 1)
			svc := newTestService(t, repo)

			standing, err := svc.ComputeStanding(1, 10, "all", 1)
			require.NoError(t, err)

			assert.Equal(t, tt.score, standing.TotalScore)
			assert.Equal(t, tt.wantGrade, standing.Grade)
			assert.Equal(t, tt.wantNextMin, standing.NextMinScore)
			assert.Equal(t, tt.wantProgress, standing.ProgressPercent)
		})
	}
}

func TestService_ProgressBounds(t *testing.T) {
	repo := newMockRepository()
	repo.addTiers(standardTiers()...)
	profile := seedProfile(repo, 0, 1)
	svc := newTestService(t, repo)

	for score := -20; score <= 400; score += 7 {
		profile.Score = score
		standing, err := svc.ComputeStanding(1, 10, "all", 1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, standing.ProgressPercent, 0.0, "score %d", score)
		assert.LessOrEqual(t, standing.ProgressPercent, 100.0, "score %d", score)
	}
}

func TestService_TierResolutionMonotonic(t *testing.T) {
	repo := newMockRepository()
	repo.addTiers(standardTiers()...)
	profile := seedProfile(repo, 0, 1)
	svc := newTestService(t, repo)

	prevMin := -1 << 30
	for score := 0; score <= 400; score += 10 {
		profile.Score = score
		standing, err := svc.ComputeStanding(1, 10, "all", 1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, standing.CurrentMinScore, prevMin, "score %d", score)
		prevMin = standing.CurrentMinScore
	}
}

func TestService_DegenerateAdjacentTiers(t *testing.T) {
	repo := newMockRepository()
	repo.addTiers(
		Tier{ID: 1, Grade: "F-", MinScore: 0},
		Tier{ID: 2, Grade: "F", MinScore: 0},
	)
	seedProfile(repo, 0, 1)
	svc := newTestService(t, repo)

	// Both floors are 0 so the range collapses; resolveTiers picks the
	// later floor as current, leaving no next tier.
	standing, err := svc.ComputeStanding(1, 10, "all", 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, standing.ProgressPercent)
}

func TestService_WriteThroughTierCache(t *testing.T) {
	repo := newMockRepository()
	repo.addTiers(standardTiers()...)
	seedProfile(repo, 150, 1) // stale: stored F-, actual F
	svc := newTestService(t, repo)

	_, err := svc.ComputeStanding(1, 10, "all", 1)
	require.NoError(t, err)
	assert.Equal(t, uint(2), repo.tierUpdates[1])

	// A second read with a fresh cache does not rewrite.
	repo.tierUpdates = map[uint]uint{}
	_, err = svc.ComputeStanding(1, 10, "all", 1)
	require.NoError(t, err)
	assert.Empty(t, repo.tierUpdates)
}

func TestService_RollingWindowSubtotals(t *testing.T) {
	repo := newMockRepository()
	repo.addTiers(standardTiers()...)
	seedProfile(repo, 500, 3)
	svc := newTestService(t, repo)

	eventDays := []struct {
		daysAgo int
		points  int
	}{
		{0, 10},
		{10, 5},
		{45, 3},
		{70, 2},
	}
	for i, e := range eventDays {
		require.NoError(t, repo.CreateEvent(&Event{
			Ref:       fmt.Sprintf("evt-%d", i),
			ProfileID: 1,
			Type:      TypeDef{Points: e.points},
			ScoreDate: testToday.AddDate(0, 0, -e.daysAgo),
		}))
	}

	standing, err := svc.ComputeStanding(1, 10, "all", 1)
	require.NoError(t, err)
	assert.Equal(t, 15, standing.Score30)
	assert.Equal(t, 18, standing.Score60)
	assert.Equal(t, 20, standing.Score90)

	// The authoritative total is the profile counter, not an event sum.
	assert.Equal(t, 500, standing.TotalScore)

	// A period filter narrows the displayed ledger but not the
	// subtotals.
	filtered, err := svc.ComputeStanding(1, 10, "30", 1)
	require.NoError(t, err)
	assert.Len(t, filtered.Events, 2)
	assert.Equal(t, 15, filtered.Score30)
	assert.Equal(t, 20, filtered.Score90)
}

func TestService_Pagination(t *testing.T) {
	repo := newMockRepository()
	repo.addTiers(standardTiers()...)
	seedProfile(repo, 0, 1)
	svc := newTestService(t, repo)

	for i := 0; i < 65; i++ {
		require.NoError(t, repo.CreateEvent(&Event{
			ProfileID: 1,
			Type:      TypeDef{Points: 1},
			ScoreDate: testToday.AddDate(0, 0, -i),
		}))
	}

	tests := []struct {
		name      string
		page      int
		wantPage  int
		wantCount int
	}{
		{name: "first page", page: 1, wantPage: 1, wantCount: 30},
		{name: "last page partial", page: 3, wantPage: 3, wantCount: 5},
		{name: "beyond range clamps down", page: 99, wantPage: 3, wantCount: 5},
		{name: "below range clamps up", page: 0, wantPage: 1, wantCount: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			standing, err := svc.ComputeStanding(1, 10, "all", tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, standing.Page)
			assert.Equal(t, 3, standing.TotalPages)
			assert.Len(t, standing.Events, tt.wantCount)
		})
	}
}

func TestService_Forbidden(t *testing.T) {
	repo := newMockRepository()
	repo.addTiers(standardTiers()...)
	seedProfile(repo, 0, 1)
	svc := newTestService(t, repo)

	_, err := svc.ComputeStanding(1, 99, "all", 1)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_ProfileNotFound(t *testing.T) {
	repo := newMockRepository()
	repo.addTiers(standardTiers()...)
	svc := newTestService(t, repo)

	_, err := svc.ComputeStanding(42, 10, "all", 1)
	assert.ErrorIs(t, err, account.ErrProfileNotFound)
}

func intPtr(v int) *int {
	return &v
}
