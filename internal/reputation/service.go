package reputation

import (
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
)

// PageSize is the fixed ledger page length.
const PageSize = 30

// ErrForbidden means the requester does not own the profile.
var ErrForbidden = errors.New("not authorized to view this reputation")

// Standing is the computed reputation view for one profile.
type Standing struct {
	TotalScore      int
	Grade           string
	CurrentMinScore int
	NextMinScore    *int
	ProgressPercent float64
	Score30         int
	Score60         int
	Score90         int
	Events          []Event
	Page            int
	TotalPages      int
	Period          string
}

type Service struct {
	log  *zap.Logger
	repo Repository
	now  func() time.Time
}

func NewService(log *zap.Logger, repo Repository) *Service {
	return &Service{
		log:  log,
		repo: repo,
		now:  time.Now,
	}
}

// ComputeStanding recomputes the tier standing for a profile. The
// period filter only narrows the displayed ledger window; the total
// score and the rolling subtotals always come from the full picture.
func (s *Service) ComputeStanding(profileID, requesterAccountID uint, period string, page int) (*Standing, error) {
	profile, err := s.repo.GetProfile(profileID)
	if err != nil {
		return nil, err
	}
	if profile.AccountID != requesterAccountID {
		return nil, ErrForbidden
	}

	tiers, err := s.repo.ListTiers()
	if err != nil {
		return nil, err
	}
	if len(tiers) == 0 {
		return nil, ErrNoTiers
	}

	events, err := s.repo.ListEvents(profileID)
	if err != nil {
		return nil, err
	}

	totalScore := profile.Score
	current, next := resolveTiers(tiers, totalScore)

	// Write-through correction of the cached tier.
	if profile.ReputationTierID != current.ID {
		if err := s.repo.UpdateProfileTier(profileID, current.ID); err != nil {
			s.log.Error("failed to update cached reputation tier",
				zap.Uint("profile_id", profileID),
				zap.Error(err))
		}
	}

	standing := &Standing{
		TotalScore:      totalScore,
		Grade:           current.Grade,
		CurrentMinScore: current.MinScore,
		ProgressPercent: progressPercent(totalScore, current, next),
		Period:          normalizePeriod(period),
	}
	if next != nil {
		min := next.MinScore
		standing.NextMinScore = &min
	}

	// Rolling subtotals run over the unfiltered ledger.
	today := s.today()
	standing.Score30 = windowSum(events, today.AddDate(0, 0, -30))
	standing.Score60 = windowSum(events, today.AddDate(0, 0, -60))
	standing.Score90 = windowSum(events, today.AddDate(0, 0, -90))

	visible := filterByPeriod(events, standing.Period, today)
	standing.Events, standing.Page, standing.TotalPages = paginate(visible, page)

	return standing, nil
}

// resolveTiers picks the tier with the greatest floor not above the
// score, falling back to the lowest tier, and the tier above it.
func resolveTiers(tiers []Tier, totalScore int) (current *Tier, next *Tier) {
	for i := range tiers {
		if tiers[i].MinScore <= totalScore {
			current = &tiers[i]
		} else if next == nil {
			next = &tiers[i]
		}
	}
	if current == nil {
		current = &tiers[0]
		if len(tiers) > 1 {
			next = &tiers[1]
		} else {
			next = nil
		}
	}
	return current, next
}

func progressPercent(totalScore int, current, next *Tier) float64 {
	if next == nil {
		return 100.0
	}
	scoreRange := next.MinScore - current.MinScore
	if scoreRange <= 0 {
		return 100.0
	}

	percent := float64(totalScore-current.MinScore) / float64(scoreRange) * 100
	percent = math.Round(percent*10) / 10
	return math.Min(math.Max(percent, 0.0), 100.0)
}

func normalizePeriod(period string) string {
	switch period {
	case "30", "60", "90":
		return period
	default:
		return "all"
	}
}

func filterByPeriod(events []Event, period string, today time.Time) []Event {
	days := map[string]int{"30": 30, "60": 60, "90": 90}[period]
	if days == 0 {
		return events
	}

	cutoff := today.AddDate(0, 0, -days)
	filtered := make([]Event, 0, len(events))
	for _, e := range events {
		if !e.ScoreDate.Before(cutoff) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func windowSum(events []Event, cutoff time.Time) int {
	sum := 0
	for _, e := range events {
		if !e.ScoreDate.Before(cutoff) {
			sum += e.Type.Points
		}
	}
	return sum
}

// paginate clamps out-of-range page numbers to the nearest valid page.
func paginate(events []Event, page int) ([]Event, int, int) {
	totalPages := (len(events) + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(events) {
		start = len(events)
	}
	if end > len(events) {
		end = len(events)
	}
	return events[start:end], page, totalPages
}

func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
