package reputation

import (
	"sort"
	"sync"

	"github.com/simskyeconomy/simsky-core/internal/account"
)

type mockRepository struct {
	mu          sync.Mutex
	tiers       []Tier
	events      []Event
	profiles    map[uint]*account.Profile
	tierUpdates map[uint]uint
	nextEventID uint
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		profiles:    make(map[uint]*account.Profile),
		tierUpdates: make(map[uint]uint),
		nextEventID: 1,
	}
}

func (r *mockRepository) addProfile(p *account.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
}

func (r *mockRepository) addTiers(tiers ...Tier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tiers = append(r.tiers, tiers...)
}

func (r *mockRepository) ListTiers() ([]Tier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Tier, len(r.tiers))
	copy(out, r.tiers)
	sort.Slice(out, func(i, j int) bool { return out[i].MinScore < out[j].MinScore })
	return out, nil
}

func (r *mockRepository) LowestTier() (*Tier, error) {
	tiers, _ := r.ListTiers()
	if len(tiers) == 0 {
		return nil, ErrNoTiers
	}
	return &tiers[0], nil
}

func (r *mockRepository) ListEvents(profileID uint) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Event
	for _, e := range r.events {
		if e.ProfileID == profileID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScoreDate.After(out[j].ScoreDate) })
	return out, nil
}

func (r *mockRepository) CreateEvent(event *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = r.nextEventID
	r.nextEventID++
	r.events = append(r.events, *event)
	return nil
}

func (r *mockRepository) GetProfile(profileID uint) (*account.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[profileID]
	if !ok {
		return nil, account.ErrProfileNotFound
	}
	return p, nil
}

func (r *mockRepository) UpdateProfileTier(profileID, tierID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[profileID]
	if !ok {
		return account.ErrProfileNotFound
	}
	p.ReputationTierID = tierID
	r.tierUpdates[profileID] = tierID
	return nil
}
