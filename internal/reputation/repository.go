package reputation

import (
	"errors"

	"gorm.io/gorm"

	"github.com/simskyeconomy/simsky-core/internal/account"
)

var ErrNoTiers = errors.New("no reputation tiers defined")

type Repository interface {
	// ListTiers returns all tiers ordered by min_score ascending.
	ListTiers() ([]Tier, error)
	LowestTier() (*Tier, error)

	// ListEvents returns the full ledger for a profile ordered by
	// score_date descending.
	ListEvents(profileID uint) ([]Event, error)
	CreateEvent(event *Event) error

	GetProfile(profileID uint) (*account.Profile, error)
	UpdateProfileTier(profileID, tierID uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListTiers() ([]Tier, error) {
	var tiers []Tier
	if err := r.db.Order("min_score ASC").Find(&tiers).Error; err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *repository) LowestTier() (*Tier, error) {
	var tier Tier
	if err := r.db.Order("min_score ASC").First(&tier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoTiers
		}
		return nil, err
	}
	return &tier, nil
}

func (r *repository) ListEvents(profileID uint) ([]Event, error) {
	var events []Event
	err := r.db.Preload("Type").
		Where("profile_id = ?", profileID).
		Order("score_date DESC, id DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repository) CreateEvent(event *Event) error {
	return r.db.Create(event).Error
}

func (r *repository) GetProfile(profileID uint) (*account.Profile, error) {
	var profile account.Profile
	if err := r.db.First(&profile, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repository) UpdateProfileTier(profileID, tierID uint) error {
	return r.db.Model(&account.Profile{}).Where("id = ?", profileID).
		Update("reputation_tier_id", tierID).Error
}
