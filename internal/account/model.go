package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the login identity: unique handle, unique email, hashed secret.
type Account struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Account) TableName() string {
	return "accounts"
}

// Profile carries everything the security and reputation state machines
// track for an account. The profile email may diverge from the account
// email until it is verified.
type Profile struct {
	ID               uint `gorm:"primaryKey"`
	AccountID        uint `gorm:"uniqueIndex;not null"`
	FirstName        string
	LastName         string
	Email            string
	RegistrationDate time.Time
	ReputationTierID uint
	Score            int
	CashBalance      decimal.Decimal `gorm:"type:numeric(13,2)"`
	FirstAccess      bool
	EmailVerified    bool `gorm:"default:false"`
	LoginAttempts    int  `gorm:"default:0"`
	Locked           bool `gorm:"column:is_locked;default:false"`

	// Failure metadata, set only on the lockout transition.
	LastFailedIP        *string
	LastFailedLocation  *string
	LastFailedLatitude  *float64
	LastFailedLongitude *float64
}

func (Profile) TableName() string {
	return "profiles"
}

// FailureContext is what gets persisted alongside the lock flag.
type FailureContext struct {
	IP        string
	Location  string
	Latitude  *float64
	Longitude *float64
}
