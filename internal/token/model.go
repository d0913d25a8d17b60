package token

import "time"

// Kind selects the token class. Both kinds share the same expiry and
// single-use semantics; only the opaque value shape differs.
type Kind string

const (
	KindReset        Kind = "reset"
	KindVerification Kind = "verification"
)

type Token struct {
	ID        uint   `gorm:"primaryKey"`
	AccountID uint   `gorm:"index;not null"`
	Kind      Kind   `gorm:"size:16;not null"`
	Value     string `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index;not null"`
}

func (Token) TableName() string {
	return "tokens"
}

func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
