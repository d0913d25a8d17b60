package reputation

import "time"

// Tier is a named reputation bracket defined by a minimum score floor.
// Tiers partition the score line into contiguous ranges.
type Tier struct {
	ID       uint   `gorm:"primaryKey"`
	MinScore int    `gorm:"not null"`
	Grade    string `gorm:"size:2;not null"`
}

func (Tier) TableName() string {
	return "reputation_tiers"
}

// TypeDef is a scoring rule: every event references one and inherits
// its point value.
type TypeDef struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:50;not null"`
	Description string `gorm:"size:100"`
	Points      int    `gorm:"not null"`
}

func (TypeDef) TableName() string {
	return "reputation_types"
}

// Event is one entry of the append-only reputation ledger. Never
// mutated after creation.
type Event struct {
	ID        uint   `gorm:"primaryKey"`
	Ref       string `gorm:"size:13;not null"`
	ProfileID uint   `gorm:"index;not null"`
	TypeID    uint   `gorm:"not null"`
	Type      TypeDef
	ScoreDate time.Time `gorm:"type:date;index;not null"`
	Reason    string    `gorm:"size:50"`
}

func (Event) TableName() string {
	return "reputation_events"
}
