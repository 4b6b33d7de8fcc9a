package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier is a priced inventory bucket scoped to one event. Price is held in
// display units (up to 18 fractional digits); SoldCount only moves through
// mint and burn.
type Tier struct {
	EventKey          string          `gorm:"primaryKey;size:64"`
	Key               string          `gorm:"primaryKey;size:64"`
	Position          int             `gorm:"not null"`
	Price             decimal.Decimal `gorm:"type:decimal(38,18);not null"`
	MaxQuantity       uint            `gorm:"not null"`
	SoldCount         uint            `gorm:"not null"`
	MaxTicketsPerUser uint            `gorm:"not null"`
	IsActive          bool            `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// MintCount tracks how many tickets of a tier an address has minted,
// independently of the token ledger balance.
type MintCount struct {
	EventKey  string `gorm:"primaryKey;size:64"`
	TierKey   string `gorm:"primaryKey;size:64"`
	Address   string `gorm:"primaryKey;size:42"`
	Count     uint   `gorm:"not null"`
	UpdatedAt time.Time
}
