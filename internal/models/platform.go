package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlatformConfig is the single process-wide configuration row for the
// ticketing system (the seeder creates exactly one).
type PlatformConfig struct {
	ID                uint   `gorm:"primaryKey"`
	OwnerAddress      string `gorm:"size:42;not null"`
	CommissionRate    int64  `gorm:"not null"`
	CommissionAddress string `gorm:"size:42;not null"`
	Paused            bool   `gorm:"not null"`
	UpdatedAt         time.Time
}

// ArtistConfig is the companion splitter's configuration row. It has its
// own owner and platform payee, independent of the ticketing system.
type ArtistConfig struct {
	ID              uint   `gorm:"primaryKey"`
	OwnerAddress    string `gorm:"size:42;not null"`
	PlatformAddress string `gorm:"size:42;not null"`
	CommissionRate  int64  `gorm:"not null"`
	UpdatedAt       time.Time
}

// PaymentLimit bounds a single artist payment per currency. Invariant on
// every update: MinAmount > 0, MaxAmount > MinAmount,
// VerifiedMaxAmount > MaxAmount.
type PaymentLimit struct {
	Currency          Currency        `gorm:"primaryKey;size:8"`
	MinAmount         decimal.Decimal `gorm:"type:decimal(38,18);not null"`
	MaxAmount         decimal.Decimal `gorm:"type:decimal(38,18);not null"`
	VerifiedMaxAmount decimal.Decimal `gorm:"type:decimal(38,18);not null"`
	UpdatedAt         time.Time
}

// VerifiedPayer marks an address as a verified counterparty, unlocking the
// higher payment ceiling.
type VerifiedPayer struct {
	Address   string `gorm:"primaryKey;size:42"`
	CreatedAt time.Time
}
