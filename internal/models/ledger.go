package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NativeAccount holds a native-asset balance in display units.
type NativeAccount struct {
	Address   string          `gorm:"primaryKey;size:42"`
	Balance   decimal.Decimal `gorm:"type:decimal(38,18);not null"`
	UpdatedAt time.Time
}

// TokenAccount holds a stable-coin balance in the token's own base units.
type TokenAccount struct {
	Address   string          `gorm:"primaryKey;size:42"`
	Balance   decimal.Decimal `gorm:"type:decimal(38,0);not null"`
	UpdatedAt time.Time
}

// TokenAllowance is the pull-transfer authorization a payer grants the
// custody address, in base units.
type TokenAllowance struct {
	Owner     string          `gorm:"primaryKey;size:42"`
	Spender   string          `gorm:"primaryKey;size:42"`
	Amount    decimal.Decimal `gorm:"type:decimal(38,0);not null"`
	UpdatedAt time.Time
}

// TokenMetadata is read once at boot; Decimals is trusted thereafter.
type TokenMetadata struct {
	ID       uint   `gorm:"primaryKey"`
	Symbol   string `gorm:"size:16;not null"`
	Decimals int32  `gorm:"not null"`
}

// TicketBalance is the token-identity ledger: balance of a deterministic
// ticket identifier held by an address. All tickets of one tier share one
// identifier.
type TicketBalance struct {
	TokenID   string `gorm:"primaryKey;size:66"`
	Address   string `gorm:"primaryKey;size:42"`
	Balance   uint   `gorm:"not null"`
	UpdatedAt time.Time
}
