package models

import (
	"time"
)

type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

type Currency string

const (
	CurrencyETH  Currency = "ETH"
	CurrencyUSDC Currency = "USDC"
)

// Event mirrors one event record of the on-chain registry. The key is
// caller-supplied and immutable; the organizer address is set once at
// creation and never reassigned.
type Event struct {
	Key               string `gorm:"primaryKey;size:64"`
	Name              string `gorm:"not null"`
	Description       string
	StartTime         time.Time `gorm:"not null"`
	EndTime           time.Time `gorm:"not null"`
	SaleStart         time.Time `gorm:"not null"`
	SaleEnd           time.Time `gorm:"not null"`
	OrganizerAddress  string    `gorm:"size:42;not null;index"`
	OrganizerUsername string
	Status            EventStatus `gorm:"size:16;not null"`
	Currency          Currency    `gorm:"size:8;not null"`
	IsActive          bool        `gorm:"not null"`
	IsRefundable      bool        `gorm:"not null"`
	Tiers             []Tier      `gorm:"foreignKey:EventKey;references:Key"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
