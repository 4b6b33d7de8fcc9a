package models

// RefundFlag records whether an address has been refunded for an event.
// Kept for parity with the on-chain storage layout; no operation reads or
// writes it (there is no refund flow).
type RefundFlag struct {
	EventKey string `gorm:"primaryKey;size:64"`
	Address  string `gorm:"primaryKey;size:42"`
	Refunded bool   `gorm:"not null"`
}
