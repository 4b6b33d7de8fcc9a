// Package ledger implements the external collaborators the settlement
// engine moves value through: the native-asset balance ledger, the
// stable-coin token ledger, and the ticket-identity balance ledger. All
// three are plain gorm tables so that a settlement participates in the
// same transaction as the registry mutation it pays for.
package ledger

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrNegativeAmount        = errors.New("negative amount")
)

// NativeLedger moves the native asset between addresses. Amounts are in
// display units (18 fractional digits).
type NativeLedger interface {
	BalanceOf(ctx context.Context, addr string) (decimal.Decimal, error)
	Transfer(ctx context.Context, from, to string, amount decimal.Decimal) error
}

// TokenLedger is the stable-coin collaborator. Amounts are in the token's
// base units; Decimals is captured once at construction and trusted
// thereafter.
type TokenLedger interface {
	Decimals() int32
	BalanceOf(ctx context.Context, addr string) (decimal.Decimal, error)
	Transfer(ctx context.Context, from, to string, amount decimal.Decimal) error
	TransferFrom(ctx context.Context, spender, from, to string, amount decimal.Decimal) error
}

// TicketLedger mints and burns unit balances of deterministic ticket
// identifiers.
type TicketLedger interface {
	Mint(ctx context.Context, tokenID, owner string) error
	Burn(ctx context.Context, tokenID, owner string) error
	BalanceOf(ctx context.Context, tokenID, owner string) (uint, error)
}
