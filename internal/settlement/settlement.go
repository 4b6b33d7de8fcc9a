// Package settlement collects a payment from a payer and splits it between
// a payee and the platform commission address. Both legs of a split move
// inside the caller's transaction context: a failed leg rolls back the
// collection too, so no partial-settlement state can exist.
package settlement

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/craftiax/smartContract/internal/ledger"
	"github.com/craftiax/smartContract/internal/models"
)

var (
	ErrInvalidPayer        = errors.New("invalid payer address")
	ErrIncorrectValue      = errors.New("attached value does not match amount")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// BasisPoints is the denominator of every commission rate.
const BasisPoints = 10000

var zeroAddress = common.Address{}.Hex()

// IsZeroAddress reports whether addr is empty or the zero address.
func IsZeroAddress(addr string) bool {
	return addr == "" || addr == zeroAddress
}

// Split divides amount into the commission leg (floored at prec fractional
// digits) and the payout leg. The two always sum back to amount exactly.
func Split(amount decimal.Decimal, rate int64, prec int32) (commission, payout decimal.Decimal) {
	commission = amount.Mul(decimal.NewFromInt(rate)).Shift(-4).Truncate(prec)
	payout = amount.Sub(commission)
	return commission, payout
}

// Engine owns the custody address payments pass through. Native amounts
// are display units; stable-coin amounts are base units (callers scale
// before collecting).
type Engine struct {
	native  ledger.NativeLedger
	token   ledger.TokenLedger
	custody string
	log     zerolog.Logger
}

func NewEngine(native ledger.NativeLedger, token ledger.TokenLedger, custody string, log zerolog.Logger) *Engine {
	return &Engine{native: native, token: token, custody: custody, log: log}
}

// Custody returns the address holding collected funds between the collect
// and distribute legs of a call.
func (e *Engine) Custody() string {
	return e.custody
}

// Token exposes the stable-coin collaborator (for price scaling).
func (e *Engine) Token() ledger.TokenLedger {
	return e.token
}

// Collect pulls amount from the payer into custody. A zero amount succeeds
// without touching either ledger. The native path demands the attached
// value match the amount exactly; the stable path pulls against the
// payer's pre-authorized allowance.
func (e *Engine) Collect(ctx context.Context, payer string, amount decimal.Decimal, currency models.Currency, attached decimal.Decimal) error {
	if IsZeroAddress(payer) {
		return ErrInvalidPayer
	}
	if amount.IsZero() {
		return nil
	}

	switch currency {
	case models.CurrencyETH:
		if !attached.Equal(amount) {
			return ErrIncorrectValue
		}
		return e.native.Transfer(ctx, payer, e.custody, amount)
	case models.CurrencyUSDC:
		bal, err := e.token.BalanceOf(ctx, payer)
		if err != nil {
			return err
		}
		if bal.LessThan(amount) {
			return ledger.ErrInsufficientBalance
		}
		return e.token.TransferFrom(ctx, e.custody, payer, e.custody, amount)
	default:
		return ErrUnsupportedCurrency
	}
}

// Distribute splits amount held in custody between payee and the
// commission address at rate basis points. A zero amount is a no-op.
func (e *Engine) Distribute(ctx context.Context, payee string, amount decimal.Decimal, currency models.Currency, rate int64, commissionAddr string) error {
	if amount.IsZero() {
		return nil
	}

	prec := int32(18)
	if currency == models.CurrencyUSDC {
		prec = 0
	}
	commission, payout := Split(amount, rate, prec)

	var err error
	switch currency {
	case models.CurrencyETH:
		if err = e.native.Transfer(ctx, e.custody, commissionAddr, commission); err == nil {
			err = e.native.Transfer(ctx, e.custody, payee, payout)
		}
	case models.CurrencyUSDC:
		if err = e.token.Transfer(ctx, e.custody, commissionAddr, commission); err == nil {
			err = e.token.Transfer(ctx, e.custody, payee, payout)
		}
	default:
		return ErrUnsupportedCurrency
	}
	if err != nil {
		return err
	}

	e.log.Info().
		Str("payee", payee).
		Str("currency", string(currency)).
		Str("amount", amount.String()).
		Str("commission", commission.String()).
		Int64("rate_bps", rate).
		Msg("settlement distributed")
	return nil
}

// Sweep moves the full custodial balance in both currencies to the given
// recipient and reports what moved.
func (e *Engine) Sweep(ctx context.Context, to string) (native, token decimal.Decimal, err error) {
	native, err = e.native.BalanceOf(ctx, e.custody)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if err = e.native.Transfer(ctx, e.custody, to, native); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	token, err = e.token.BalanceOf(ctx, e.custody)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if err = e.token.Transfer(ctx, e.custody, to, token); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return native, token, nil
}
