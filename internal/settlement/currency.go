package settlement

import "github.com/shopspring/decimal"

// ScaleAmount rescales a display-precision amount (18 fractional digits)
// to a token's base units. When the token carries fewer digits than the
// display precision, the excess digits are truncated toward zero; the
// precision loss is accepted, not flagged. Zero maps to zero.
func ScaleAmount(amount decimal.Decimal, decimals int32) decimal.Decimal {
	if amount.IsZero() {
		return decimal.Zero
	}
	return amount.Shift(decimals).Truncate(0)
}
