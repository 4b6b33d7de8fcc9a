package ticketing

import "github.com/shopspring/decimal"

const (
	MaxTiersPerEvent = 10

	// Commission bounds, in basis points.
	MinCommissionRate     = 50
	MaxCommissionRate     = 10000
	MaxCommissionChange   = 200
	DefaultCommissionRate = 250
)

// Ticket price bounds in display units. A zero price is a free tier.
var (
	MinTicketPrice = decimal.Zero
	MaxTicketPrice = decimal.NewFromInt(1_000_000)
)
