package ticketing

import "errors"

var (
	ErrEventExists    = errors.New("event key already exists")
	ErrEventNotFound  = errors.New("event not found")
	ErrEventInactive  = errors.New("event is not active")
	ErrEventNotOnSale = errors.New("event is not published for sale")
	ErrSaleNotStarted = errors.New("sale has not started")
	ErrSaleEnded      = errors.New("sale has ended")

	ErrTierNotFound     = errors.New("tier not found")
	ErrTierInactive     = errors.New("tier is not active")
	ErrSoldOut          = errors.New("tier is sold out")
	ErrMintQuotaReached = errors.New("per-user mint quota reached")
	ErrNothingToBurn    = errors.New("caller holds no ticket of this tier")
	ErrCounterUnderflow = errors.New("inventory counter underflow")

	ErrNotOrganizer  = errors.New("caller is not the event organizer")
	ErrNotOwner      = errors.New("caller is not the contract owner")
	ErrPaused        = errors.New("contract is paused")
	ErrNotPaused     = errors.New("contract is not paused")
	ErrReentrantCall = errors.New("reentrant call rejected")

	ErrEmptyKey          = errors.New("empty identifier")
	ErrInvalidAddress    = errors.New("invalid address")
	ErrInvalidRecipient  = errors.New("invalid recipient address")
	ErrInvalidTimeRange  = errors.New("event end must be after start")
	ErrSaleEndPast       = errors.New("sale end must be in the future")
	ErrTierCount         = errors.New("tier count out of range")
	ErrDuplicateTier     = errors.New("duplicate tier key")
	ErrPriceOutOfRange   = errors.New("price out of range")
	ErrZeroSupply        = errors.New("tier supply must be positive")
	ErrUserCapRange      = errors.New("per-user cap must be in (0, supply]")
	ErrCommissionRange   = errors.New("commission rate out of range")
	ErrCommissionDelta   = errors.New("commission rate change too large")
	ErrSameAddress       = errors.New("address must differ from current")
)
