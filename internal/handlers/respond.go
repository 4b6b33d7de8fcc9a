package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftiax/smartContract/internal/artistpay"
	"github.com/craftiax/smartContract/internal/helpers"
	"github.com/craftiax/smartContract/internal/ledger"
	"github.com/craftiax/smartContract/internal/settlement"
	"github.com/craftiax/smartContract/internal/ticketing"
)

// respondServiceError maps engine errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ticketing.ErrEventNotFound),
		errors.Is(err, ticketing.ErrTierNotFound):
		helpers.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ticketing.ErrEventExists),
		errors.Is(err, ticketing.ErrSoldOut),
		errors.Is(err, ticketing.ErrMintQuotaReached),
		errors.Is(err, ticketing.ErrReentrantCall),
		errors.Is(err, artistpay.ErrReentrantCall):
		helpers.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ticketing.ErrNotOrganizer),
		errors.Is(err, ticketing.ErrNotOwner),
		errors.Is(err, artistpay.ErrNotOwner):
		helpers.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ticketing.ErrPaused):
		helpers.RespondWithError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrInsufficientAllowance),
		errors.Is(err, settlement.ErrIncorrectValue):
		helpers.RespondWithError(c, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, ticketing.ErrEventInactive),
		errors.Is(err, ticketing.ErrEventNotOnSale),
		errors.Is(err, ticketing.ErrSaleNotStarted),
		errors.Is(err, ticketing.ErrSaleEnded),
		errors.Is(err, ticketing.ErrTierInactive),
		errors.Is(err, ticketing.ErrNothingToBurn),
		errors.Is(err, ticketing.ErrCounterUnderflow),
		errors.Is(err, ticketing.ErrNotPaused),
		errors.Is(err, ticketing.ErrEmptyKey),
		errors.Is(err, ticketing.ErrInvalidAddress),
		errors.Is(err, ticketing.ErrInvalidRecipient),
		errors.Is(err, ticketing.ErrInvalidTimeRange),
		errors.Is(err, ticketing.ErrSaleEndPast),
		errors.Is(err, ticketing.ErrTierCount),
		errors.Is(err, ticketing.ErrDuplicateTier),
		errors.Is(err, ticketing.ErrPriceOutOfRange),
		errors.Is(err, ticketing.ErrZeroSupply),
		errors.Is(err, ticketing.ErrUserCapRange),
		errors.Is(err, ticketing.ErrCommissionRange),
		errors.Is(err, ticketing.ErrCommissionDelta),
		errors.Is(err, ticketing.ErrSameAddress),
		errors.Is(err, settlement.ErrInvalidPayer),
		errors.Is(err, settlement.ErrUnsupportedCurrency),
		errors.Is(err, artistpay.ErrInvalidArtist),
		errors.Is(err, artistpay.ErrInvalidAddress),
		errors.Is(err, artistpay.ErrInvalidAmount),
		errors.Is(err, artistpay.ErrBelowMinimum),
		errors.Is(err, artistpay.ErrAboveMaximum),
		errors.Is(err, artistpay.ErrLimitsNotConfigured),
		errors.Is(err, artistpay.ErrInvalidLimits),
		errors.Is(err, artistpay.ErrCommissionRange),
		errors.Is(err, artistpay.ErrSameAddress):
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Internal error.")
	}
}

// callerAddress returns the wallet address the auth middleware resolved.
func callerAddress(c *gin.Context) (string, bool) {
	address, exists := c.Get("address")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Address not found in token.")
		return "", false
	}
	return address.(string), true
}
