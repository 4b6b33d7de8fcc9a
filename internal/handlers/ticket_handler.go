package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/craftiax/smartContract/internal/helpers"
	"github.com/craftiax/smartContract/internal/middleware"
	"github.com/craftiax/smartContract/internal/ticketing"
)

type MintTicketRequest struct {
	EventKey string `json:"event_key" binding:"required"`
	TierKey  string `json:"tier_key" binding:"required"`
	// Recipient defaults to the caller.
	Recipient string `json:"recipient"`
	// AttachedValue is the native value sent with the call, as a decimal
	// string; it must match the price exactly for ETH events.
	AttachedValue string `json:"attached_value"`
}

func MintTicket(c *gin.Context) {
	var req MintTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	recipient := caller
	if req.Recipient != "" {
		parsed, err := helpers.ParseAddress(req.Recipient)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid recipient address.")
			return
		}
		recipient = parsed
	}
	attached, err := helpers.ParseAmount(req.AttachedValue)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid attached value.")
		return
	}

	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	tokenID, err := svc.MintTicket(c.Request.Context(), ticketing.MintInput{
		EventKey:  req.EventKey,
		TierKey:   req.TierKey,
		Recipient: recipient,
		Payer:     caller,
		Attached:  attached,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Ticket minted successfully.",
		"token_id": tokenID,
	})
}

type BurnTicketRequest struct {
	EventKey string `json:"event_key" binding:"required"`
	TierKey  string `json:"tier_key" binding:"required"`
}

func BurnTicket(c *gin.Context) {
	var req BurnTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	if err := svc.BurnTicket(c.Request.Context(), caller, req.EventKey, req.TierKey); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket burned successfully."})
}

// GenerateTicketQR renders a QR code proving the caller holds a ticket of
// the tier; the payload is HMAC-signed so gate scanners can verify it
// offline.
func GenerateTicketQR(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	eventKey := c.Param("key")
	tierKey := c.Param("tier")

	held, err := svc.TicketBalance(c.Request.Context(), eventKey, tierKey, caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if held == 0 {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't hold a ticket of this tier.")
		return
	}

	qrData := helpers.TicketQRData(eventKey, tierKey, caller, os.Getenv("JWT_SECRET"))
	png, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
