package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftiax/smartContract/internal/helpers"
	"github.com/craftiax/smartContract/internal/middleware"
)

type CommissionRateRequest struct {
	RateBps int64 `json:"rate_bps" binding:"required"`
}

func UpdateCommissionRate(c *gin.Context) {
	var req CommissionRateRequest
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

	if err := svc.UpdateCommissionRate(c.Request.Context(), caller, req.RateBps); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Commission rate updated successfully."})
}

type AddressRequest struct {
	Address string `json:"address" binding:"required"`
}

func UpdateCommissionAddress(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	address, err := helpers.ParseAddress(req.Address)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid address.")
		return
	}

	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	if err := svc.UpdateCommissionAddress(c.Request.Context(), caller, address); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Commission address updated successfully."})
}

func Pause(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	if err := svc.Pause(c.Request.Context(), caller); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contract paused."})
}

func Unpause(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	if err := svc.Unpause(c.Request.Context(), caller); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contract unpaused."})
}

type WithdrawRequest struct {
	Recipient string `json:"recipient" binding:"required"`
}

func WithdrawFees(c *gin.Context) {
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	recipient, err := helpers.ParseAddress(req.Recipient)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid recipient address.")
		return
	}

	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	if err := svc.WithdrawFees(c.Request.Context(), caller, recipient); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fees withdrawn successfully."})
}
