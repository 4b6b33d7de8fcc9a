package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftiax/smartContract/internal/artistpay"
	"github.com/craftiax/smartContract/internal/helpers"
	"github.com/craftiax/smartContract/internal/middleware"
	"github.com/craftiax/smartContract/internal/models"
)

type PayArtistRequest struct {
	Artist        string `json:"artist" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	Currency      string `json:"currency" binding:"required"`
	AttachedValue string `json:"attached_value"`
}

func PayArtist(c *gin.Context) {
	var req PayArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	artist, err := helpers.ParseAddress(req.Artist)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid artist address.")
		return
	}
	amount, err := helpers.ParseAmount(req.Amount)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid amount.")
		return
	}
	attached, err := helpers.ParseAmount(req.AttachedValue)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid attached value.")
		return
	}

	svc := middleware.GetArtistPayService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Artist payment service not found.")
		return
	}

	err = svc.PayArtist(c.Request.Context(), artistpay.PayInput{
		Artist:   artist,
		Payer:    caller,
		Amount:   amount,
		Currency: models.Currency(req.Currency),
		Attached: attached,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Artist paid successfully."})
}

func UpdateArtistCommissionRate(c *gin.Context) {
	var req CommissionRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	svc := middleware.GetArtistPayService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Artist payment service not found.")
		return
	}

	if err := svc.UpdateCommissionRate(c.Request.Context(), caller, req.RateBps); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Artist commission rate updated successfully."})
}

func UpdatePlatformAddress(c *gin.Context) {
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

	svc := middleware.GetArtistPayService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Artist payment service not found.")
		return
	}

	if err := svc.UpdatePlatformAddress(c.Request.Context(), caller, address); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Platform address updated successfully."})
}

type PaymentLimitsRequest struct {
	Currency    string `json:"currency" binding:"required"`
	Min         string `json:"min" binding:"required"`
	Max         string `json:"max" binding:"required"`
	VerifiedMax string `json:"verified_max" binding:"required"`
}

func SetPaymentLimits(c *gin.Context) {
	var req PaymentLimitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	min, err := helpers.ParseAmount(req.Min)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid minimum amount.")
		return
	}
	max, err := helpers.ParseAmount(req.Max)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid maximum amount.")
		return
	}
	verifiedMax, err := helpers.ParseAmount(req.VerifiedMax)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid verified maximum amount.")
		return
	}

	svc := middleware.GetArtistPayService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Artist payment service not found.")
		return
	}

	err = svc.SetPaymentLimits(c.Request.Context(), caller, models.Currency(req.Currency), min, max, verifiedMax)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment limits updated successfully."})
}

type VerifiedPayerRequest struct {
	Address  string `json:"address" binding:"required"`
	Verified *bool  `json:"verified" binding:"required"`
}

func SetVerifiedPayer(c *gin.Context) {
	var req VerifiedPayerRequest
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

	svc := middleware.GetArtistPayService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Artist payment service not found.")
		return
	}

	if err := svc.SetVerifiedPayer(c.Request.Context(), caller, address, *req.Verified); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verified payer updated successfully."})
}
