package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftiax/smartContract/internal/helpers"
	"github.com/craftiax/smartContract/internal/middleware"
)

type ApproveRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// ApproveToken pre-authorizes the custody address to pull stable-coin from
// the caller, the out-of-band step a paid stable-coin mint requires.
func ApproveToken(c *gin.Context) {
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	amount, err := helpers.ParseAmount(req.Amount)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid amount.")
		return
	}

	token := middleware.GetStableToken(c)
	custody := middleware.GetCustodyAddress(c)
	if token == nil || custody == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Token ledger not found.")
		return
	}

	if err := token.Approve(c.Request.Context(), caller, custody, amount); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to set allowance.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Allowance updated successfully."})
}
