package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/craftiax/smartContract/internal/helpers"
	"github.com/craftiax/smartContract/internal/middleware"
	"github.com/craftiax/smartContract/internal/models"
	"github.com/craftiax/smartContract/internal/ticketing"
)

// CreateEventRequest carries the tier attributes as parallel arrays; the
// arrays must be the same length.
type CreateEventRequest struct {
	Key          string   `json:"key" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	StartTime    string   `json:"start_time" binding:"required"`
	EndTime      string   `json:"end_time" binding:"required"`
	SaleEnd      string   `json:"sale_end" binding:"required"`
	Currency     string   `json:"currency" binding:"required"`
	TierKeys     []string `json:"tier_keys" binding:"required"`
	TierPrices   []string `json:"tier_prices" binding:"required"`
	TierSupplies []uint   `json:"tier_supplies" binding:"required"`
	TierUserCaps []uint   `json:"tier_user_caps" binding:"required"`
}

func CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start time format.")
		return
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid end time format.")
		return
	}
	saleEnd, err := time.Parse(time.RFC3339, req.SaleEnd)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid sale end format.")
		return
	}

	n := len(req.TierKeys)
	if len(req.TierPrices) != n || len(req.TierSupplies) != n || len(req.TierUserCaps) != n {
		helpers.RespondWithError(c, http.StatusBadRequest, "Tier arrays must have equal length.")
		return
	}

	tiers := make([]ticketing.TierInput, 0, n)
	for i := 0; i < n; i++ {
		price, err := helpers.ParseAmount(req.TierPrices[i])
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid tier price.")
			return
		}
		tiers = append(tiers, ticketing.TierInput{
			Key:               req.TierKeys[i],
			Price:             price,
			MaxQuantity:       req.TierSupplies[i],
			MaxTicketsPerUser: req.TierUserCaps[i],
		})
	}

	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	event, err := svc.CreateEvent(c.Request.Context(), caller, ticketing.CreateEventInput{
		Key:         req.Key,
		Name:        req.Name,
		Description: req.Description,
		StartTime:   startTime,
		EndTime:     endTime,
		SaleEnd:     saleEnd,
		Currency:    models.Currency(req.Currency),
		Tiers:       tiers,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Event created successfully.",
		"event_key": event.Key,
	})
}

func GetEvent(c *gin.Context) {
	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	event, err := svc.GetEvent(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func ListEvents(c *gin.Context) {
	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	pageNum, err := helpers.StringToInt(c.DefaultQuery("page", "1"))
	if err != nil || pageNum < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}
	limitNum, err := helpers.StringToInt(c.DefaultQuery("limit", "10"))
	if err != nil || limitNum < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	events, total, err := svc.ListEvents(c.Request.Context(), (pageNum-1)*limitNum, limitNum)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      events,
		"total":       total,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (total + int64(limitNum) - 1) / int64(limitNum),
	})
}

type UsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

func SetEventOrganizerUsername(c *gin.Context) {
	var req UsernameRequest
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

	if err := svc.SetEventOrganizerUsername(c.Request.Context(), caller, c.Param("key"), req.Username); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Organizer username updated successfully."})
}

type TierPriceRequest struct {
	Price string `json:"price" binding:"required"`
}

func UpdateTierPrice(c *gin.Context) {
	var req TierPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	price, err := helpers.ParseAmount(req.Price)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid price.")
		return
	}

	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	if err := svc.UpdateTierPrice(c.Request.Context(), caller, c.Param("key"), c.Param("tier"), price); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tier price updated successfully."})
}

func DeactivateEvent(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	svc := middleware.GetTicketingService(c)
	if svc == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Ticketing service not found.")
		return
	}

	if err := svc.DeactivateEvent(c.Request.Context(), caller, c.Param("key")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deactivated successfully."})
}
