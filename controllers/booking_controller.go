package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/craftlink/craftlink-api/config"
	"github.com/craftlink/craftlink-api/services"
)

// CreateBookingRequest represents the request body for creating a booking
type CreateBookingRequest struct {
	UserID          uint       `json:"user_id"`
	ArtisanID       uint       `json:"artisan_id"`
	ServiceCategory string     `json:"service_category"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	Amount          float64    `json:"amount"`
}

// CreateBooking handles POST /api/book - opens a pending booking with its
// payment intent and returns the hosted-checkout redirect URL.
func CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_fields"})
		return
	}
	if req.UserID == 0 || req.ArtisanID == 0 || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_fields"})
		return
	}

	db := config.GetDB()
	result, err := services.CreateBookingWithPayment(db, services.CreateBookingInput{
		UserID:          req.UserID,
		ArtisanID:       req.ArtisanID,
		ServiceCategory: req.ServiceCategory,
		ScheduledAt:     req.ScheduledAt,
		Amount:          req.Amount,
	})
	if err != nil {
		log.Printf("Failed to create booking: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db_error"})
		return
	}

	cfg := config.GetConfig()
	c.JSON(http.StatusOK, gin.H{
		"bookingId":    result.Booking.ID,
		"payment_url":  services.PaymentURL(cfg.FrontendURL, result.Payment.ProviderRef),
		"provider_ref": result.Payment.ProviderRef,
	})
}
