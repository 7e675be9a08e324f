package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftlink/craftlink-api/config"
	"github.com/craftlink/craftlink-api/services"
)

// WebhookSignatureHeader carries the provider's hex HMAC-SHA256 of the raw body.
const WebhookSignatureHeader = "X-Webhook-Signature"

// WebhookRequest represents the provider callback payload
type WebhookRequest struct {
	ProviderRef string `json:"provider_ref"`
	Status      string `json:"status"`
}

// PaymentWebhook handles POST /api/payments/webhook - reconciles an inbound
// provider callback into payment and booking state. The signature is verified
// against the raw body before anything is parsed or mutated.
func PaymentWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		log.Printf("Failed to read webhook body: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	cfg := config.GetConfig()
	signature := c.GetHeader(WebhookSignatureHeader)
	if !services.VerifyWebhookSignature(cfg.WebhookSecret, body, signature) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_signature"})
		return
	}

	var req WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil || req.ProviderRef == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	db := config.GetDB()
	if _, err := services.ReconcilePayment(db, req.ProviderRef, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_status"})
		case errors.Is(err, services.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "payment_not_found"})
		default:
			log.Printf("Failed to reconcile payment %s: %v", req.ProviderRef, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
