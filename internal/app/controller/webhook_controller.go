package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/flamingdiva/flamingdiva-backend/internal/app/service"
	"github.com/flamingdiva/flamingdiva-backend/internal/middleware"
)

type WebhookController struct {
	webhookService service.WebhookService
}

func NewWebhookController(webhookService service.WebhookService) *WebhookController {
	return &WebhookController{
		webhookService: webhookService,
	}
}

// HandleStripeWebhook receives signed payment events. The raw body is needed
// for signature verification, so the payload is read before any decoding.
// Only an unverifiable payload is rejected; once verified, the provider
// always gets a 200 so the event is not redelivered.
// POST /api/webhook
func (ctrl *WebhookController) HandleStripeWebhook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Warn("Failed to read webhook body", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook Error: could not read body"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := ctrl.webhookService.ProcessEvent(c.Request.Context(), payload, signature); err != nil {
		if errors.Is(err, service.ErrInvalidWebhookSignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook Error: signature verification failed"})
			return
		}
		log.Error("Webhook processing failed", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook Error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
