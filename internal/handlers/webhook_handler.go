// internal/handlers/webhook_handler.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"

	"github.com/xpbeats/xpbeats-backend/internal/config"
	"github.com/xpbeats/xpbeats-backend/internal/services"
)

const maxWebhookBodyBytes = 65536

type WebhookHandler struct {
	orderService *services.OrderService
	config       *config.Config
}

func NewWebhookHandler(orderService *services.OrderService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{orderService: orderService, config: cfg}
}

// HandleStripe handles POST /v1/webhooks/stripe. The signature is verified
// over the raw body before any parsing; unsigned or tampered payloads get
// 400 and change nothing. Event types we do not act on are acknowledged
// with 200 so Stripe stops retrying them.
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.config.Stripe.WebhookSecret)
	if err != nil {
		logrus.WithError(err).Warn("Rejected webhook with invalid signature")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			logrus.WithError(err).Error("Failed to parse checkout session from webhook")
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
			return
		}

		completed := services.CheckoutCompletedEvent{
			OrderID: session.Metadata["order_id"],
		}
		if session.PaymentIntent != nil {
			completed.PaymentIntentID = session.PaymentIntent.ID
		}

		if err := h.orderService.FulfillCheckoutSession(completed); err != nil {
			logrus.WithError(err).WithField("order_id", completed.OrderID).Error("Order fulfillment failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fulfillment failed"})
			return
		}
	default:
		logrus.WithField("type", event.Type).Debug("Ignoring unhandled webhook event type")
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
