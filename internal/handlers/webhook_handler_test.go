// internal/handlers/webhook_handler_test.go
package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xpbeats/xpbeats-backend/internal/config"
	"github.com/xpbeats/xpbeats-backend/internal/models"
	"github.com/xpbeats/xpbeats-backend/internal/services"
)

const testWebhookSecret = "whsec_test_secret"

func newWebhookTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Beat{},
		&models.Order{},
		&models.OrderItem{},
		&models.EmailSubscriber{},
	))

	cfg := &config.Config{
		Stripe: config.StripeConfig{WebhookSecret: testWebhookSecret},
	}

	orderService := services.NewOrderService(db, nil, nil)
	handler := NewWebhookHandler(orderService, cfg)

	r := gin.New()
	r.POST("/v1/webhooks/stripe", handler.HandleStripe)
	return r, db
}

func createPendingOrder(t *testing.T, db *gorm.DB) *models.Order {
	t.Helper()

	beat := &models.Beat{
		Title:        "Midnight Drive",
		Slug:         "midnight-drive",
		Genre:        "trap",
		BasicPrice:   29.99,
		BasicFileURL: "https://assets.example.com/midnight-basic.mp3",
		IsActive:     true,
	}
	require.NoError(t, db.Create(beat).Error)

	order := &models.Order{
		CustomerEmail: "buyer@example.com",
		Total:         29.99,
		Status:        models.OrderStatusPending,
	}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Create(&models.OrderItem{
		OrderID:     order.ID,
		BeatID:      beat.ID,
		LicenseType: models.LicenseTypeBasic,
		Price:       29.99,
	}).Error)

	return order
}

func checkoutCompletedPayload(orderID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"object": "event",
		"api_version": "2022-11-15",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"object": "checkout.session",
				"metadata": {"order_id": %q},
				"payment_intent": "pi_test_1"
			}
		}
	}`, orderID))
}

// signPayload builds a Stripe-Signature header the same way Stripe does:
// an HMAC-SHA256 of "<timestamp>.<body>" keyed with the endpoint secret.
func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func postWebhook(r *gin.Engine, payload []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signature)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	r, db := newWebhookTestServer(t)
	order := createPendingOrder(t, db)
	payload := checkoutCompletedPayload(order.ID.String())

	w := postWebhook(r, payload, signPayload(payload, "whsec_wrong_secret", time.Now()))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, reloaded.Status)
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	r, db := newWebhookTestServer(t)
	order := createPendingOrder(t, db)

	w := postWebhook(r, checkoutCompletedPayload(order.ID.String()), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookRejectsTamperedPayload(t *testing.T) {
	r, db := newWebhookTestServer(t)
	order := createPendingOrder(t, db)
	payload := checkoutCompletedPayload(order.ID.String())

	signature := signPayload(payload, testWebhookSecret, time.Now())
	tampered := bytes.Replace(payload, []byte("pi_test_1"), []byte("pi_evil_9"), 1)

	w := postWebhook(r, tampered, signature)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, reloaded.Status)
}

func TestWebhookCompletesOrder(t *testing.T) {
	r, db := newWebhookTestServer(t)
	order := createPendingOrder(t, db)
	payload := checkoutCompletedPayload(order.ID.String())

	w := postWebhook(r, payload, signPayload(payload, testWebhookSecret, time.Now()))
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Order
	require.NoError(t, db.Preload("Items").First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusCompleted, reloaded.Status)
	assert.Equal(t, "pi_test_1", reloaded.StripePaymentID)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, "https://assets.example.com/midnight-basic.mp3", reloaded.Items[0].DownloadURL)
}

func TestWebhookRedeliveryIsIdempotent(t *testing.T) {
	r, db := newWebhookTestServer(t)
	order := createPendingOrder(t, db)
	payload := checkoutCompletedPayload(order.ID.String())

	w := postWebhook(r, payload, signPayload(payload, testWebhookSecret, time.Now()))
	require.Equal(t, http.StatusOK, w.Code)
	w = postWebhook(r, payload, signPayload(payload, testWebhookSecret, time.Now()))
	assert.Equal(t, http.StatusOK, w.Code)

	var beat models.Beat
	require.NoError(t, db.First(&beat, "slug = ?", "midnight-drive").Error)
	assert.Equal(t, int64(1), beat.Downloads)
}

func TestWebhookAcknowledgesUnknownOrder(t *testing.T) {
	r, _ := newWebhookTestServer(t)
	payload := checkoutCompletedPayload("3f1f0c48-8a49-4f51-9dd5-000000000000")

	w := postWebhook(r, payload, signPayload(payload, testWebhookSecret, time.Now()))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookAcknowledgesUnhandledEventType(t *testing.T) {
	r, _ := newWebhookTestServer(t)
	payload := []byte(`{
		"id": "evt_test_2",
		"object": "event",
		"api_version": "2022-11-15",
		"type": "payment_intent.created",
		"data": {"object": {"id": "pi_test_9", "object": "payment_intent"}}
	}`)

	w := postWebhook(r, payload, signPayload(payload, testWebhookSecret, time.Now()))
	assert.Equal(t, http.StatusOK, w.Code)
}
