// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/xpbeats/xpbeats-backend/internal/models"
)

type OrderService struct {
	db       *gorm.DB
	checkout CheckoutProvider
	storage  *StorageService
}

func NewOrderService(db *gorm.DB, checkout CheckoutProvider, storage *StorageService) *OrderService {
	return &OrderService{db: db, checkout: checkout, storage: storage}
}

// CartItemInput is one (beat, tier) line submitted at checkout. Prices are
// never accepted from the client; they are re-read from the catalog.
type CartItemInput struct {
	BeatID      uuid.UUID          `json:"beat_id" validate:"required"`
	LicenseType models.LicenseType `json:"license_type" validate:"required"`
}

// CheckoutResult is what the storefront needs to hand the customer over to
// the hosted payment page.
type CheckoutResult struct {
	OrderID     uuid.UUID `json:"order_id"`
	SessionID   string    `json:"session_id"`
	CheckoutURL string    `json:"checkout_url"`
}

// CreateOrder validates the submitted cart against the live catalog, records
// a PENDING order with server-side prices and opens a checkout session for
// it. If the payment provider rejects the session request the order is
// marked FAILED so it never fulfills.
func (s *OrderService) CreateOrder(userID uuid.UUID, email, name string, items []CartItemInput) (*CheckoutResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidInput)
	}

	type resolvedLine struct {
		beat  models.Beat
		tier  models.LicenseType
		price float64
	}

	lines := make([]resolvedLine, 0, len(items))
	var total float64
	for _, item := range items {
		if !item.LicenseType.Valid() {
			return nil, fmt.Errorf("%w: unknown license type %q", ErrInvalidInput, item.LicenseType)
		}

		var beat models.Beat
		if err := s.db.Where("id = ? AND is_active = ?", item.BeatID, true).First(&beat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: beat %s", ErrNotFound, item.BeatID)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}

		price, ok := beat.PriceForLicense(item.LicenseType)
		if !ok || price <= 0 {
			return nil, fmt.Errorf("%w: %s license not offered for beat %s", ErrInvalidInput, item.LicenseType, item.BeatID)
		}

		lines = append(lines, resolvedLine{beat: beat, tier: item.LicenseType, price: price})
		total += price
	}

	order := &models.Order{
		UserID:        userID,
		CustomerEmail: email,
		CustomerName:  name,
		Total:         total,
		Status:        models.OrderStatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for _, line := range lines {
			item := models.OrderItem{
				OrderID:     order.ID,
				BeatID:      line.beat.ID,
				LicenseType: line.tier,
				Price:       line.price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sessionReq := CheckoutSessionRequest{
		OrderID:       order.ID.String(),
		CustomerEmail: email,
	}
	for _, line := range lines {
		sessionReq.LineItems = append(sessionReq.LineItems, CheckoutLineItem{
			Name:        line.beat.Title,
			Description: fmt.Sprintf("%s License", line.tier),
			Price:       line.price,
		})
	}

	result, err := s.checkout.CreateSession(sessionReq)
	if err != nil {
		if updErr := s.db.Model(order).Update("status", models.OrderStatusFailed).Error; updErr != nil {
			logrus.WithError(updErr).WithField("order_id", order.ID).Error("Failed to mark order FAILED after session error")
		}
		return nil, fmt.Errorf("%w: checkout session: %v", ErrUpstreamFailure, err)
	}

	if err := s.db.Model(order).Update("stripe_session_id", result.SessionID).Error; err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Failed to record checkout session id")
	}

	return &CheckoutResult{
		OrderID:     order.ID,
		SessionID:   result.SessionID,
		CheckoutURL: result.URL,
	}, nil
}

// CheckoutCompletedEvent is the subset of a completed-checkout notification
// fulfillment needs, decoupled from the payment provider's event types.
type CheckoutCompletedEvent struct {
	OrderID         string
	PaymentIntentID string
}

// downloadFallback maps each purchased tier to the file tiers tried in
// order when resolving the deliverable. Higher tiers include every lesser
// deliverable, so a missing premium master still yields the basic file.
var downloadFallback = map[models.LicenseType][]models.LicenseType{
	models.LicenseTypeBasic:     {models.LicenseTypeBasic},
	models.LicenseTypePremium:   {models.LicenseTypePremium, models.LicenseTypeBasic},
	models.LicenseTypeUnlimited: {models.LicenseTypeUnlimited, models.LicenseTypePremium, models.LicenseTypeBasic},
	models.LicenseTypeExclusive: {models.LicenseTypeExclusive, models.LicenseTypeUnlimited, models.LicenseTypeBasic},
}

// ResolveDownloadURL picks the stored asset URL for a purchased tier,
// walking the fallback chain until a non-empty URL turns up. Unknown tiers
// resolve like BASIC.
func ResolveDownloadURL(beat *models.Beat, tier models.LicenseType) string {
	chain, ok := downloadFallback[tier]
	if !ok {
		chain = downloadFallback[models.LicenseTypeBasic]
	}
	for _, t := range chain {
		if u := beat.FileURLForLicense(t); u != "" {
			return u
		}
	}
	return ""
}

// FulfillCheckoutSession completes the order named by a verified
// checkout.session.completed event: records the payment reference, resolves
// each line's download URL and counts the downloads. Redelivered events for
// an already completed order are no-ops, and events naming unknown orders
// are logged and swallowed so the webhook still acknowledges.
func (s *OrderService) FulfillCheckoutSession(event CheckoutCompletedEvent) error {
	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		logrus.WithField("order_id", event.OrderID).Warn("Checkout event carried unparseable order id")
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items.Beat").Where("id = ?", orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.WithField("order_id", orderID).Warn("Checkout event named unknown order")
				return nil
			}
			return fmt.Errorf("database error: %w", err)
		}

		if order.Status == models.OrderStatusCompleted {
			return nil
		}

		updates := map[string]interface{}{
			"status":            models.OrderStatusCompleted,
			"stripe_payment_id": event.PaymentIntentID,
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to complete order: %w", err)
		}

		for i := range order.Items {
			item := &order.Items[i]
			if item.Beat.ID == uuid.Nil {
				logrus.WithFields(logrus.Fields{
					"order_id": orderID,
					"beat_id":  item.BeatID,
				}).Error("Order item references missing beat, skipping download grant")
				continue
			}

			url := ResolveDownloadURL(&item.Beat, item.LicenseType)
			if err := tx.Model(item).Update("download_url", url).Error; err != nil {
				return fmt.Errorf("failed to record download URL: %w", err)
			}
			if err := tx.Model(&models.Beat{}).Where("id = ?", item.BeatID).
				UpdateColumn("downloads", gorm.Expr("downloads + ?", 1)).Error; err != nil {
				return fmt.Errorf("failed to update download count: %w", err)
			}
		}

		logrus.WithFields(logrus.Fields{
			"order_id": orderID,
			"items":    len(order.Items),
		}).Info("Order fulfilled")
		return nil
	})
}

// GetUserOrders returns the caller's completed orders, newest first, with
// line items and their beats attached. Pending and failed orders stay out
// of the purchase history.
func (s *OrderService) GetUserOrders(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items.Beat").
		Where("user_id = ? AND status = ?", userID, models.OrderStatusCompleted).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// SignItemURLs replaces each item's stored download URL with a presigned
// link for delivery. The stored value is left untouched.
func (s *OrderService) SignItemURLs(orders []models.Order) {
	if s.storage == nil {
		return
	}
	for i := range orders {
		for j := range orders[i].Items {
			item := &orders[i].Items[j]
			item.DownloadURL = s.storage.SignedDownloadURL(item.DownloadURL)
		}
	}
}
