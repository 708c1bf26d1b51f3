// internal/services/stripe_checkout.go
package services

import (
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"

	"github.com/xpbeats/xpbeats-backend/internal/config"
)

// CheckoutLineItem is one purchasable line presented on the hosted payment
// page. Price is in the store currency's major unit.
type CheckoutLineItem struct {
	Name        string
	Description string
	Price       float64
}

// CheckoutSessionRequest carries everything the payment provider needs to
// build a hosted checkout session for one order.
type CheckoutSessionRequest struct {
	OrderID       string
	CustomerEmail string
	LineItems     []CheckoutLineItem
}

// CheckoutSessionResult identifies the created session and where to send
// the customer.
type CheckoutSessionResult struct {
	SessionID string
	URL       string
}

// CheckoutProvider creates hosted checkout sessions. The production
// implementation talks to Stripe; tests substitute a fake.
type CheckoutProvider interface {
	CreateSession(req CheckoutSessionRequest) (*CheckoutSessionResult, error)
}

// StripeCheckout implements CheckoutProvider against Stripe Checkout.
type StripeCheckout struct {
	config *config.Config
}

func NewStripeCheckout(cfg *config.Config) *StripeCheckout {
	stripe.Key = cfg.Stripe.SecretKey
	return &StripeCheckout{config: cfg}
}

func (c *StripeCheckout) CreateSession(req CheckoutSessionRequest) (*CheckoutSessionResult, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(c.config.Stripe.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(item.Name),
					Description: stripe.String(item.Description),
				},
				UnitAmount: stripe.Int64(toCents(item.Price)),
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(c.config.Frontend.BaseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(c.config.Frontend.BaseURL + "/checkout/cancel"),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{"order_id": req.OrderID},
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.AddMetadata("order_id", req.OrderID)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe session create: %w", err)
	}

	return &CheckoutSessionResult{SessionID: sess.ID, URL: sess.URL}, nil
}

// toCents converts a major-unit price to the minor unit Stripe expects.
// Rounding guards against float drift on values like 29.99.
func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}
