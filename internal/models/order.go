// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

// Order records a checkout. Customer email/name and per-item prices are
// snapshots taken at order creation so later profile or catalog edits do
// not rewrite history. Status is PENDING until a verified payment webhook
// completes it; COMPLETED is terminal.
type Order struct {
	BaseModel
	UserID          uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	CustomerEmail   string      `json:"customer_email" gorm:"size:255;not null"`
	CustomerName    string      `json:"customer_name" gorm:"size:255"`
	Total           float64     `json:"total" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`
	StripeSessionID string      `json:"stripe_session_id,omitempty" gorm:"size:255;index"`
	StripePaymentID string      `json:"stripe_payment_id,omitempty" gorm:"size:255"`

	// Relationships
	User  User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is one purchased license line. DownloadURL stays empty until
// fulfillment resolves it from the beat's tier assets.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID   `json:"order_id" gorm:"type:uuid;not null;index"`
	BeatID      uuid.UUID   `json:"beat_id" gorm:"type:uuid;not null;index"`
	LicenseType LicenseType `json:"license_type" gorm:"type:varchar(20);not null"`
	Price       float64     `json:"price" gorm:"type:decimal(10,2);not null"`
	DownloadURL string      `json:"download_url,omitempty" gorm:"size:1000"`

	// Relationships
	Beat Beat `json:"beat,omitempty" gorm:"foreignKey:BeatID"`
}
