// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Enums
type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

// LicenseType identifies one of the four pricing tiers, in ascending
// rights scope.
type LicenseType string

const (
	LicenseTypeBasic     LicenseType = "BASIC"
	LicenseTypePremium   LicenseType = "PREMIUM"
	LicenseTypeUnlimited LicenseType = "UNLIMITED"
	LicenseTypeExclusive LicenseType = "EXCLUSIVE"
)

func (lt LicenseType) Valid() bool {
	switch lt {
	case LicenseTypeBasic, LicenseTypePremium, LicenseTypeUnlimited, LicenseTypeExclusive:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusFailed    OrderStatus = "FAILED"
)
