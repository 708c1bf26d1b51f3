// internal/services/newsletter_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/xpbeats/xpbeats-backend/internal/models"
)

type NewsletterService struct {
	db *gorm.DB
}

func NewNewsletterService(db *gorm.DB) *NewsletterService {
	return &NewsletterService{db: db}
}

// Subscribe adds the email to the list. A previously unsubscribed address
// is quietly reactivated; an address that is already active is an error so
// the storefront can tell the visitor.
func (s *NewsletterService) Subscribe(email, name, source string) (*models.EmailSubscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if source == "" {
		source = "website"
	}

	var existing models.EmailSubscriber
	err := s.db.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		if existing.IsActive {
			return nil, fmt.Errorf("%w: email is already subscribed", ErrInvalidInput)
		}
		updates := map[string]interface{}{"is_active": true}
		if name != "" {
			updates["name"] = name
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to reactivate subscriber: %w", err)
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub := &models.EmailSubscriber{
			Email:    email,
			Name:     name,
			Source:   source,
			IsActive: true,
		}
		if err := s.db.Create(sub).Error; err != nil {
			return nil, fmt.Errorf("failed to create subscriber: %w", err)
		}
		return sub, nil
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}
}

// Unsubscribe flips the address inactive; unknown addresses are not found.
func (s *NewsletterService) Unsubscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	result := s.db.Model(&models.EmailSubscriber{}).
		Where("email = ?", email).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to unsubscribe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: subscriber %s", ErrNotFound, email)
	}
	return nil
}

// ListSubscribers returns active subscribers, newest first, for the admin
// export view.
func (s *NewsletterService) ListSubscribers(limit, offset int) ([]models.EmailSubscriber, int64, error) {
	query := s.db.Model(&models.EmailSubscriber{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	var subs []models.EmailSubscriber
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&subs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch subscribers: %w", err)
	}
	return subs, total, nil
}
