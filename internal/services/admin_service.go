// internal/services/admin_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/xpbeats/xpbeats-backend/internal/models"
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// DashboardStats is the storefront health snapshot shown on the admin
// dashboard. Revenue and sales cover the trailing 30 days; the customer and
// beat counts are totals.
type DashboardStats struct {
	Revenue30d     float64        `json:"revenue_30d"`
	Sales30d       int64          `json:"sales_30d"`
	TotalCustomers int64          `json:"total_customers"`
	ActiveBeats    int64          `json:"active_beats"`
	RecentOrders   []models.Order `json:"recent_orders"`
	TopBeats       []models.Beat  `json:"top_beats"`
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	since := time.Now().AddDate(0, 0, -30)

	completed := s.db.Model(&models.Order{}).
		Where("status = ? AND created_at >= ?", models.OrderStatusCompleted, since)

	if err := completed.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.Revenue30d).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	if err := completed.Session(&gorm.Session{}).Count(&stats.Sales30d).Error; err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}

	if err := s.db.Model(&models.User{}).
		Where("role = ?", models.UserRoleUser).
		Count(&stats.TotalCustomers).Error; err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	if err := s.db.Model(&models.Beat{}).
		Where("is_active = ?", true).
		Count(&stats.ActiveBeats).Error; err != nil {
		return nil, fmt.Errorf("failed to count beats: %w", err)
	}

	if err := s.db.Preload("Items.Beat").
		Where("status = ?", models.OrderStatusCompleted).
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}

	if err := s.db.Where("is_active = ?", true).
		Order("plays DESC, downloads DESC").
		Limit(5).
		Find(&stats.TopBeats).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch top beats: %w", err)
	}

	return stats, nil
}

// ListOrders returns all orders regardless of status for the admin order
// browser, newest first.
func (s *AdminService) ListOrders(limit, offset int) ([]models.Order, int64, error) {
	var total int64
	if err := s.db.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	if err := s.db.Preload("Items.Beat").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, total, nil
}
