// internal/services/admin_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/xpbeats/xpbeats-backend/internal/models"
)

type AdminServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *AdminService
}

func (s *AdminServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewAdminService(s.db)
}

func (s *AdminServiceTestSuite) createOrder(status models.OrderStatus, total float64, age time.Duration) *models.Order {
	order := &models.Order{
		CustomerEmail: "buyer@example.com",
		Total:         total,
		Status:        status,
	}
	s.Require().NoError(s.db.Create(order).Error)
	if age > 0 {
		s.Require().NoError(s.db.Model(order).UpdateColumn("created_at", time.Now().Add(-age)).Error)
	}
	return order
}

func (s *AdminServiceTestSuite) TestDashboardRevenueWindow() {
	s.createOrder(models.OrderStatusCompleted, 100, 0)
	s.createOrder(models.OrderStatusCompleted, 50, 10*24*time.Hour)
	// Outside the 30-day window
	s.createOrder(models.OrderStatusCompleted, 999, 45*24*time.Hour)
	// Never counted regardless of age
	s.createOrder(models.OrderStatusPending, 70, 0)
	s.createOrder(models.OrderStatusFailed, 30, 0)

	stats, err := s.svc.GetDashboardStats()
	s.Require().NoError(err)

	s.InDelta(150, stats.Revenue30d, 0.001)
	s.Equal(int64(2), stats.Sales30d)
}

func (s *AdminServiceTestSuite) TestDashboardCountsAndLists() {
	for _, u := range []models.User{
		{Email: "a@example.com", PasswordHash: "x", Role: models.UserRoleUser},
		{Email: "b@example.com", PasswordHash: "x", Role: models.UserRoleUser},
		{Email: "admin@example.com", PasswordHash: "x", Role: models.UserRoleAdmin},
	} {
		user := u
		s.Require().NoError(s.db.Create(&user).Error)
	}

	top := createTestBeat(s.T(), s.db, &models.Beat{
		Title: "Hot", Slug: "hot", Genre: "trap", BasicPrice: 20, Plays: 900, IsActive: true,
	})
	createTestBeat(s.T(), s.db, &models.Beat{
		Title: "Cold", Slug: "cold", Genre: "trap", BasicPrice: 20, Plays: 10, IsActive: true,
	})
	createTestBeat(s.T(), s.db, &models.Beat{
		Title: "Gone", Slug: "gone", Genre: "trap", BasicPrice: 20, Plays: 9999, IsActive: false,
	})

	for i := 0; i < 7; i++ {
		s.createOrder(models.OrderStatusCompleted, 10, time.Duration(i)*time.Hour)
	}

	stats, err := s.svc.GetDashboardStats()
	s.Require().NoError(err)

	s.Equal(int64(2), stats.TotalCustomers)
	s.Equal(int64(2), stats.ActiveBeats)
	s.Len(stats.RecentOrders, 5)
	s.Require().NotEmpty(stats.TopBeats)
	s.Equal(top.ID, stats.TopBeats[0].ID)
}

func (s *AdminServiceTestSuite) TestListOrdersIncludesAllStatuses() {
	s.createOrder(models.OrderStatusCompleted, 10, 0)
	s.createOrder(models.OrderStatusPending, 20, 0)
	s.createOrder(models.OrderStatusFailed, 30, 0)

	orders, total, err := s.svc.ListOrders(50, 0)
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(orders, 3)
}

func TestAdminServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
