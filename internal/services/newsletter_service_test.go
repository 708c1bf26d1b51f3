// internal/services/newsletter_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/xpbeats/xpbeats-backend/internal/models"
)

type NewsletterServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *NewsletterService
}

func (s *NewsletterServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewNewsletterService(s.db)
}

func (s *NewsletterServiceTestSuite) TestSubscribeNewAddress() {
	sub, err := s.svc.Subscribe("Fan@Example.com", "Fan", "website")
	s.Require().NoError(err)

	s.Equal("fan@example.com", sub.Email)
	s.Equal("website", sub.Source)
	s.True(sub.IsActive)
}

func (s *NewsletterServiceTestSuite) TestSubscribeActiveAddressFails() {
	_, err := s.svc.Subscribe("fan@example.com", "Fan", "website")
	s.Require().NoError(err)

	_, err = s.svc.Subscribe("fan@example.com", "Fan", "website")
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *NewsletterServiceTestSuite) TestSubscribeReactivatesInactive() {
	s.Require().NoError(s.db.Create(&models.EmailSubscriber{
		Email: "fan@example.com", Source: "free_download", IsActive: false,
	}).Error)

	sub, err := s.svc.Subscribe("fan@example.com", "Fan Again", "website")
	s.Require().NoError(err)
	s.True(sub.IsActive)
	s.Equal("Fan Again", sub.Name)
	s.Equal("free_download", sub.Source)
}

func (s *NewsletterServiceTestSuite) TestUnsubscribe() {
	_, err := s.svc.Subscribe("fan@example.com", "Fan", "website")
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Unsubscribe("fan@example.com"))

	var sub models.EmailSubscriber
	s.Require().NoError(s.db.First(&sub, "email = ?", "fan@example.com").Error)
	s.False(sub.IsActive)

	s.ErrorIs(s.svc.Unsubscribe("nobody@example.com"), ErrNotFound)
}

func (s *NewsletterServiceTestSuite) TestListSubscribersExcludesInactive() {
	_, err := s.svc.Subscribe("active@example.com", "", "website")
	s.Require().NoError(err)
	s.Require().NoError(s.db.Create(&models.EmailSubscriber{
		Email: "inactive@example.com", IsActive: false,
	}).Error)

	subs, total, err := s.svc.ListSubscribers(50, 0)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(subs, 1)
	s.Equal("active@example.com", subs[0].Email)
}

func TestNewsletterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NewsletterServiceTestSuite))
}
