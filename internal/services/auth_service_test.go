// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/xpbeats/xpbeats-backend/internal/config"
	"github.com/xpbeats/xpbeats-backend/internal/models"
	"github.com/xpbeats/xpbeats-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	s.svc = NewAuthService(s.db, cfg)
}

func (s *AuthServiceTestSuite) TestRegisterAndLogin() {
	user, tokens, err := s.svc.Register("Buyer@Example.com", "Buyer", "correct horse battery")
	s.Require().NoError(err)
	s.Equal("buyer@example.com", user.Email)
	s.Equal(models.UserRoleUser, user.Role)
	s.NotEmpty(tokens.AccessToken)
	s.NotEmpty(tokens.RefreshToken)

	claims, err := utils.ValidateJWT(tokens.AccessToken)
	s.Require().NoError(err)
	s.Equal(user.ID.String(), claims.UserID)
	s.Equal("USER", claims.Role)

	loggedIn, _, err := s.svc.Login("buyer@example.com", "correct horse battery")
	s.Require().NoError(err)
	s.Equal(user.ID, loggedIn.ID)
	s.NotNil(loggedIn.LastLoginAt)
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	_, _, err := s.svc.Register("buyer@example.com", "Buyer", "password123")
	s.Require().NoError(err)

	_, _, err = s.svc.Register("buyer@example.com", "Again", "password456")
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *AuthServiceTestSuite) TestLoginBadCredentials() {
	_, _, err := s.svc.Register("buyer@example.com", "Buyer", "password123")
	s.Require().NoError(err)

	_, _, err = s.svc.Login("buyer@example.com", "wrong")
	s.ErrorIs(err, ErrUnauthorized)

	_, _, err = s.svc.Login("nobody@example.com", "password123")
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestRefreshTokens() {
	_, tokens, err := s.svc.Register("buyer@example.com", "Buyer", "password123")
	s.Require().NoError(err)

	fresh, err := s.svc.RefreshTokens(tokens.RefreshToken)
	s.Require().NoError(err)
	s.NotEmpty(fresh.AccessToken)

	_, err = s.svc.RefreshTokens("garbage")
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestGetProfile() {
	user, _, err := s.svc.Register("buyer@example.com", "Buyer", "password123")
	s.Require().NoError(err)

	profile, err := s.svc.GetProfile(user.ID)
	s.Require().NoError(err)
	s.Equal("Buyer", profile.Name)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
