// internal/services/testdb_test.go
package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xpbeats/xpbeats-backend/internal/models"
)

// newTestDB opens an in-memory database migrated with the full schema.
// A single connection keeps the in-memory store alive across the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

	return db
}

func createTestBeat(t *testing.T, db *gorm.DB, beat *models.Beat) *models.Beat {
	t.Helper()
	require.NoError(t, db.Create(beat).Error)
	return beat
}
