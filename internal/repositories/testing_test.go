package repositories

import (
	"testing"

	"github.com/kkh1902/promptsave-sub001/pkg/config"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens a migrated in-memory SQLite database that lives for the test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.OpenRelational("sqlite::memory:", false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
