// Package dbtest opens throwaway sqlite stores for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"translation-tracker/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New returns a migrated store backed by a file in t.TempDir().
func New(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tracker.db")
	db, err := database.OpenDialector(sqlite.Open(path + "?_busy_timeout=5000"))
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
