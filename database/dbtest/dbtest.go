// Package dbtest opens throwaway SQLite databases with the full schema for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/psharishgithub/open-space-platform-pro/database"
	"github.com/psharishgithub/open-space-platform-pro/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated database stored in the test's temp directory.
func Open(t testing.TB) database.Database {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "openspace.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database.New(db)
}
