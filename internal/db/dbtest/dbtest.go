// Package dbtest opens migrated throwaway SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"warehouse/loadmap/internal/config"
	"warehouse/loadmap/internal/db"
	"warehouse/loadmap/internal/db/migrations"
)

// Open returns a fresh migrated database in t's temp dir, closed on cleanup.
func Open(t testing.TB) (*gorm.DB, *sqlx.DB) {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "loadmaps.db"),
	}
	orm, err := db.OpenORM(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := migrations.Run(orm); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	raw, err := db.OpenSQLX(cfg, orm)
	if err != nil {
		t.Fatalf("Failed to wrap test database: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	return orm, raw
}
