package migration

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}

	if err := RunMigrations(sqlDB); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := RunMigrations(sqlDB); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var applied int
	if err := sqlDB.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("count versions: %v", err)
	}
	if applied != 1 {
		t.Fatalf("expected 1 applied migration, got %d", applied)
	}

	var tables int
	if err := sqlDB.QueryRow(
		`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'cashback_events'`,
	).Scan(&tables); err != nil {
		t.Fatalf("check table: %v", err)
	}
	if tables != 1 {
		t.Fatalf("cashback_events table not created")
	}
}
