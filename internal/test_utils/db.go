package test_utils

import (
	"database/sql"
	"testing"

	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/database"
)

// SetupTestDB opens an isolated in-memory SQLite database with all migrations
// applied. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := config.Database{Driver: database.DriverSQLite, Path: ":memory:"}
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := database.Migrate(db, cfg); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}
	return db
}
