// Package testutil builds real, migrated databases for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/templui/contacts/internal/db"
)

// NewDB opens a migrated SQLite database in a temporary directory.
// It is closed when the test finishes.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init(db.DriverSQLite, SQLiteDSN(t))
	if err != nil {
		t.Fatalf("init test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, db.DriverSQLite)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return database
}

// SQLiteDSN returns a DSN for a fresh database file with foreign keys enforced.
func SQLiteDSN(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "contacts.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
