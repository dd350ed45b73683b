// Package testutil provides shared helpers for package tests.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/isdelr/typetester-be/internal/database"
)

// NewTestDB opens a migrated in-memory database. Each in-memory connection is
// its own database, so the pool is pinned to a single connection.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}
