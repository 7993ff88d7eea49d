// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. Test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/alchemyrand/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every pooled connection to ":memory:" is a separate database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedKnownEffect inserts one save/ingredient flag row.
func seedKnownEffect(t *testing.T, db *sql.DB, saveID, editorID string, flags int) {
	t.Helper()
	if _, err := db.Exec("INSERT OR IGNORE INTO saves (save_id) VALUES (?)", saveID); err != nil {
		t.Fatalf("failed to seed save: %v", err)
	}
	_, err := db.Exec("INSERT INTO known_effects (save_id, editor_id, flags) VALUES (?, ?, ?)", saveID, editorID, flags)
	if err != nil {
		t.Fatalf("failed to seed known effect: %v", err)
	}
}
