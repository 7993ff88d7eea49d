package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

var (
	mu    sync.Mutex
	conns = map[string]*sql.DB{}
)

// GetDB returns the archive database at path, opening and migrating it on
// first use.
func GetDB(path string) (*sql.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if db, ok := conns[path]; ok {
		return db, nil
	}

	// Ensure the data directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	conns[path] = db
	return db, nil
}

// Close closes every open database connection.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	var firstErr error
	for path, db := range conns {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(conns, path)
	}
	return firstErr
}
