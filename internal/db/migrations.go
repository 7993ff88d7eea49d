package db

import (
	"database/sql"
	"fmt"
)

// Migration is one forward schema change.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_known_effects",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_known_effects_editor_index",
		Up:      migrationV2,
	},
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// RunMigrations executes all pending migrations
func RunMigrations(db *sql.DB) error {
	if err := createVersionTable(db); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := migration.Up(db); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the saves and known_effects tables
func migrationV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS saves (
			save_id TEXT PRIMARY KEY,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS known_effects (
			save_id TEXT NOT NULL,
			editor_id TEXT NOT NULL,
			flags INTEGER NOT NULL CHECK(flags BETWEEN 0 AND 15),
			PRIMARY KEY (save_id, editor_id),
			FOREIGN KEY (save_id) REFERENCES saves(save_id) ON DELETE CASCADE
		);
	`)
	return err
}

// migrationV2 indexes known_effects by ingredient for the knowledge CLI
func migrationV2(db *sql.DB) error {
	_, err := db.Exec("CREATE INDEX IF NOT EXISTS idx_known_effects_editor ON known_effects(editor_id)")
	return err
}
