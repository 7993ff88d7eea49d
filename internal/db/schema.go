package db

import "database/sql"

// SchemaSQL is the complete schema for a fresh archive database.
// This schema reflects the current state after all migrations.
//
// Tests use this schema via GetSchemaSQL() so repository code that
// references a missing column fails immediately with "no such column".
// When adding columns or tables, add a migration and update SchemaSQL.
const SchemaSQL = `
-- Saves with recorded knowledge. A save may have no known ingredients.
CREATE TABLE IF NOT EXISTS saves (
	save_id TEXT PRIMARY KEY,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Known-effect flags per ingredient per save
CREATE TABLE IF NOT EXISTS known_effects (
	save_id TEXT NOT NULL,
	editor_id TEXT NOT NULL,
	flags INTEGER NOT NULL CHECK(flags BETWEEN 0 AND 15),
	PRIMARY KEY (save_id, editor_id),
	FOREIGN KEY (save_id) REFERENCES saves(save_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_known_effects_editor ON known_effects(editor_id);
`

// InitSchema creates the schema on a fresh database, or runs pending
// migrations on an existing one.
func InitSchema(db *sql.DB) error {
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(db)
	}

	// Fresh install - create modern schema directly and mark every
	// migration as applied
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
