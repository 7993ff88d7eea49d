// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/alchemyrand/internal/core/knowledge"
	"github.com/example/alchemyrand/internal/ports/secondary"
)

// ArchiveRepository implements secondary.ArchiveStore with SQLite.
type ArchiveRepository struct {
	db *sql.DB
}

// NewArchiveRepository creates a new SQLite archive repository.
func NewArchiveRepository(db *sql.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Load reads every save and its known-effect flags.
func (r *ArchiveRepository) Load(ctx context.Context) (knowledge.Archive, error) {
	archive := knowledge.Archive{}

	saves, err := r.db.QueryContext(ctx, "SELECT save_id FROM saves")
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	defer saves.Close()

	for saves.Next() {
		var saveID string
		if err := saves.Scan(&saveID); err != nil {
			return nil, fmt.Errorf("failed to scan save: %w", err)
		}
		archive[saveID] = knowledge.Map{}
	}
	if err := saves.Err(); err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, "SELECT save_id, editor_id, flags FROM known_effects")
	if err != nil {
		return nil, fmt.Errorf("failed to list known effects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			saveID, editorID string
			flags            int64
		)
		if err := rows.Scan(&saveID, &editorID, &flags); err != nil {
			return nil, fmt.Errorf("failed to scan known effect: %w", err)
		}
		known, ok := archive[saveID]
		if !ok {
			known = knowledge.Map{}
			archive[saveID] = known
		}
		known[editorID] = knowledge.Flags(flags)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list known effects: %w", err)
	}

	return archive, nil
}

// Save replaces the stored archive in one transaction.
func (r *ArchiveRepository) Save(ctx context.Context, archive knowledge.Archive) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM known_effects"); err != nil {
		return fmt.Errorf("failed to clear known effects: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM saves"); err != nil {
		return fmt.Errorf("failed to clear saves: %w", err)
	}

	for _, saveID := range archive.Saves() {
		if _, err := tx.ExecContext(ctx, "INSERT INTO saves (save_id) VALUES (?)", saveID); err != nil {
			return fmt.Errorf("failed to insert save %s: %w", saveID, err)
		}
		for editorID, flags := range archive[saveID] {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO known_effects (save_id, editor_id, flags) VALUES (?, ?, ?)",
				saveID, editorID, int64(flags),
			)
			if err != nil {
				return fmt.Errorf("failed to insert known effect %s/%s: %w", saveID, editorID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit archive: %w", err)
	}
	return nil
}

// KnownBy lists, per save, the flags recorded for one ingredient.
func (r *ArchiveRepository) KnownBy(ctx context.Context, editorID string) (map[string]knowledge.Flags, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT save_id, flags FROM known_effects WHERE editor_id = ? COLLATE NOCASE",
		editorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query known effects: %w", err)
	}
	defer rows.Close()

	out := map[string]knowledge.Flags{}
	for rows.Next() {
		var (
			saveID string
			flags  int64
		)
		if err := rows.Scan(&saveID, &flags); err != nil {
			return nil, fmt.Errorf("failed to scan known effect: %w", err)
		}
		out[saveID] = knowledge.Flags(flags)
	}
	return out, rows.Err()
}

// Ensure ArchiveRepository implements the interface
var _ secondary.ArchiveStore = (*ArchiveRepository)(nil)
