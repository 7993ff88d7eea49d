// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/alchemyrand/internal/core/knowledge"
	"github.com/example/alchemyrand/internal/ports/secondary"
)

// ArchiveStore implements secondary.ArchiveStore as a single JSON document
// {saveID: {editorID: flags}}.
type ArchiveStore struct {
	path string
}

// NewArchiveStore creates a JSON archive store at path.
func NewArchiveStore(path string) *ArchiveStore {
	return &ArchiveStore{path: path}
}

// Path returns the backing file.
func (s *ArchiveStore) Path() string { return s.path }

// Load reads the archive. A missing file is an empty archive.
func (s *ArchiveStore) Load(ctx context.Context) (knowledge.Archive, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return knowledge.Archive{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	archive := knowledge.Archive{}
	if len(data) == 0 {
		return archive, nil
	}
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, fmt.Errorf("failed to parse archive %s: %w", s.path, err)
	}
	for save, known := range archive {
		if known == nil {
			archive[save] = knowledge.Map{}
		}
	}
	return archive, nil
}

// Save rewrites the whole file. The new content is written to a temporary
// file first and renamed over the old one.
func (s *ArchiveStore) Save(ctx context.Context, archive knowledge.Archive) error {
	if archive == nil {
		archive = knowledge.Archive{}
	}
	data, err := json.MarshalIndent(archive, "", "\t")
	if err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".archive-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace archive: %w", err)
	}
	return nil
}

// Ensure ArchiveStore implements the interface
var _ secondary.ArchiveStore = (*ArchiveStore)(nil)
