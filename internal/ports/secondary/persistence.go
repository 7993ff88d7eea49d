// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"

	"github.com/example/alchemyrand/internal/core/knowledge"
)

var (
	// ErrArchiveUnavailable means the durable archive could not be read.
	// Callers treat it as "no prior knowledge".
	ErrArchiveUnavailable = errors.New("knowledge archive unavailable")
	// ErrArchiveWrite means the durable archive could not be written.
	// In-memory knowledge stays authoritative for the session.
	ErrArchiveWrite = errors.New("knowledge archive write failed")
)

// ArchiveStore defines the secondary port for the durable knowledge archive.
type ArchiveStore interface {
	// Load reads the whole archive. A store that has never been written
	// returns an empty archive and no error.
	Load(ctx context.Context) (knowledge.Archive, error)

	// Save replaces the durable archive with the given contents.
	Save(ctx context.Context, archive knowledge.Archive) error
}

// DenylistSource defines the secondary port for the externally configured
// denylist of ingredient editor IDs.
type DenylistSource interface {
	// Load returns every denylisted editor ID it could read. A non-nil error
	// may accompany a partial result; unreadable files are reported but do
	// not discard the others.
	Load(ctx context.Context) ([]string, error)
}
