package app

import (
	"context"
	"fmt"

	"github.com/example/alchemyrand/internal/core/effect"
	"github.com/example/alchemyrand/internal/core/knowledge"
	"github.com/example/alchemyrand/internal/ports/secondary"
)

// KnowledgeTracker owns the active save's known-effects map and the archive
// of every save's knowledge.
type KnowledgeTracker struct {
	store   secondary.ArchiveStore
	archive knowledge.Archive
	active  knowledge.Map
}

// NewKnowledgeTracker creates a tracker backed by the given store.
func NewKnowledgeTracker(store secondary.ArchiveStore) *KnowledgeTracker {
	return &KnowledgeTracker{
		store:   store,
		archive: knowledge.Archive{},
		active:  knowledge.Map{},
	}
}

// Open reads the durable archive. On failure the tracker starts empty and
// the error is returned for logging only.
func (t *KnowledgeTracker) Open(ctx context.Context) error {
	archive, err := t.store.Load(ctx)
	if err != nil {
		t.archive = knowledge.Archive{}
		return fmt.Errorf("%w: %w", secondary.ErrArchiveUnavailable, err)
	}
	if archive == nil {
		archive = knowledge.Archive{}
	}
	t.archive = archive
	return nil
}

// Load activates the knowledge recorded for saveID, or an empty map for an
// unknown save. It returns the number of known ingredients.
func (t *KnowledgeTracker) Load(saveID string) int {
	if m, ok := t.archive.Get(saveID); ok {
		t.active = m
	} else {
		t.active = knowledge.Map{}
	}
	return len(t.active)
}

// Record scans the live catalog into the active map, commits it under
// saveID and persists the archive. It returns the number of known
// ingredients.
func (t *KnowledgeTracker) Record(ctx context.Context, saveID string, catalog secondary.Catalog, deny effect.Denylist) (int, error) {
	items, err := catalog.Ingredients()
	if err != nil {
		return 0, err
	}

	for _, item := range items {
		if item == nil || deny.Contains(item.EditorID()) {
			continue
		}
		if flags := item.KnownFlags(); flags != 0 {
			t.active[item.EditorID()] = flags
		}
	}

	t.archive.Put(saveID, t.active)
	return len(t.active), t.persist(ctx)
}

// Forget removes saveID from the archive and persists the result.
func (t *KnowledgeTracker) Forget(ctx context.Context, saveID string) (bool, error) {
	existed := t.archive.Forget(saveID)
	return existed, t.persist(ctx)
}

// Prior returns the active save's recorded flags for an ingredient, or nil.
func (t *KnowledgeTracker) Prior(editorID string) *knowledge.Flags {
	flags, ok := t.active[editorID]
	if !ok {
		return nil
	}
	return &flags
}

// Active returns a copy of the active map.
func (t *KnowledgeTracker) Active() knowledge.Map {
	return t.active.Clone()
}

// Archive returns a copy of the archive.
func (t *KnowledgeTracker) Archive() knowledge.Archive {
	out := make(knowledge.Archive, len(t.archive))
	for save, m := range t.archive {
		out[save] = m.Clone()
	}
	return out
}

func (t *KnowledgeTracker) persist(ctx context.Context) error {
	if err := t.store.Save(ctx, t.archive); err != nil {
		return fmt.Errorf("%w: %w", secondary.ErrArchiveWrite, err)
	}
	return nil
}
