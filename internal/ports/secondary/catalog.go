package secondary

import (
	"errors"

	"github.com/example/alchemyrand/internal/core/effect"
	"github.com/example/alchemyrand/internal/core/knowledge"
)

// ErrCatalogUnavailable means the host has not finished loading its data.
var ErrCatalogUnavailable = errors.New("ingredient catalog unavailable")

// Ingredient is the host's live ingredient object.
type Ingredient interface {
	// EditorID is the stable editor identifier.
	EditorID() string

	Effects() effect.Group
	SetEffects(effect.Group)

	KnownFlags() knowledge.Flags
	SetKnownFlags(knowledge.Flags)
}

// Catalog defines the secondary port for the host's ingredient definitions.
type Catalog interface {
	// Ingredients enumerates every ingredient in the host's stable order.
	// Returns ErrCatalogUnavailable before the host data is loaded.
	Ingredients() ([]Ingredient, error)

	// Lookup finds an ingredient by editor ID (case-insensitive).
	Lookup(editorID string) (Ingredient, bool)
}
