// Package primary defines the primary ports (driving adapters) for the application.
package primary

import (
	"context"

	"github.com/example/alchemyrand/internal/core/command"
	"github.com/example/alchemyrand/internal/core/lifecycle"
)

// Menu names delivered by the host.
const (
	MenuRaceSex  = "RaceSex Menu"
	MenuCrafting = "Crafting Menu"
)

// LifecycleController defines the primary port the host integration layer
// drives. Handlers never fail the host: problems are logged and the step is
// skipped.
type LifecycleController interface {
	// OnPostLoad loads the denylist and the knowledge archive.
	OnPostLoad(ctx context.Context)

	// OnDataLoaded captures the effect pool and may shuffle immediately.
	OnDataLoaded(ctx context.Context)

	// OnPreLoadGame activates the knowledge of the save about to load.
	OnPreLoadGame(ctx context.Context, savePath string)

	// OnSaveGame records the live knowledge under the save.
	OnSaveGame(ctx context.Context, savePath string)

	// OnDeleteGame forgets the save's knowledge.
	OnDeleteGame(ctx context.Context, savePath string)

	// OnNewGame arms identity capture for character creation.
	OnNewGame(ctx context.Context)

	// OnMenu handles a menu open/close notification.
	OnMenu(ctx context.Context, ev MenuEvent)

	// OnItemCrafted handles a crafted-item notification; itemID is "" when
	// the host reports no item.
	OnItemCrafted(ctx context.Context, itemID string)

	// OnItemLoaded runs after the host reads one ingredient's saved data.
	OnItemLoaded(ctx context.Context, editorID string)

	// Run executes a command previously handed to the task queue.
	Run(ctx context.Context, cmd command.Command) error

	// Status returns a diagnostic snapshot.
	Status() ControllerStatus
}

// MenuEvent is a menu open/close notification.
type MenuEvent struct {
	Name    string
	Opening bool
}

// ControllerStatus is a diagnostic snapshot of the controller.
type ControllerStatus struct {
	State            lifecycle.State
	Policy           lifecycle.Policy
	CurrentSave      string
	PlayerID         lifecycle.PlayerID
	PoolSize         int
	DenylistSize     int
	KnownIngredients int
	ArchivedSaves    int
	Playthroughs     int
	SharedShuffled   bool
	NewGameArmed     bool
	AlchemyOpen      bool
}
