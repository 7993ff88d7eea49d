package secondary

import "github.com/example/alchemyrand/internal/core/command"

// TaskQueue defines the secondary port for the host's main-thread task queue.
// Enqueued commands run once, in submission order, at the next processing
// slot, and are handed back to the controller for execution.
type TaskQueue interface {
	Enqueue(cmd command.Command)
}

// HostState defines the secondary port for host state the controller reads
// and host event subscriptions it manages.
type HostState interface {
	// LivePlayerID returns the host's current player identifier.
	LivePlayerID() uint64

	// CraftingSubtype returns the active crafting menu's sub type
	// (e.g. "Alchemy", "Smithing"), or "" when no crafting menu is open.
	CraftingSubtype() string

	// SubscribeMenuEvents starts delivery of menu open/close notifications.
	SubscribeMenuEvents()

	// SetCraftListener starts or stops delivery of item-crafted notifications.
	SetCraftListener(enabled bool)
}
