package host

import (
	"sync"

	"github.com/example/alchemyrand/internal/ports/secondary"
)

// State is an in-memory secondary.HostState.
type State struct {
	mu              sync.Mutex
	livePlayerID    uint64
	craftingSubtype string
	menuEvents      bool
	craftListener   bool
}

// NewState creates host state with the given live player identifier.
func NewState(livePlayerID uint64) *State {
	return &State{livePlayerID: livePlayerID}
}

func (s *State) LivePlayerID() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.livePlayerID
}

// SetLivePlayerID changes the live player, e.g. during character creation.
func (s *State) SetLivePlayerID(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.livePlayerID = id
}

func (s *State) CraftingSubtype() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.craftingSubtype
}

// SetCraftingSubtype sets the open crafting tab; "" when none is open.
func (s *State) SetCraftingSubtype(subtype string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.craftingSubtype = subtype
}

func (s *State) SubscribeMenuEvents() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menuEvents = true
}

// MenuEventsEnabled reports whether menu notifications are delivered.
func (s *State) MenuEventsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menuEvents
}

func (s *State) SetCraftListener(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.craftListener = enabled
}

// CraftListenerEnabled reports whether item-crafted notifications are delivered.
func (s *State) CraftListenerEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.craftListener
}

// Ensure State implements the interface
var _ secondary.HostState = (*State)(nil)
