package lifecycle

// State is the controller's coarse lifecycle state.
type State string

const (
	StateNotInitialized State = "not-initialized"
	StatePostLoaded     State = "post-loaded"
	StateDataLoaded     State = "data-loaded"
	StateSaveActive     State = "save-active"
)

// Event is a host transition delivered to the controller.
type Event string

const (
	EventPostLoad    Event = "post-load"
	EventDataLoaded  Event = "data-loaded"
	EventPreLoadGame Event = "pre-load-game"
	EventSaveGame    Event = "save-game"
	EventDeleteGame  Event = "delete-game"
	EventNewGame     Event = "new-game"
)

// TransitionResult contains the state after an event and whether the event
// may be handled at all.
type TransitionResult struct {
	NewState State
	Guard    GuardResult
}

// ApplyTransition evaluates a host event against the current state.
// Events that arrive before the catalog is ready are rejected so callers can
// skip them silently.
func ApplyTransition(current State, ev Event) TransitionResult {
	catalogReady := current == StateDataLoaded || current == StateSaveActive

	switch ev {
	case EventPostLoad:
		if current != StateNotInitialized {
			return TransitionResult{current, deny("post-load already handled (state %s)", current)}
		}
		return TransitionResult{StatePostLoaded, allow()}
	case EventDataLoaded:
		if current != StatePostLoaded {
			return TransitionResult{current, deny("data-loaded not expected in state %s", current)}
		}
		return TransitionResult{StateDataLoaded, allow()}
	case EventPreLoadGame, EventSaveGame:
		if !catalogReady {
			return TransitionResult{current, deny("catalog not ready for %s (state %s)", ev, current)}
		}
		return TransitionResult{StateSaveActive, allow()}
	case EventNewGame:
		if !catalogReady {
			return TransitionResult{current, deny("catalog not ready for %s (state %s)", ev, current)}
		}
		return TransitionResult{current, allow()}
	case EventDeleteGame:
		if current == StateNotInitialized {
			return TransitionResult{current, deny("knowledge archive not loaded")}
		}
		return TransitionResult{current, allow()}
	default:
		return TransitionResult{current, deny("unknown event %s", ev)}
	}
}
