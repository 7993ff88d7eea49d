// Package command defines deferred controller work as data.
// Host notifications sometimes fire before the host's own state settles, so
// the controller enqueues a Command on the host's main-thread queue instead
// of acting inline. Commands carry only the values they need.
package command

import "github.com/example/alchemyrand/internal/core/lifecycle"

// Command is the base interface for deferred work.
type Command interface {
	// CommandType returns a string identifier for the command type.
	CommandType() string
}

// FinalizeNewGame shuffles for the identity chosen during character creation.
type FinalizeNewGame struct {
	PlayerID lifecycle.PlayerID
	// Previous is the identity seen when character creation opened. It is
	// logged only; the new character is always shuffled.
	Previous lifecycle.PlayerID
}

func (c FinalizeNewGame) CommandType() string { return "finalize_new_game" }

// Reshuffle re-randomizes the shared shuffle state.
type Reshuffle struct {
	// Force shuffles even if the state was already shuffled.
	Force bool
	// Reason is recorded in the log.
	Reason string
}

func (c Reshuffle) CommandType() string { return "reshuffle" }
