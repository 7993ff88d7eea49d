// Package lifecycle contains the pure decision logic behind the randomizer's
// load/save/new-game state machine.
// This is part of the Functional Core - no I/O, only pure functions.
package lifecycle

import (
	"errors"
	"fmt"

	"github.com/example/alchemyrand/internal/core/shuffle"
)

// Trigger selects when effects are re-randomized.
type Trigger int

const (
	// TriggerGameLoad randomizes once per game launch.
	TriggerGameLoad Trigger = iota
	// TriggerPlaythrough keeps one randomization per player identity.
	TriggerPlaythrough
	// TriggerAlchemyMenu randomizes on launch and after every crafted potion.
	TriggerAlchemyMenu
)

// ErrUnknownTrigger is returned for trigger values outside the enum.
var ErrUnknownTrigger = errors.New("unknown shuffle trigger")

func (t Trigger) String() string {
	switch t {
	case TriggerGameLoad:
		return "game-load"
	case TriggerPlaythrough:
		return "playthrough"
	case TriggerAlchemyMenu:
		return "alchemy-menu"
	default:
		return fmt.Sprintf("trigger(%d)", int(t))
	}
}

// ParseTrigger converts the settings-file integer into a Trigger.
func ParseTrigger(v int) (Trigger, error) {
	t := Trigger(v)
	switch t {
	case TriggerGameLoad, TriggerPlaythrough, TriggerAlchemyMenu:
		return t, nil
	}
	return TriggerPlaythrough, fmt.Errorf("%w: %d", ErrUnknownTrigger, v)
}

// Policy is the immutable randomizer configuration chosen at startup.
type Policy struct {
	Method           shuffle.Method
	Trigger          Trigger
	UnlearnOnShuffle bool
	// FixedSeed of zero means every randomization picks a fresh seed.
	FixedSeed uint64
}

// DefaultPolicy returns the compiled-in defaults.
func DefaultPolicy() Policy {
	return Policy{
		Method:  shuffle.MethodShuffle,
		Trigger: TriggerPlaythrough,
	}
}

// PreservesKnowledge reports whether the same ingredients keep the same
// effects across sessions, so already-learned effects stay meaningful.
func (p Policy) PreservesKnowledge() bool {
	return p.Trigger == TriggerPlaythrough || (p.Trigger == TriggerGameLoad && p.FixedSeed != 0)
}

// UnlearnOnApply reports whether unlearning runs while applying a shuffle.
// Playthrough mode unlearns as each ingredient's saved data loads instead.
func (p Policy) UnlearnOnApply() bool {
	return p.Trigger != TriggerPlaythrough
}

// SeedFor returns the generator seed for a shuffle. fresh supplies a
// non-deterministic seed when the policy has no fixed one.
func SeedFor(p Policy, player PlayerID, onDataLoad bool, fresh func() uint64) uint64 {
	fixedOrFresh := func() uint64 {
		if p.FixedSeed != 0 {
			return p.FixedSeed
		}
		return fresh()
	}

	switch p.Trigger {
	case TriggerGameLoad:
		return fixedOrFresh()
	case TriggerAlchemyMenu:
		if onDataLoad {
			return fixedOrFresh()
		}
		return fresh()
	case TriggerPlaythrough:
		return uint64(player)
	default:
		return fresh()
	}
}
