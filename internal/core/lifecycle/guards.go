package lifecycle

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

func allow() GuardResult { return GuardResult{Allowed: true} }

func deny(format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// ShouldShuffleOnDataLoad evaluates whether to shuffle as soon as the catalog
// is ready.
// Rule: GameLoad shuffles unless a fixed seed with unlearning defers it to the
// first save load; AlchemyMenu always shuffles; Playthrough waits for an
// identity.
func ShouldShuffleOnDataLoad(p Policy) GuardResult {
	switch p.Trigger {
	case TriggerGameLoad:
		if p.FixedSeed != 0 && p.UnlearnOnShuffle {
			return deny("fixed seed %d with unlearning shuffles on save load", p.FixedSeed)
		}
		return allow()
	case TriggerAlchemyMenu:
		return allow()
	default:
		return deny("%s trigger waits for a player identity", p.Trigger)
	}
}

// ShouldShuffleOnSaveLoad evaluates whether loading a save re-randomizes.
// Rule: GameLoad only with fixed seed + unlearning; Playthrough whenever the
// player identity changed; never for AlchemyMenu.
func ShouldShuffleOnSaveLoad(p Policy, current, previous PlayerID) GuardResult {
	switch p.Trigger {
	case TriggerGameLoad:
		if p.FixedSeed != 0 && p.UnlearnOnShuffle {
			return allow()
		}
		return deny("game-load trigger already shuffled at data load")
	case TriggerPlaythrough:
		if current == previous {
			return deny("player %s unchanged", current)
		}
		return allow()
	default:
		return deny("%s trigger does not shuffle on save load", p.Trigger)
	}
}

// ShouldShuffleOnNewGame evaluates whether character creation may
// re-randomize.
// Rule: GameLoad only with fixed seed + unlearning; always for Playthrough.
func ShouldShuffleOnNewGame(p Policy) GuardResult {
	switch p.Trigger {
	case TriggerGameLoad:
		if p.FixedSeed != 0 && p.UnlearnOnShuffle {
			return allow()
		}
		return deny("game-load trigger already shuffled at data load")
	case TriggerPlaythrough:
		return allow()
	default:
		return deny("%s trigger does not shuffle on new game", p.Trigger)
	}
}

// ApplyDecision is what a shuffle request should do to a ShuffleState.
type ApplyDecision struct {
	Shuffle bool // run the engine
	Apply   bool // write the groups into the catalog
}

// DecideShuffle captures the rule for an existing shuffle state:
// a state shuffles once unless forced, and Playthrough states re-apply on
// every request because another playthrough may have overwritten the
// catalog in between.
func DecideShuffle(p Policy, alreadyShuffled, force bool) ApplyDecision {
	fresh := !alreadyShuffled || force
	return ApplyDecision{
		Shuffle: fresh,
		Apply:   fresh || p.Trigger == TriggerPlaythrough,
	}
}
