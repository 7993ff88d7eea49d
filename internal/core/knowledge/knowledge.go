// Package knowledge tracks which ingredient effects a player has learned,
// per save file.
// This is part of the Functional Core - no I/O, only pure functions.
package knowledge

import (
	"maps"
	"slices"

	"github.com/example/alchemyrand/internal/core/effect"
	"github.com/example/alchemyrand/internal/core/lifecycle"
)

// Flags is the 4-bit known-effect field of one ingredient; bit i is slot i.
type Flags uint16

// AllKnown has every slot learned.
const AllKnown Flags = 1<<effect.GroupSize - 1

// Known reports whether the slot has been learned.
func (f Flags) Known(slot int) bool {
	return f&(1<<slot) != 0
}

// Map maps ingredient editor IDs to their known-effect flags.
type Map map[string]Flags

// Clone returns an independent copy.
func (m Map) Clone() Map {
	if m == nil {
		return Map{}
	}
	return maps.Clone(m)
}

// Archive maps save identifiers to the knowledge recorded in that save.
type Archive map[string]Map

// Get returns a copy of the knowledge recorded for saveID.
func (a Archive) Get(saveID string) (Map, bool) {
	m, ok := a[saveID]
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

// Put stores a copy of m under saveID.
func (a Archive) Put(saveID string, m Map) {
	a[saveID] = m.Clone()
}

// Forget removes saveID. It reports whether an entry existed.
func (a Archive) Forget(saveID string) bool {
	_, ok := a[saveID]
	delete(a, saveID)
	return ok
}

// Saves returns the archived save identifiers in sorted order.
func (a Archive) Saves() []string {
	return slices.Sorted(maps.Keys(a))
}

// CanUnlearn decides whether a slot's known flag may be cleared after a
// shuffle. prior is the flags recorded for the ingredient in the active save,
// nil when the save never recorded it.
//
// When the policy keeps the same effects on the same ingredients, a recorded
// ingredient only loses slot 0. This is the truth table of
// (flags && slot) == 0.
func CanUnlearn(p lifecycle.Policy, prior *Flags, slot int) bool {
	if prior == nil {
		return true
	}
	if p.PreservesKnowledge() {
		return !(*prior != 0 && slot != 0)
	}
	return true
}

// UnlearnMask returns the slots CanUnlearn allows, as a flag mask.
func UnlearnMask(p lifecycle.Policy, prior *Flags) Flags {
	var mask Flags
	for slot := range effect.GroupSize {
		if CanUnlearn(p, prior, slot) {
			mask |= 1 << slot
		}
	}
	return mask
}
