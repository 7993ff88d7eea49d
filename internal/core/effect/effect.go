// Package effect contains the pure data model for ingredient effects.
// This is part of the Functional Core - no I/O, only pure functions.
package effect

// GroupSize is the number of effect slots on every ingredient.
const GroupSize = 4

// Definition is a magic effect definition owned by the host catalog.
// Two effects are "the same effect" when they point at the same Definition.
type Definition struct {
	EditorID string
	Name     string
}

// Effect is one slot entry on an ingredient.
type Effect struct {
	Base      *Definition
	Magnitude float32
	Duration  uint32
}

// Group holds the effects attached to one ingredient.
type Group [GroupSize]Effect

// Set is an ordered sequence of groups, one per eligible ingredient.
type Set []Group

// ShuffleState pairs a working set with whether it has already been shuffled
// and applied.
type ShuffleState struct {
	Groups   Set
	Shuffled bool
}

// Unique reports whether no two slots in the group share a base definition.
func (g Group) Unique() bool {
	for i := 0; i < GroupSize; i++ {
		for j := i + 1; j < GroupSize; j++ {
			if g[i].Base == g[j].Base {
				return false
			}
		}
	}
	return true
}

// Unique reports whether every group in the set is unique.
func (s Set) Unique() bool {
	for _, g := range s {
		if !g.Unique() {
			return false
		}
	}
	return true
}

// Clone returns a copy of the set. Groups are arrays so the copy is deep.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	copy(out, s)
	return out
}

// Flatten returns every effect in set order.
func (s Set) Flatten() []Effect {
	out := make([]Effect, 0, len(s)*GroupSize)
	for _, g := range s {
		out = append(out, g[:]...)
	}
	return out
}

// Chunk regroups a flat effect list into groups of GroupSize, in order.
// A trailing partial group is discarded; callers only pass lists produced by
// Flatten.
func Chunk(effects []Effect) Set {
	out := make(Set, len(effects)/GroupSize)
	for i := range out {
		copy(out[i][:], effects[i*GroupSize:(i+1)*GroupSize])
	}
	return out
}

// BaseCounts returns how many times each base definition occurs in the set.
func (s Set) BaseCounts() map[*Definition]int {
	counts := make(map[*Definition]int)
	for _, g := range s {
		for _, e := range g {
			counts[e.Base]++
		}
	}
	return counts
}
