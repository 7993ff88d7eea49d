package effect

import (
	"errors"
	"strings"
)

// ErrDenylistEntryNotFound is reported for denylisted editor IDs that do not
// match any ingredient in the catalog.
var ErrDenylistEntryNotFound = errors.New("denylist entry not found in catalog")

// Denylist is a case-insensitive set of ingredient editor IDs excluded from
// randomization.
type Denylist map[string]struct{}

// NewDenylist builds a denylist from editor IDs.
func NewDenylist(ids ...string) Denylist {
	d := make(Denylist, len(ids))
	for _, id := range ids {
		d.Add(id)
	}
	return d
}

// Add inserts an editor ID. Blank IDs are ignored.
func (d Denylist) Add(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	d[strings.ToLower(id)] = struct{}{}
}

// Contains reports whether the editor ID is denylisted.
func (d Denylist) Contains(id string) bool {
	if d == nil {
		return false
	}
	_, ok := d[strings.ToLower(id)]
	return ok
}

// IDs returns the stored (lower-cased) editor IDs.
func (d Denylist) IDs() []string {
	out := make([]string, 0, len(d))
	for id := range d {
		out = append(out, id)
	}
	return out
}

// Item is the pool's view of one catalog ingredient.
type Item struct {
	EditorID string
	Effects  Group
}

// Pool is the baseline capture of every eligible ingredient's effects.
// ItemIDs[i] is the ingredient that owned Groups[i] at capture time.
type Pool struct {
	ItemIDs []string
	Groups  Set
}

// BuildPool captures the eligible items in order, skipping denylisted ones.
func BuildPool(items []Item, deny Denylist) Pool {
	pool := Pool{
		ItemIDs: make([]string, 0, len(items)),
		Groups:  make(Set, 0, len(items)),
	}
	for _, item := range items {
		if deny.Contains(item.EditorID) {
			continue
		}
		pool.ItemIDs = append(pool.ItemIDs, item.EditorID)
		pool.Groups = append(pool.Groups, item.Effects)
	}
	return pool
}

// Len returns the number of captured ingredients.
func (p Pool) Len() int { return len(p.Groups) }

// Aligned reports whether a shuffled set can be applied against this pool.
func (p Pool) Aligned(s Set) bool {
	return len(s) == len(p.ItemIDs)
}
