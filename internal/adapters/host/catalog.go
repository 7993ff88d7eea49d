// Package host contains an in-memory host: ingredient catalog, main-thread
// task queue and UI state. The simulate command and tests drive the
// controller through it.
package host

import (
	"fmt"
	"strings"
	"sync"

	"github.com/example/alchemyrand/internal/core/effect"
	"github.com/example/alchemyrand/internal/core/knowledge"
	"github.com/example/alchemyrand/internal/ports/secondary"
)

// Ingredient is an in-memory secondary.Ingredient.
type Ingredient struct {
	mu      sync.Mutex
	id      string
	name    string
	effects effect.Group
	flags   knowledge.Flags
}

// NewIngredient creates an ingredient.
func NewIngredient(editorID, name string, effects effect.Group) *Ingredient {
	return &Ingredient{id: editorID, name: name, effects: effects}
}

func (i *Ingredient) EditorID() string { return i.id }

// Name is the display name.
func (i *Ingredient) Name() string { return i.name }

func (i *Ingredient) Effects() effect.Group {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.effects
}

func (i *Ingredient) SetEffects(g effect.Group) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.effects = g
}

func (i *Ingredient) KnownFlags() knowledge.Flags {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.flags
}

func (i *Ingredient) SetKnownFlags(flags knowledge.Flags) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.flags = flags & knowledge.AllKnown
}

// Learn marks one effect slot as known.
func (i *Ingredient) Learn(slot int) error {
	if slot < 0 || slot >= effect.GroupSize {
		return fmt.Errorf("slot %d out of range", slot)
	}
	i.SetKnownFlags(i.KnownFlags() | 1<<slot)
	return nil
}

// Catalog is an in-memory secondary.Catalog. It reports
// secondary.ErrCatalogUnavailable until MarkLoaded is called.
type Catalog struct {
	mu     sync.RWMutex
	items  []*Ingredient
	byID   map[string]*Ingredient
	loaded bool
}

// NewCatalog creates a catalog holding items in enumeration order.
func NewCatalog(items ...*Ingredient) *Catalog {
	c := &Catalog{byID: make(map[string]*Ingredient, len(items))}
	for _, item := range items {
		c.Add(item)
	}
	return c
}

// Add appends an ingredient. A duplicate editor ID replaces the lookup entry
// but keeps both in enumeration order, as a host with conflicting plugins would.
func (c *Catalog) Add(item *Ingredient) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	c.byID[strings.ToLower(item.EditorID())] = item
}

// Remove drops an ingredient, e.g. to simulate a plugin unloaded mid-session.
func (c *Catalog) Remove(editorID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := strings.ToLower(editorID)
	if _, ok := c.byID[key]; !ok {
		return false
	}
	delete(c.byID, key)
	for i, item := range c.items {
		if strings.EqualFold(item.EditorID(), editorID) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	return true
}

// MarkLoaded makes the catalog available.
func (c *Catalog) MarkLoaded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = true
}

// Ingredients returns every ingredient in enumeration order.
func (c *Catalog) Ingredients() ([]secondary.Ingredient, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return nil, secondary.ErrCatalogUnavailable
	}
	out := make([]secondary.Ingredient, len(c.items))
	for i, item := range c.items {
		out[i] = item
	}
	return out, nil
}

// Lookup finds an ingredient by editor ID, case-insensitively.
func (c *Catalog) Lookup(editorID string) (secondary.Ingredient, bool) {
	item, ok := c.Get(editorID)
	if !ok {
		return nil, false
	}
	return item, true
}

// Get is Lookup returning the concrete type.
func (c *Catalog) Get(editorID string) (*Ingredient, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.byID[strings.ToLower(editorID)]
	return item, ok
}

// Items returns the ingredients in enumeration order.
func (c *Catalog) Items() []*Ingredient {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Ingredient(nil), c.items...)
}

// Ensure types implement the interfaces
var (
	_ secondary.Ingredient = (*Ingredient)(nil)
	_ secondary.Catalog    = (*Catalog)(nil)
)
