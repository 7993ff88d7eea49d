package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/example/alchemyrand/internal/core/command"
	"github.com/example/alchemyrand/internal/core/effect"
	"github.com/example/alchemyrand/internal/core/knowledge"
	"github.com/example/alchemyrand/internal/core/lifecycle"
	"github.com/example/alchemyrand/internal/core/shuffle"
	"github.com/example/alchemyrand/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.Ingredient     = (*mockIngredient)(nil)
	_ secondary.Catalog        = (*mockCatalog)(nil)
	_ secondary.HostState      = (*mockHost)(nil)
	_ secondary.TaskQueue      = (*mockQueue)(nil)
	_ secondary.ArchiveStore   = (*mockArchiveStore)(nil)
	_ secondary.DenylistSource = (*mockDenylist)(nil)
)

// mockIngredient implements secondary.Ingredient for testing.
type mockIngredient struct {
	id      string
	effects effect.Group
	flags   knowledge.Flags
}

func (m *mockIngredient) EditorID() string { return m.id }
func (m *mockIngredient) Effects() effect.Group { return m.effects }
func (m *mockIngredient) SetEffects(g effect.Group) { m.effects = g }
func (m *mockIngredient) KnownFlags() knowledge.Flags { return m.flags }
func (m *mockIngredient) SetKnownFlags(flags knowledge.Flags) { m.flags = flags }

// mockCatalog implements secondary.Catalog for testing.
type mockCatalog struct {
	items       []*mockIngredient
	unavailable bool
}

// newMockCatalog builds n ingredients over n definitions where ingredient i
// carries definitions i..i+3 (mod n).
func newMockCatalog(n int) *mockCatalog {
	defs := make([]*effect.Definition, n)
	for i := range defs {
		defs[i] = &effect.Definition{EditorID: fmt.Sprintf("MGEF%02d", i)}
	}
	c := &mockCatalog{}
	for i := range n {
		var g effect.Group
		for slot := range effect.GroupSize {
			g[slot] = effect.Effect{Base: defs[(i+slot)%n], Magnitude: float32(slot + 1)}
		}
		c.items = append(c.items, &mockIngredient{id: fmt.Sprintf("Item%02d", i), effects: g})
	}
	return c
}

func (m *mockCatalog) Ingredients() ([]secondary.Ingredient, error) {
	if m.unavailable {
		return nil, secondary.ErrCatalogUnavailable
	}
	out := make([]secondary.Ingredient, len(m.items))
	for i, item := range m.items {
		out[i] = item
	}
	return out, nil
}

func (m *mockCatalog) Lookup(editorID string) (secondary.Ingredient, bool) {
	for _, item := range m.items {
		if strings.EqualFold(item.id, editorID) {
			return item, true
		}
	}
	return nil, false
}

func (m *mockCatalog) item(id string) *mockIngredient {
	for _, item := range m.items {
		if item.id == id {
			return item
		}
	}
	return nil
}

// groups returns the live effects in catalog order.
func (m *mockCatalog) groups() effect.Set {
	out := make(effect.Set, len(m.items))
	for i, item := range m.items {
		out[i] = item.effects
	}
	return out
}

// mockHost implements secondary.HostState for testing.
type mockHost struct {
	live       uint64
	subtype    string
	subscribed bool
	listening  bool
	toggles    []bool
}

func (m *mockHost) LivePlayerID() uint64    { return m.live }
func (m *mockHost) CraftingSubtype() string { return m.subtype }
func (m *mockHost) SubscribeMenuEvents() { m.subscribed = true }

func (m *mockHost) SetCraftListener(enabled bool) {
	m.listening = enabled
	m.toggles = append(m.toggles, enabled)
}

// mockQueue implements secondary.TaskQueue for testing.
type mockQueue struct {
	cmds []command.Command
}

func (m *mockQueue) Enqueue(cmd command.Command) { m.cmds = append(m.cmds, cmd) }

// drain runs every queued command against c in FIFO order.
func (m *mockQueue) drain(ctx context.Context, c *Controller) error {
	cmds := m.cmds
	m.cmds = nil
	for _, cmd := range cmds {
		if err := c.Run(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

// mockArchiveStore implements secondary.ArchiveStore for testing.
type mockArchiveStore struct {
	archive knowledge.Archive
	loadErr error
	saveErr error
	saves   int
}

func newMockArchiveStore() *mockArchiveStore {
	return &mockArchiveStore{archive: knowledge.Archive{}}
}

func (m *mockArchiveStore) Load(ctx context.Context) (knowledge.Archive, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := knowledge.Archive{}
	for save, known := range m.archive {
		out.Put(save, known)
	}
	return out, nil
}

func (m *mockArchiveStore) Save(ctx context.Context, archive knowledge.Archive) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.archive = knowledge.Archive{}
	for save, known := range archive {
		m.archive.Put(save, known)
	}
	return nil
}

// mockDenylist implements secondary.DenylistSource for testing.
type mockDenylist struct {
	ids []string
	err error
}

func (m *mockDenylist) Load(ctx context.Context) ([]string, error) {
	return m.ids, m.err
}

// ============================================================================
// Test Helper
// ============================================================================

type controllerFixture struct {
	controller *Controller
	catalog    *mockCatalog
	host       *mockHost
	queue      *mockQueue
	store      *mockArchiveStore
	denylist   *mockDenylist
	logs       *observer.ObservedLogs
	seeds      []uint64
	original   effect.Set
}

// newControllerFixture wires a controller over an 8-ingredient catalog.
// Fresh seeds come from seeds in order, then 1000, 1001, ...
func newControllerFixture(policy lifecycle.Policy, seeds ...uint64) *controllerFixture {
	core, logs := observer.New(zap.DebugLevel)
	f := &controllerFixture{
		catalog:  newMockCatalog(8),
		host:     &mockHost{},
		queue:    &mockQueue{},
		store:    newMockArchiveStore(),
		denylist: &mockDenylist{},
		logs:     logs,
	}
	f.original = f.catalog.groups().Clone()

	next := uint64(1000)
	fresh := func() uint64 {
		var s uint64
		if len(seeds) > 0 {
			s, seeds = seeds[0], seeds[1:]
		} else {
			s = next
			next++
		}
		f.seeds = append(f.seeds, s)
		return s
	}

	f.controller = NewController(ControllerDeps{
		Policy:    policy,
		Catalog:   f.catalog,
		Host:      f.host,
		Tasks:     f.queue,
		Archive:   f.store,
		Denylist:  f.denylist,
		Engine:    shuffle.NewEngine(4),
		Logger:    zap.New(core),
		FreshSeed: fresh,
	})
	return f
}

// boot delivers the post-load and data-loaded events.
func (f *controllerFixture) boot(ctx context.Context) {
	f.controller.OnPostLoad(ctx)
	f.controller.OnDataLoaded(ctx)
}

// saveName builds a host-generated save file name for a player.
func saveName(index int, player uint32) string {
	return fmt.Sprintf("Save%d_%08X_0_4E616D65_Tamriel_000012_20240101123456_1_1.ess", index, player)
}
