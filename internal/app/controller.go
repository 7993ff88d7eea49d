package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/alchemyrand/internal/core/command"
	"github.com/example/alchemyrand/internal/core/effect"
	"github.com/example/alchemyrand/internal/core/knowledge"
	"github.com/example/alchemyrand/internal/core/lifecycle"
	"github.com/example/alchemyrand/internal/core/shuffle"
	"github.com/example/alchemyrand/internal/ports/primary"
	"github.com/example/alchemyrand/internal/ports/secondary"
)

// alchemySubtype is the crafting menu sub type for the alchemy workbench.
const alchemySubtype = "Alchemy"

// ControllerDeps are the collaborators of a Controller.
type ControllerDeps struct {
	Policy   lifecycle.Policy
	Catalog  secondary.Catalog
	Host     secondary.HostState
	Tasks    secondary.TaskQueue
	Archive  secondary.ArchiveStore
	Denylist secondary.DenylistSource
	Engine   *shuffle.Engine
	Logger   *zap.Logger

	// FreshSeed overrides shuffle.FreshSeed, for tests.
	FreshSeed func() uint64
}

// Controller drives randomization from host lifecycle events.
// It is not safe for concurrent use; the host delivers events on one thread.
type Controller struct {
	policy    lifecycle.Policy
	catalog   secondary.Catalog
	host      secondary.HostState
	tasks     secondary.TaskQueue
	denySrc   secondary.DenylistSource
	engine    *shuffle.Engine
	logger    *zap.Logger
	freshSeed func() uint64
	tracker   *KnowledgeTracker

	state   lifecycle.State
	denyIDs []string
	deny    effect.Denylist
	pool    effect.Pool

	shared       effect.ShuffleState
	playthroughs map[lifecycle.PlayerID]*effect.ShuffleState

	currentSave    string
	currentPlayer  lifecycle.PlayerID
	previousPlayer lifecycle.PlayerID

	newGameArmed  bool
	alchemyOpen   bool
	craftedPotion bool
}

// NewController creates a Controller with injected dependencies.
func NewController(deps ControllerDeps) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fresh := deps.FreshSeed
	if fresh == nil {
		fresh = shuffle.FreshSeed
	}
	engine := deps.Engine
	if engine == nil {
		engine = shuffle.NewEngine(0)
	}
	return &Controller{
		policy:         deps.Policy,
		catalog:        deps.Catalog,
		host:           deps.Host,
		tasks:          deps.Tasks,
		denySrc:        deps.Denylist,
		engine:         engine,
		logger:         logger,
		freshSeed:      fresh,
		tracker:        NewKnowledgeTracker(deps.Archive),
		state:          lifecycle.StateNotInitialized,
		deny:           effect.NewDenylist(),
		playthroughs:   make(map[lifecycle.PlayerID]*effect.ShuffleState),
		currentPlayer:  lifecycle.UnknownPlayer,
		previousPlayer: lifecycle.UnknownPlayer,
	}
}

// Knowledge exposes the tracker for diagnostics.
func (c *Controller) Knowledge() *KnowledgeTracker { return c.tracker }

// transition evaluates ev and reports whether the handler should proceed.
// The new state is committed by the handler once its work succeeds.
func (c *Controller) transition(ev lifecycle.Event) (lifecycle.State, bool) {
	result := lifecycle.ApplyTransition(c.state, ev)
	if !result.Guard.Allowed {
		c.logger.Debug("event skipped", zap.String("event", string(ev)), zap.String("reason", result.Guard.Reason))
		return c.state, false
	}
	return result.NewState, true
}

// OnPostLoad loads the denylist and the knowledge archive.
func (c *Controller) OnPostLoad(ctx context.Context) {
	next, ok := c.transition(lifecycle.EventPostLoad)
	if !ok {
		return
	}

	c.logger.Info(banner("INI"))
	c.logger.Info("randomizer policy",
		zap.Stringer("method", c.policy.Method),
		zap.Stringer("trigger", c.policy.Trigger),
		zap.Bool("unlearn", c.policy.UnlearnOnShuffle),
		zap.Uint64("seed", c.policy.FixedSeed))

	if c.denySrc != nil {
		ids, err := c.denySrc.Load(ctx)
		if err != nil {
			c.logger.Warn("denylist partially loaded", zap.Error(err))
		}
		c.denyIDs = ids
	}
	c.logger.Info("denylist entries read", zap.Int("count", len(c.denyIDs)))

	if err := c.tracker.Open(ctx); err != nil {
		c.logger.Warn("starting without prior knowledge", zap.Error(err))
	}
	c.state = next
}

// OnDataLoaded captures the effect pool and shuffles when the policy asks to
// shuffle on game load. This is the single baseline capture point; the host
// must call it after its own data fixes have run.
func (c *Controller) OnDataLoaded(ctx context.Context) {
	next, ok := c.transition(lifecycle.EventDataLoaded)
	if !ok {
		return
	}

	c.logger.Info(banner("DATA LOAD"))

	deny, skipped := ResolveDenylist(c.catalog, c.denyIDs)
	for _, err := range skipped {
		c.logger.Error("denylist: skipped entry", zap.Error(err))
	}

	pool, err := CapturePool(c.catalog, deny)
	if err != nil {
		c.logger.Debug("pool capture skipped", zap.Error(err))
		return
	}
	c.deny = deny
	c.pool = pool
	c.state = next
	c.logger.Info("captured ingredient effects",
		zap.Int("ingredients", pool.Len()),
		zap.Int("denylisted", len(deny)))

	if c.host != nil {
		c.host.SubscribeMenuEvents()
	}

	if guard := lifecycle.ShouldShuffleOnDataLoad(c.policy); guard.Allowed {
		c.shuffleInto(&c.shared, false, true)
	} else {
		c.logger.Debug("no shuffle on data load", zap.String("reason", guard.Reason))
	}

	c.logger.Info(banner("LOAD/SAVE"))
}

// OnPreLoadGame activates the knowledge of the save about to load and
// shuffles when the player identity requires it.
func (c *Controller) OnPreLoadGame(ctx context.Context, savePath string) {
	next, ok := c.transition(lifecycle.EventPreLoadGame)
	if !ok {
		return
	}

	save := lifecycle.TrimSaveExtension(savePath)
	c.currentSave = save
	c.previousPlayer = c.currentPlayer

	id, err := lifecycle.PlayerIDFromSave(save)
	if err != nil {
		c.logger.Debug("using live player id", zap.Error(err))
	}
	c.currentPlayer = id

	known := c.tracker.Load(save)
	c.state = next
	c.logger.Info("loaded save",
		zap.String("save", save),
		zap.Int("known_ingredients", known),
		zap.Stringer("player", c.currentPlayerID()))

	guard := lifecycle.ShouldShuffleOnSaveLoad(c.policy, c.currentPlayerID(), c.previousPlayer)
	if !guard.Allowed {
		c.logger.Debug("no shuffle on save load", zap.String("reason", guard.Reason))
		return
	}
	c.shuffleInto(c.stateFor(c.currentPlayerID()), false, false)
}

// OnSaveGame records the live knowledge under the save and persists it.
func (c *Controller) OnSaveGame(ctx context.Context, savePath string) {
	next, ok := c.transition(lifecycle.EventSaveGame)
	if !ok {
		return
	}

	save := lifecycle.TrimSaveExtension(savePath)
	c.currentSave = save
	c.state = next

	known, err := c.tracker.Record(ctx, save, c.catalog, c.deny)
	switch {
	case errors.Is(err, secondary.ErrCatalogUnavailable):
		c.logger.Debug("save skipped", zap.Error(err))
		return
	case err != nil:
		c.logger.Error("failed to persist knowledge", zap.String("save", save), zap.Error(err))
	}
	c.logger.Info("saved", zap.String("save", save), zap.Int("known_ingredients", known))
}

// OnDeleteGame forgets the save's knowledge.
func (c *Controller) OnDeleteGame(ctx context.Context, savePath string) {
	if _, ok := c.transition(lifecycle.EventDeleteGame); !ok {
		return
	}

	save := lifecycle.TrimSaveExtension(savePath)
	existed, err := c.tracker.Forget(ctx, save)
	if err != nil {
		c.logger.Error("failed to persist knowledge", zap.String("save", save), zap.Error(err))
	}
	c.logger.Info("deleted save", zap.String("save", save), zap.Bool("had_knowledge", existed))
}

// OnNewGame arms identity capture for the upcoming character creation.
func (c *Controller) OnNewGame(ctx context.Context) {
	if _, ok := c.transition(lifecycle.EventNewGame); !ok {
		return
	}
	c.newGameArmed = true
}

// OnMenu handles character creation and crafting menu transitions.
func (c *Controller) OnMenu(ctx context.Context, ev primary.MenuEvent) {
	switch {
	case ev.Name == primary.MenuRaceSex && c.newGameArmed:
		if guard := lifecycle.ShouldShuffleOnNewGame(c.policy); !guard.Allowed {
			c.logger.Debug("no shuffle on new game", zap.String("reason", guard.Reason))
			return
		}
		c.onRaceSexMenu(ev.Opening)
	case ev.Name == primary.MenuCrafting && c.policy.Trigger == lifecycle.TriggerAlchemyMenu:
		c.onCraftingMenu(ev.Opening)
	}
}

func (c *Controller) onRaceSexMenu(opening bool) {
	if opening {
		c.previousPlayer = c.livePlayerID()
		return
	}
	c.currentPlayer = c.livePlayerID()
	c.tasks.Enqueue(command.FinalizeNewGame{PlayerID: c.currentPlayer, Previous: c.previousPlayer})
	c.newGameArmed = false
}

func (c *Controller) onCraftingMenu(opening bool) {
	if opening {
		c.alchemyOpen = strings.EqualFold(c.host.CraftingSubtype(), alchemySubtype)
		c.craftedPotion = false
		if c.alchemyOpen {
			c.host.SetCraftListener(true)
		}
		return
	}

	if !c.alchemyOpen {
		return
	}
	if c.craftedPotion {
		c.tasks.Enqueue(command.Reshuffle{Force: true, Reason: "potion crafted"})
	}
	c.host.SetCraftListener(false)
	c.alchemyOpen = false
	c.craftedPotion = false
}

// OnItemCrafted marks a potion as crafted while the alchemy menu is open.
func (c *Controller) OnItemCrafted(ctx context.Context, itemID string) {
	if c.alchemyOpen && itemID != "" {
		c.craftedPotion = true
	}
}

// OnItemLoaded unlearns the ingredient's effects after its saved data is
// read; saved flags would otherwise overwrite an unlearn done at apply time.
func (c *Controller) OnItemLoaded(ctx context.Context, editorID string) {
	item, ok := c.catalog.Lookup(editorID)
	if !ok {
		return
	}
	c.unlearn(item)
}

// Status returns a diagnostic snapshot.
func (c *Controller) Status() primary.ControllerStatus {
	return primary.ControllerStatus{
		State:            c.state,
		Policy:           c.policy,
		CurrentSave:      c.currentSave,
		PlayerID:         c.currentPlayer,
		PoolSize:         c.pool.Len(),
		DenylistSize:     len(c.deny),
		KnownIngredients: len(c.tracker.active),
		ArchivedSaves:    len(c.tracker.archive),
		Playthroughs:     len(c.playthroughs),
		SharedShuffled:   c.shared.Shuffled,
		NewGameArmed:     c.newGameArmed,
		AlchemyOpen:      c.alchemyOpen,
	}
}

// currentPlayerID resolves the sentinel identity to the host's live one.
func (c *Controller) currentPlayerID() lifecycle.PlayerID {
	if c.currentPlayer == lifecycle.UnknownPlayer {
		c.currentPlayer = c.livePlayerID()
	}
	return c.currentPlayer
}

func (c *Controller) livePlayerID() lifecycle.PlayerID {
	if c.host == nil {
		return lifecycle.UnknownPlayer
	}
	return lifecycle.LivePlayerID(c.host.LivePlayerID())
}

// stateFor selects the shuffle state a request works on: one per player
// under the Playthrough trigger, the shared one otherwise.
func (c *Controller) stateFor(player lifecycle.PlayerID) *effect.ShuffleState {
	if c.policy.Trigger != lifecycle.TriggerPlaythrough {
		return &c.shared
	}
	st, ok := c.playthroughs[player]
	if !ok {
		st = &effect.ShuffleState{}
		c.playthroughs[player] = st
	}
	return st
}

// shuffleInto shuffles and applies a state per lifecycle.DecideShuffle.
func (c *Controller) shuffleInto(st *effect.ShuffleState, force, onDataLoad bool) {
	if c.pool.Len() == 0 {
		c.logger.Debug("nothing to shuffle: empty pool")
		return
	}
	if len(st.Groups) == 0 {
		st.Groups = c.pool.Groups.Clone()
	}

	decision := lifecycle.DecideShuffle(c.policy, st.Shuffled, force)
	seed := lifecycle.SeedFor(c.policy, c.currentPlayerID(), onDataLoad, c.freshSeed)

	if decision.Shuffle {
		res, err := c.engine.Run(st.Groups, seed, c.policy.Method)
		if err != nil {
			c.logger.Error("shuffle failed, catalog left unchanged", zap.Uint64("seed", seed), zap.Error(err))
			return
		}
		st.Groups = res.Groups
		if res.Chunks > 0 {
			c.logger.Debug("uniqueness pass", zap.Int("chunks", res.Chunks), zap.Int("passes", res.Passes))
		}
	}

	if decision.Apply {
		applied, err := c.apply(st.Groups)
		if err != nil {
			c.logger.Error("apply failed", zap.Error(err))
			return
		}
		c.logger.Info(fmt.Sprintf("Shuffled %d ingredient effects (%d individual effects | RNG seed : %d)",
			applied, applied*effect.GroupSize, seed))
	}
	st.Shuffled = true
}

// apply writes groups into the catalog by captured editor ID.
func (c *Controller) apply(groups effect.Set) (int, error) {
	if !c.pool.Aligned(groups) {
		return 0, fmt.Errorf("shuffled set has %d groups, pool has %d ingredients", len(groups), c.pool.Len())
	}

	applied := 0
	for i, id := range c.pool.ItemIDs {
		item, ok := c.catalog.Lookup(id)
		if !ok {
			c.logger.Warn("ingredient vanished since capture", zap.String("ingredient", id))
			continue
		}
		item.SetEffects(groups[i])
		if c.policy.UnlearnOnApply() {
			c.unlearn(item)
		}
		applied++
	}
	return applied, nil
}

// unlearn clears the known flags the unlearn policy allows.
func (c *Controller) unlearn(item secondary.Ingredient) {
	if !c.policy.UnlearnOnShuffle || c.deny.Contains(item.EditorID()) {
		return
	}
	mask := knowledge.UnlearnMask(c.policy, c.tracker.Prior(item.EditorID()))
	item.SetKnownFlags(item.KnownFlags() &^ mask)
}

// banner centres a title in a 30-column line of asterisks.
func banner(title string) string {
	const width = 30
	pad := width - len(title)
	if pad <= 0 {
		return title
	}
	left := pad / 2
	return strings.Repeat("*", left) + title + strings.Repeat("*", pad-left)
}

// Ensure Controller implements the interface.
var _ primary.LifecycleController = (*Controller)(nil)
