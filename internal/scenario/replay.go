package scenario

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/alchemyrand/internal/adapters/host"
	"github.com/example/alchemyrand/internal/core/knowledge"
	"github.com/example/alchemyrand/internal/ports/primary"
)

// Session replays scenario steps the way the host would deliver them:
// one event at a time, with the task queue drained at the next slot.
type Session struct {
	Controller primary.LifecycleController
	Catalog    *host.Catalog
	State      *host.State
	Queue      *host.TaskQueue
	Logger     *zap.Logger
}

// Replay delivers every step in order.
func (s *Session) Replay(ctx context.Context, steps []Step) error {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for i, st := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("replaying step", zap.Int("step", i+1), zap.String("event", st.Event))

		if err := s.deliver(ctx, st); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Event, err)
		}
		if _, err := s.Queue.Drain(ctx, s.Controller); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Event, err)
		}
	}
	return nil
}

func (s *Session) deliver(ctx context.Context, st Step) error {
	c := s.Controller
	switch st.Event {
	case EventPostLoad:
		c.OnPostLoad(ctx)
	case EventDataLoaded:
		s.Catalog.MarkLoaded()
		c.OnDataLoaded(ctx)
	case EventPreLoad:
		c.OnPreLoadGame(ctx, st.Save)
		s.loadItems(ctx, st.Known)
	case EventSave:
		c.OnSaveGame(ctx, st.Save)
	case EventDelete:
		c.OnDeleteGame(ctx, st.Save)
	case EventNewGame:
		c.OnNewGame(ctx)
	case EventMenu:
		if s.State.MenuEventsEnabled() {
			c.OnMenu(ctx, primary.MenuEvent{Name: st.Menu, Opening: st.Open})
		}
	case EventCraft:
		if s.State.CraftListenerEnabled() {
			c.OnItemCrafted(ctx, st.Item)
		}
	case EventLearn:
		item, ok := s.Catalog.Get(st.Item)
		if !ok {
			return fmt.Errorf("unknown ingredient %q", st.Item)
		}
		return item.Learn(st.Slot)
	case EventLivePlayer:
		s.State.SetLivePlayerID(st.Player)
	case EventCraftingTab:
		s.State.SetCraftingSubtype(st.Subtype)
	default:
		return fmt.Errorf("unknown event %q", st.Event)
	}
	return nil
}

// loadItems restores the save's per-ingredient flags and then runs the
// item-loaded hook for every ingredient, as the host does while reading a
// save.
func (s *Session) loadItems(ctx context.Context, known map[string]int) {
	for _, item := range s.Catalog.Items() {
		if known != nil {
			item.SetKnownFlags(knowledge.Flags(known[item.EditorID()]))
		}
		s.Controller.OnItemLoaded(ctx, item.EditorID())
	}
}
