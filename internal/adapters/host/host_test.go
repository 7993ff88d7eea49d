package host_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/alchemyrand/internal/adapters/host"
	"github.com/example/alchemyrand/internal/core/command"
	"github.com/example/alchemyrand/internal/core/effect"
	"github.com/example/alchemyrand/internal/ports/secondary"
)

func TestCatalog_UnavailableUntilLoaded(t *testing.T) {
	c := host.NewCatalog(host.NewIngredient("Wheat", "Wheat", effect.Group{}))

	_, err := c.Ingredients()
	require.ErrorIs(t, err, secondary.ErrCatalogUnavailable)

	c.MarkLoaded()
	items, err := c.Ingredients()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCatalog_LookupCaseInsensitive(t *testing.T) {
	c := host.NewCatalog(
		host.NewIngredient("Wheat", "Wheat", effect.Group{}),
		host.NewIngredient("DeathBell", "Deathbell", effect.Group{}),
	)

	item, ok := c.Lookup("deathbell")
	require.True(t, ok)
	assert.Equal(t, "DeathBell", item.EditorID())

	_, ok = c.Lookup("Salt")
	assert.False(t, ok)

	require.True(t, c.Remove("WHEAT"))
	assert.False(t, c.Remove("Wheat"))
	assert.Len(t, c.Items(), 1)
}

func TestIngredient_KnownFlags(t *testing.T) {
	item := host.NewIngredient("Wheat", "Wheat", effect.Group{})

	require.NoError(t, item.Learn(0))
	require.NoError(t, item.Learn(2))
	assert.EqualValues(t, 0b0101, item.KnownFlags())
	assert.Error(t, item.Learn(4))

	item.SetKnownFlags(0xFF)
	assert.EqualValues(t, 0xF, item.KnownFlags(), "flags are masked to four slots")
}

type recordingRunner struct {
	ran    []string
	failOn string
	queue  *host.TaskQueue
}

func (r *recordingRunner) Run(ctx context.Context, cmd command.Command) error {
	reason := cmd.(command.Reshuffle).Reason
	r.ran = append(r.ran, reason)
	if reason == "spawn" {
		r.queue.Enqueue(command.Reshuffle{Reason: "spawned"})
	}
	if reason == r.failOn {
		return errors.New("boom")
	}
	return nil
}

func TestTaskQueue_DrainFIFO(t *testing.T) {
	q := host.NewTaskQueue()
	runner := &recordingRunner{queue: q}
	q.Enqueue(command.Reshuffle{Reason: "a"})
	q.Enqueue(command.Reshuffle{Reason: "spawn"})
	q.Enqueue(command.Reshuffle{Reason: "b"})

	n, err := q.Drain(context.Background(), runner)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"a", "spawn", "b"}, runner.ran)

	// Commands enqueued while draining wait for the next slot.
	assert.Equal(t, 1, q.Len())
	n, err = q.Drain(context.Background(), runner)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, q.Len())
}

func TestTaskQueue_DrainStopsOnError(t *testing.T) {
	q := host.NewTaskQueue()
	runner := &recordingRunner{queue: q, failOn: "a"}
	q.Enqueue(command.Reshuffle{Reason: "a"})
	q.Enqueue(command.Reshuffle{Reason: "b"})

	n, err := q.Drain(context.Background(), runner)
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, q.Len(), "unrun commands stay queued")
}

func TestTaskQueue_DrainCanceled(t *testing.T) {
	q := host.NewTaskQueue()
	q.Enqueue(command.Reshuffle{Reason: "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := q.Drain(ctx, &recordingRunner{queue: q})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, q.Len())
}

func TestState(t *testing.T) {
	s := host.NewState(0x14)
	assert.EqualValues(t, 0x14, s.LivePlayerID())

	s.SetLivePlayerID(0x22)
	s.SetCraftingSubtype("Alchemy")
	s.SubscribeMenuEvents()
	s.SetCraftListener(true)

	assert.EqualValues(t, 0x22, s.LivePlayerID())
	assert.Equal(t, "Alchemy", s.CraftingSubtype())
	assert.True(t, s.MenuEventsEnabled())
	assert.True(t, s.CraftListenerEnabled())
}
