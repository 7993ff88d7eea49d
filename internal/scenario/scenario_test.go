package scenario_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/alchemyrand/internal/adapters/host"
	"github.com/example/alchemyrand/internal/app"
	"github.com/example/alchemyrand/internal/config"
	"github.com/example/alchemyrand/internal/core/effect"
	"github.com/example/alchemyrand/internal/core/knowledge"
	"github.com/example/alchemyrand/internal/core/shuffle"
	"github.com/example/alchemyrand/internal/scenario"
)

// memoryStore is an in-memory secondary.ArchiveStore.
type memoryStore struct {
	archive knowledge.Archive
}

func (m *memoryStore) Load(ctx context.Context) (knowledge.Archive, error) {
	return knowledge.Archive{}, nil
}

func (m *memoryStore) Save(ctx context.Context, archive knowledge.Archive) error {
	m.archive = archive
	return nil
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"three effects", "ingredients:\n  - {id: Wheat, effects: [A, B, C]}\n"},
		{"duplicate id", "ingredients:\n  - {id: A, effects: [a, b, c, d]}\n  - {id: A, effects: [a, b, c, d]}\n"},
		{"bad known slot", "ingredients:\n  - {id: A, effects: [a, b, c, d], known: [4]}\n"},
		{"unknown event", "steps:\n  - event: explode\n"},
		{"save without path", "steps:\n  - event: save\n"},
		{"learn without item", "steps:\n  - event: learn\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tt.doc))
			assert.True(t, errors.Is(err, scenario.ErrInvalidScenario), "got %v", err)
		})
	}
}

func TestParse_NotYAML(t *testing.T) {
	_, err := scenario.Parse([]byte("steps: [unterminated"))
	require.Error(t, err)
}

func TestLoad_Playthrough(t *testing.T) {
	sc, err := scenario.Load("testdata/playthrough.yaml")
	require.NoError(t, err)

	assert.Equal(t, "two characters", sc.Name)
	assert.EqualValues(t, 0x14, sc.LivePlayer)
	assert.Len(t, sc.Ingredients, 5)
	assert.Len(t, sc.Steps, 9)

	settings := sc.Settings.Apply(config.DefaultSettings())
	assert.Equal(t, config.Settings{RandomMethod: 0, RandomizeOn: 1, UnlearnIngredients: true}, settings)
}

func TestBuildCatalog_SharesDefinitions(t *testing.T) {
	sc, err := scenario.Load("testdata/playthrough.yaml")
	require.NoError(t, err)

	catalog := sc.BuildCatalog()
	wheat, ok := catalog.Get("Wheat")
	require.True(t, ok)
	salt, ok := catalog.Get("Salt")
	require.True(t, ok)

	assert.Same(t, wheat.Effects()[0].Base, salt.Effects()[3].Base, "RestoreHealth is one definition")
	assert.Equal(t, "Restore Health", wheat.Effects()[0].Base.Name)

	deathBell, _ := catalog.Get("DeathBell")
	assert.EqualValues(t, 0b0011, deathBell.KnownFlags())

	_, err = catalog.Ingredients()
	assert.Error(t, err, "catalog loads on data_loaded")
}

func TestReplay_Playthrough(t *testing.T) {
	ctx := context.Background()
	sc, err := scenario.Load("testdata/playthrough.yaml")
	require.NoError(t, err)

	policy, err := sc.Settings.Apply(config.DefaultSettings()).Policy()
	require.NoError(t, err)

	catalog := sc.BuildCatalog()
	var pool effect.Set
	for _, item := range catalog.Items() {
		if item.EditorID() != "DeathBell" {
			pool = append(pool, item.Effects())
		}
	}

	state := host.NewState(sc.LivePlayer)
	queue := host.NewTaskQueue()
	store := &memoryStore{}
	controller := app.NewController(app.ControllerDeps{
		Policy:   policy,
		Catalog:  catalog,
		Host:     state,
		Tasks:    queue,
		Archive:  store,
		Denylist: scenario.Denylister(sc.Denylist),
		Engine:   shuffle.NewEngine(2),
	})

	session := &scenario.Session{Controller: controller, Catalog: catalog, State: state, Queue: queue}
	require.NoError(t, session.Replay(ctx, sc.Steps))

	status := controller.Status()
	assert.Equal(t, 2, status.Playthroughs)
	assert.EqualValues(t, 0x99, status.PlayerID)
	assert.Equal(t, 4, status.PoolSize)
	assert.Equal(t, 0, queue.Len())

	want := shuffle.Swap(pool, 0x99)
	for i, id := range []string{"Wheat", "BlueMountainFlower", "Salt", "Garlic"} {
		item, _ := catalog.Get(id)
		assert.Equal(t, want[i], item.Effects(), id)
	}

	deathBell, _ := catalog.Get("DeathBell")
	assert.EqualValues(t, 0b0011, deathBell.KnownFlags(), "denylisted ingredient keeps its knowledge")

	saved, ok := store.archive.Get("Save2_0000ABCD_0_4E616D65_Tamriel_000013_20240101123500_1_1")
	require.True(t, ok)
	assert.Equal(t, knowledge.Map{"Wheat": 0b0100}, saved)
}

func TestReplay_UnknownLearnItem(t *testing.T) {
	catalog := host.NewCatalog()
	session := &scenario.Session{
		Controller: app.NewController(app.ControllerDeps{Catalog: catalog, Archive: &memoryStore{}}),
		Catalog:    catalog,
		State:      host.NewState(1),
		Queue:      host.NewTaskQueue(),
	}

	err := session.Replay(context.Background(), []scenario.Step{{Event: scenario.EventLearn, Item: "Ghost"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1")
}
