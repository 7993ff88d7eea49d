// Package scenario loads YAML host sessions: an ingredient catalog plus the
// ordered host events to replay against the controller.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/alchemyrand/internal/adapters/host"
	"github.com/example/alchemyrand/internal/config"
	"github.com/example/alchemyrand/internal/core/effect"
)

// Event names accepted in a scenario step.
const (
	EventPostLoad    = "post_load"
	EventDataLoaded  = "data_loaded"
	EventPreLoad     = "pre_load"
	EventSave        = "save"
	EventDelete      = "delete"
	EventNewGame     = "new_game"
	EventMenu        = "menu"
	EventCraft       = "craft"
	EventLearn       = "learn"
	EventLivePlayer  = "live_player"
	EventCraftingTab = "crafting_tab"
)

// ErrInvalidScenario wraps every validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is one scripted host session.
type Scenario struct {
	Name        string         `yaml:"name"`
	Settings    SettingsPatch  `yaml:"settings"`
	LivePlayer  uint64         `yaml:"live_player"`
	Denylist    []string       `yaml:"denylist"`
	Ingredients []Ingredient   `yaml:"ingredients"`
	Steps       []Step         `yaml:"steps"`
	Effects     []EffectDetail `yaml:"effects"`
}

// SettingsPatch overrides individual settings; nil fields keep the loaded
// value.
type SettingsPatch struct {
	Method  *int    `yaml:"method"`
	Trigger *int    `yaml:"trigger"`
	Unlearn *bool   `yaml:"unlearn"`
	Seed    *uint64 `yaml:"seed"`
}

// Apply returns s with the patch applied.
func (p SettingsPatch) Apply(s config.Settings) config.Settings {
	if p.Method != nil {
		s.RandomMethod = *p.Method
	}
	if p.Trigger != nil {
		s.RandomizeOn = *p.Trigger
	}
	if p.Unlearn != nil {
		s.UnlearnIngredients = *p.Unlearn
	}
	if p.Seed != nil {
		s.Seed = *p.Seed
	}
	return s
}

// EffectDetail gives an effect definition a display name.
type EffectDetail struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Ingredient is a catalog entry.
type Ingredient struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Effects []string `yaml:"effects"`
	Known   []int    `yaml:"known"`
}

// Step is one host event.
type Step struct {
	Event   string         `yaml:"event"`
	Save    string         `yaml:"save,omitempty"`
	Menu    string         `yaml:"menu,omitempty"`
	Open    bool           `yaml:"open,omitempty"`
	Item    string         `yaml:"item,omitempty"`
	Slot    int            `yaml:"slot,omitempty"`
	Player  uint64         `yaml:"player,omitempty"`
	Subtype string         `yaml:"subtype,omitempty"`
	Known   map[string]int `yaml:"known,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the catalog shape and every step.
func (sc *Scenario) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(sc.Ingredients))
	for i, ing := range sc.Ingredients {
		if ing.ID == "" {
			errs = append(errs, fmt.Errorf("ingredient %d: missing id", i))
		}
		if seen[ing.ID] {
			errs = append(errs, fmt.Errorf("ingredient %s: duplicate id", ing.ID))
		}
		seen[ing.ID] = true
		if len(ing.Effects) != effect.GroupSize {
			errs = append(errs, fmt.Errorf("ingredient %s: has %d effects, want %d", ing.ID, len(ing.Effects), effect.GroupSize))
		}
		for _, slot := range ing.Known {
			if slot < 0 || slot >= effect.GroupSize {
				errs = append(errs, fmt.Errorf("ingredient %s: known slot %d out of range", ing.ID, slot))
			}
		}
	}

	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	return nil
}

func (st Step) validate() error {
	switch st.Event {
	case EventPostLoad, EventDataLoaded, EventNewGame, EventLivePlayer, EventCraftingTab, EventCraft:
		return nil
	case EventPreLoad, EventSave, EventDelete:
		if st.Save == "" {
			return fmt.Errorf("%s needs a save", st.Event)
		}
	case EventMenu:
		if st.Menu == "" {
			return fmt.Errorf("menu needs a menu name")
		}
	case EventLearn:
		if st.Item == "" {
			return fmt.Errorf("learn needs an item")
		}
		if st.Slot < 0 || st.Slot >= effect.GroupSize {
			return fmt.Errorf("learn slot %d out of range", st.Slot)
		}
	default:
		return fmt.Errorf("unknown event %q", st.Event)
	}
	return nil
}

// BuildCatalog creates the in-memory catalog. Effects with the same ID share
// one definition. The catalog is not marked loaded.
func (sc *Scenario) BuildCatalog() *host.Catalog {
	names := make(map[string]string, len(sc.Effects))
	for _, d := range sc.Effects {
		names[d.ID] = d.Name
	}

	defs := map[string]*effect.Definition{}
	definition := func(id string) *effect.Definition {
		if d, ok := defs[id]; ok {
			return d
		}
		name := names[id]
		if name == "" {
			name = id
		}
		d := &effect.Definition{EditorID: id, Name: name}
		defs[id] = d
		return d
	}

	catalog := host.NewCatalog()
	for _, ing := range sc.Ingredients {
		var g effect.Group
		for slot, id := range ing.Effects {
			if slot >= effect.GroupSize {
				break
			}
			g[slot] = effect.Effect{Base: definition(id), Magnitude: 1, Duration: 0}
		}
		name := ing.Name
		if name == "" {
			name = ing.ID
		}
		item := host.NewIngredient(ing.ID, name, g)
		for _, slot := range ing.Known {
			_ = item.Learn(slot)
		}
		catalog.Add(item)
	}
	return catalog
}

// Denylister serves the scenario's denylist as a secondary.DenylistSource.
type Denylister []string

// Load returns the IDs.
func (d Denylister) Load(_ context.Context) ([]string, error) {
	return d, nil
}
