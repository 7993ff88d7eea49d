package knowledge

import (
	"reflect"
	"testing"

	"github.com/example/alchemyrand/internal/core/lifecycle"
)

func flags(f Flags) *Flags { return &f }

func TestFlagsKnown(t *testing.T) {
	f := Flags(0b0101)
	want := []bool{true, false, true, false}
	for slot, w := range want {
		if f.Known(slot) != w {
			t.Errorf("slot %d: Known = %v, want %v", slot, f.Known(slot), w)
		}
	}
	if AllKnown != 0xF {
		t.Errorf("AllKnown = %#x", AllKnown)
	}
}

func TestArchiveGetPutForget(t *testing.T) {
	a := Archive{}
	m := Map{"Wheat": 0b0011}

	a.Put("Save1", m)
	m["Wheat"] = 0 // archive holds its own copy

	got, ok := a.Get("Save1")
	if !ok || got["Wheat"] != 0b0011 {
		t.Fatalf("Get = %v, %v", got, ok)
	}
	got["Wheat"] = 0xF
	if again, _ := a.Get("Save1"); again["Wheat"] != 0b0011 {
		t.Error("mutating a Get result changed the archive")
	}

	if !a.Forget("Save1") {
		t.Error("expected Forget to report existing entry")
	}
	if a.Forget("Save1") {
		t.Error("expected second Forget to report missing entry")
	}
	if _, ok := a.Get("Save1"); ok {
		t.Error("expected Save1 to be gone")
	}
}

func TestArchiveSavesSorted(t *testing.T) {
	a := Archive{"b": {}, "a": {}, "c": {}}
	if got := a.Saves(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Saves = %v", got)
	}
}

func TestCanUnlearn(t *testing.T) {
	playthrough := lifecycle.Policy{Trigger: lifecycle.TriggerPlaythrough, UnlearnOnShuffle: true}
	fixedGameLoad := lifecycle.Policy{Trigger: lifecycle.TriggerGameLoad, FixedSeed: 9, UnlearnOnShuffle: true}
	randomGameLoad := lifecycle.Policy{Trigger: lifecycle.TriggerGameLoad, UnlearnOnShuffle: true}
	alchemy := lifecycle.Policy{Trigger: lifecycle.TriggerAlchemyMenu, UnlearnOnShuffle: true}

	tests := []struct {
		name   string
		policy lifecycle.Policy
		prior  *Flags
		want   Flags
	}{
		{"no record clears everything", playthrough, nil, 0xF},
		// 0b0101 recorded: slot 0 and 2 known. Only slot 0 passes (flags && idx) == 0.
		{"playthrough record keeps slots 1-3", playthrough, flags(0b0101), 0b0001},
		{"fixed game load record keeps slots 1-3", fixedGameLoad, flags(0b0101), 0b0001},
		{"zero record behaves like no knowledge", playthrough, flags(0), 0xF},
		{"random game load clears everything", randomGameLoad, flags(0b0101), 0xF},
		{"alchemy clears everything", alchemy, flags(0b0101), 0xF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnlearnMask(tt.policy, tt.prior); got != tt.want {
				t.Errorf("UnlearnMask = %04b, want %04b", got, tt.want)
			}
		})
	}
}

func TestMapCloneNil(t *testing.T) {
	var m Map
	c := m.Clone()
	if c == nil {
		t.Fatal("expected non-nil clone")
	}
	c["x"] = 1
}
