package lifecycle

import (
	"errors"
	"testing"

	"github.com/example/alchemyrand/internal/core/shuffle"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.Method != shuffle.MethodShuffle || p.Trigger != TriggerPlaythrough || p.UnlearnOnShuffle || p.FixedSeed != 0 {
		t.Errorf("unexpected defaults: %+v", p)
	}
}

func TestParseTrigger(t *testing.T) {
	for v, want := range []Trigger{TriggerGameLoad, TriggerPlaythrough, TriggerAlchemyMenu} {
		got, err := ParseTrigger(v)
		if err != nil || got != want {
			t.Errorf("ParseTrigger(%d) = %v, %v", v, got, err)
		}
	}
	if _, err := ParseTrigger(3); !errors.Is(err, ErrUnknownTrigger) {
		t.Errorf("expected ErrUnknownTrigger, got %v", err)
	}
}

func TestSeedFor(t *testing.T) {
	fresh := func() uint64 { return 555 }

	tests := []struct {
		name       string
		policy     Policy
		onDataLoad bool
		want       uint64
	}{
		{"game load fixed", Policy{Trigger: TriggerGameLoad, FixedSeed: 42}, false, 42},
		{"game load random", Policy{Trigger: TriggerGameLoad}, false, 555},
		{"alchemy data load fixed", Policy{Trigger: TriggerAlchemyMenu, FixedSeed: 42}, true, 42},
		{"alchemy craft ignores fixed", Policy{Trigger: TriggerAlchemyMenu, FixedSeed: 42}, false, 555},
		{"playthrough uses player", Policy{Trigger: TriggerPlaythrough, FixedSeed: 42}, false, 0xBEEF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeedFor(tt.policy, 0xBEEF, tt.onDataLoad, fresh); got != tt.want {
				t.Errorf("SeedFor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSeedFor_PlayerZeroKeepsIdentitySeed(t *testing.T) {
	fresh := func() uint64 { return 555 }

	if got := SeedFor(Policy{Trigger: TriggerPlaythrough}, 0, false, fresh); got != 0 {
		t.Errorf("SeedFor = %d, want 0 (player identity, not a fresh seed)", got)
	}
}

func TestPolicyPreservesKnowledge(t *testing.T) {
	if !(Policy{Trigger: TriggerPlaythrough}).PreservesKnowledge() {
		t.Error("playthrough should preserve knowledge")
	}
	if !(Policy{Trigger: TriggerGameLoad, FixedSeed: 1}).PreservesKnowledge() {
		t.Error("fixed-seed game load should preserve knowledge")
	}
	if (Policy{Trigger: TriggerGameLoad}).PreservesKnowledge() {
		t.Error("random game load should not preserve knowledge")
	}
	if (Policy{Trigger: TriggerAlchemyMenu, FixedSeed: 1}).PreservesKnowledge() {
		t.Error("alchemy menu should not preserve knowledge")
	}
}
