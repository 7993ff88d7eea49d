// Package config loads the randomizer settings file and environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/example/alchemyrand/internal/core/lifecycle"
	"github.com/example/alchemyrand/internal/core/shuffle"
)

// ErrConfigMissing means the settings file could not be read; defaults apply.
var ErrConfigMissing = errors.New("settings file missing")

const settingsSection = "Settings"

// Setting keys
const (
	KeyRandomMethod       = "iRandomMethod"
	KeyRandomizeOn        = "iRandomizeOn"
	KeyUnlearnIngredients = "bUnlearnIngredients"
	KeySeed               = "iSeed"
)

var keyComments = map[string]string{
	KeyRandomMethod: "Randomization method\n" +
		"0 - Swap: ingredients trade whole effect groups\n" +
		"1 - Shuffle: every effect is redistributed across ingredients",
	KeyRandomizeOn: "When to randomize\n" +
		"0 - Game Load: once per game launch\n" +
		"1 - Playthrough: once per character, stable across that character's saves\n" +
		"2 - Alchemy Menu: on game launch and after every crafted potion",
	KeyUnlearnIngredients: "Forget learned ingredient effects when randomizing (once per character in Playthrough mode)",
	KeySeed:               "Fixed seed for Game Load randomization. 0 picks a new seed every launch",
}

// Settings mirrors the [Settings] section of the settings file.
type Settings struct {
	RandomMethod       int
	RandomizeOn        int
	UnlearnIngredients bool
	Seed               uint64
}

// DefaultSettings returns the compiled-in defaults.
func DefaultSettings() Settings {
	return Settings{
		RandomMethod: int(shuffle.MethodShuffle),
		RandomizeOn:  int(lifecycle.TriggerPlaythrough),
	}
}

// LoadSettings reads the settings file. Keys that are absent or unparsable
// keep their defaults. An unreadable file returns the defaults and
// ErrConfigMissing.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	f, err := ini.Load(path)
	if err != nil {
		return s, fmt.Errorf("%w: %s: %w", ErrConfigMissing, path, err)
	}

	sec := f.Section(settingsSection)
	s.RandomMethod = sec.Key(KeyRandomMethod).MustInt(s.RandomMethod)
	s.RandomizeOn = sec.Key(KeyRandomizeOn).MustInt(s.RandomizeOn)
	s.UnlearnIngredients = sec.Key(KeyUnlearnIngredients).MustBool(s.UnlearnIngredients)
	s.Seed = sec.Key(KeySeed).MustUint64(s.Seed)
	return s, nil
}

// SaveSettings writes s to path with a comment per key. Other sections and
// keys already in the file are kept.
func SaveSettings(path string, s Settings) error {
	f, err := ini.LooseLoad(path)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	sec := f.Section(settingsSection)
	values := []struct{ key, value string }{
		{KeyRandomMethod, fmt.Sprint(s.RandomMethod)},
		{KeyRandomizeOn, fmt.Sprint(s.RandomizeOn)},
		{KeyUnlearnIngredients, fmt.Sprint(s.UnlearnIngredients)},
		{KeySeed, fmt.Sprint(s.Seed)},
	}
	for _, v := range values {
		key := sec.Key(v.key)
		key.SetValue(v.value)
		key.Comment = keyComments[v.key]
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Policy converts the settings into a lifecycle policy. Out-of-range enum
// values fall back to their defaults and are reported in the error.
func (s Settings) Policy() (lifecycle.Policy, error) {
	p := lifecycle.DefaultPolicy()
	var errs []error

	if m, err := shuffle.ParseMethod(s.RandomMethod); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyRandomMethod, err))
	} else {
		p.Method = m
	}
	if t, err := lifecycle.ParseTrigger(s.RandomizeOn); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyRandomizeOn, err))
	} else {
		p.Trigger = t
	}
	p.UnlearnOnShuffle = s.UnlearnIngredients
	p.FixedSeed = s.Seed

	return p, errors.Join(errs...)
}
