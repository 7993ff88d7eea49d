package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Archive backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// pluginFolder names the data subfolder holding the archive and denylists.
const pluginFolder = "AlchemyEffectRandomizer"

// ErrUnknownBackend is returned for an unsupported archive backend.
var ErrUnknownBackend = errors.New("unknown archive backend")

// Env holds the process environment overrides.
type Env struct {
	DataDir        string `env:"ALCHEMYRAND_DATA_DIR"        envDefault:"Data"`
	SettingsPath   string `env:"ALCHEMYRAND_SETTINGS"`
	ArchiveBackend string `env:"ALCHEMYRAND_ARCHIVE_BACKEND" envDefault:"json"`
	LogLevel       string `env:"ALCHEMYRAND_LOG_LEVEL"       envDefault:"info"`
	LogFile        string `env:"ALCHEMYRAND_LOG_FILE"`
	Workers        int    `env:"ALCHEMYRAND_WORKERS"`
}

// LoadEnv parses the environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if err := e.Validate(); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Validate checks enumerated values.
func (e Env) Validate() error {
	switch e.ArchiveBackend {
	case BackendJSON, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, e.ArchiveBackend)
	}
}

// SettingsFile returns the settings INI path.
func (e Env) SettingsFile() string {
	if e.SettingsPath != "" {
		return e.SettingsPath
	}
	return filepath.Join(e.DataDir, "SKSE", "Plugins", "po3_"+pluginFolder+".ini")
}

// DenylistDir returns the folder scanned for denylist INI files.
func (e Env) DenylistDir() string {
	return filepath.Join(e.DataDir, pluginFolder)
}

// ArchiveJSONPath returns the JSON knowledge archive path.
func (e Env) ArchiveJSONPath() string {
	return filepath.Join(e.DataDir, pluginFolder, "IngredientKnownEffects.json")
}

// ArchiveDBPath returns the SQLite knowledge archive path.
func (e Env) ArchiveDBPath() string {
	return filepath.Join(e.DataDir, pluginFolder, "IngredientKnownEffects.db")
}
