// Package wire provides dependency injection for the randomizer CLI.
// It creates singleton services with lazy initialization.
package wire

import (
	"errors"
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/alchemyrand/internal/adapters/cli"
	"github.com/example/alchemyrand/internal/adapters/filesystem"
	"github.com/example/alchemyrand/internal/adapters/host"
	"github.com/example/alchemyrand/internal/adapters/sqlite"
	"github.com/example/alchemyrand/internal/app"
	"github.com/example/alchemyrand/internal/config"
	"github.com/example/alchemyrand/internal/core/effect"
	"github.com/example/alchemyrand/internal/core/lifecycle"
	"github.com/example/alchemyrand/internal/core/shuffle"
	"github.com/example/alchemyrand/internal/db"
	"github.com/example/alchemyrand/internal/logging"
	"github.com/example/alchemyrand/internal/ports/secondary"
	"github.com/example/alchemyrand/internal/scenario"
)

var (
	env          config.Env
	logger       *zap.Logger
	archiveStore secondary.ArchiveStore
	verbose      bool
	initialized  bool
	once         sync.Once
)

// SetVerbose enables debug logging to stderr. Call it before any other
// accessor; later calls have no effect.
func SetVerbose(v bool) {
	verbose = v
}

// Env returns the parsed process environment.
func Env() config.Env {
	once.Do(initServices)
	return env
}

// Logger returns the singleton logger.
func Logger() *zap.Logger {
	once.Do(initServices)
	return logger
}

// ArchiveStore returns the knowledge archive selected by the environment.
func ArchiveStore() secondary.ArchiveStore {
	once.Do(initServices)
	return archiveStore
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	env, err = config.LoadEnv()
	if err != nil {
		log.Fatalf("failed to load environment: %v", err)
	}

	logger, err = logging.New(logging.Options{
		Level:   env.LogLevel,
		File:    env.LogFile,
		Console: verbose,
		Verbose: verbose,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	switch env.ArchiveBackend {
	case config.BackendSQLite:
		database, err := db.GetDB(env.ArchiveDBPath())
		if err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		archiveStore = sqlite.NewArchiveRepository(database)
	default:
		archiveStore = filesystem.NewArchiveStore(env.ArchiveJSONPath())
	}
	initialized = true
}

// Close flushes the logger and closes the database, if they were created.
func Close() {
	if !initialized {
		return
	}
	_ = logger.Sync()
	if err := db.Close(); err != nil {
		log.Printf("failed to close database: %v", err)
	}
}

// Settings loads the settings file. A missing or unreadable file yields the
// defaults. When rewrite is set and the file was read, it is written back
// in canonical form.
func Settings(rewrite bool) config.Settings {
	once.Do(initServices)
	return readSettings(env.SettingsFile(), rewrite, logger)
}

func readSettings(path string, rewrite bool, logger *zap.Logger) config.Settings {
	settings, err := config.LoadSettings(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigMissing) {
			logger.Info("settings file not found, using defaults", zap.String("path", path))
		} else {
			logger.Warn("failed to read settings", zap.Error(err))
		}
		return settings
	}
	if rewrite {
		if err := config.SaveSettings(path, settings); err != nil {
			logger.Warn("failed to rewrite settings", zap.Error(err))
		}
	}
	return settings
}

// Simulation is an in-memory host session driving a fresh controller.
type Simulation struct {
	*scenario.Session
	Controller *app.Controller
	// Baseline holds every ingredient's effects before any event ran.
	Baseline map[string]effect.Group
}

// NewSimulation builds the host, controller and replay session for sc.
// The denylist folder and the scenario's own denylist are both read.
func NewSimulation(sc *scenario.Scenario, policy lifecycle.Policy) *Simulation {
	once.Do(initServices)

	catalog := sc.BuildCatalog()
	baseline := make(map[string]effect.Group)
	for _, item := range catalog.Items() {
		baseline[item.EditorID()] = item.Effects()
	}

	state := host.NewState(sc.LivePlayer)
	queue := host.NewTaskQueue()
	controller := app.NewController(app.ControllerDeps{
		Policy:  policy,
		Catalog: catalog,
		Host:    state,
		Tasks:   queue,
		Archive: archiveStore,
		Denylist: app.Denylists{
			filesystem.NewDenylistLoader(env.DenylistDir(), logger),
			scenario.Denylister(sc.Denylist),
		},
		Engine: shuffle.NewEngine(env.Workers),
		Logger: logger,
	})

	return &Simulation{
		Session: &scenario.Session{
			Controller: controller,
			Catalog:    catalog,
			State:      state,
			Queue:      queue,
			Logger:     logger,
		},
		Controller: controller,
		Baseline:   baseline,
	}
}

// KnowledgeAdapter returns a new KnowledgeAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func KnowledgeAdapter() *cliadapter.KnowledgeAdapter {
	return KnowledgeAdapterWithOutput(os.Stdout)
}

// KnowledgeAdapterWithOutput returns a new KnowledgeAdapter writing to the given output.
func KnowledgeAdapterWithOutput(out io.Writer) *cliadapter.KnowledgeAdapter {
	once.Do(initServices)
	return cliadapter.NewKnowledgeAdapter(archiveStore, out)
}

// ReportAdapter returns a new ReportAdapter writing to stdout.
func ReportAdapter() *cliadapter.ReportAdapter {
	return cliadapter.NewReportAdapter(os.Stdout)
}
