package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/ini.v1"

	"github.com/example/alchemyrand/internal/ports/secondary"
)

// ErrDenylistUnreadable is reported for a denylist file that could not be
// parsed. Other files are still read.
var ErrDenylistUnreadable = errors.New("denylist file unreadable")

// denylistSection holds the excluded editor IDs; values are ignored.
const denylistSection = "Blacklist"

// DenylistLoader implements secondary.DenylistSource over every *.ini file
// in a folder.
type DenylistLoader struct {
	dir    string
	logger *zap.Logger
}

// NewDenylistLoader creates a loader for dir.
func NewDenylistLoader(dir string, logger *zap.Logger) *DenylistLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DenylistLoader{dir: dir, logger: logger}
}

// Load returns the editor IDs of every readable file, in file name order.
// A missing folder or a folder without INI files yields no IDs and no error.
func (l *DenylistLoader) Load(ctx context.Context) ([]string, error) {
	if _, err := os.Stat(l.dir); errors.Is(err, os.ErrNotExist) {
		l.logger.Info("denylist folder not found", zap.String("dir", l.dir))
		return nil, nil
	}

	paths, err := filepath.Glob(filepath.Join(l.dir, "*.ini"))
	if err != nil {
		return nil, fmt.Errorf("failed to list denylist folder: %w", err)
	}
	if len(paths) == 0 {
		l.logger.Warn("no .ini files found in denylist folder", zap.String("dir", l.dir))
		return nil, nil
	}
	sort.Strings(paths)
	l.logger.Info("matching inis found", zap.Int("count", len(paths)))

	var (
		ids  []string
		errs []error
	)
	for _, path := range paths {
		l.logger.Info("reading denylist", zap.String("ini", path))

		entries, err := readDenylistFile(path)
		if err != nil {
			l.logger.Error("couldn't read INI", zap.String("ini", path), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if len(entries) > 0 {
			l.logger.Info("denylist entries", zap.String("ini", path), zap.Int("count", len(entries)))
		}
		ids = append(ids, entries...)
	}

	return ids, errors.Join(errs...)
}

func readDenylistFile(path string) ([]string, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:    true,
		InsensitiveSections: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDenylistUnreadable, filepath.Base(path), err)
	}

	section, err := f.GetSection(denylistSection)
	if err != nil {
		return nil, nil
	}

	var ids []string
	for _, key := range section.Keys() {
		if id := strings.TrimSpace(key.Name()); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Ensure DenylistLoader implements the interface
var _ secondary.DenylistSource = (*DenylistLoader)(nil)
