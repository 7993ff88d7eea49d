package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/alchemyrand/internal/core/effect"
	"github.com/example/alchemyrand/internal/core/knowledge"
	"github.com/example/alchemyrand/internal/ports/secondary"
)

// ErrSaveNotFound is returned when a save has no archive entry.
var ErrSaveNotFound = errors.New("save not found in archive")

// KnowledgeAdapter is a thin adapter that translates CLI operations to
// archive store calls.
type KnowledgeAdapter struct {
	store secondary.ArchiveStore
	out   io.Writer
}

// NewKnowledgeAdapter creates a new KnowledgeAdapter over store.
func NewKnowledgeAdapter(store secondary.ArchiveStore, out io.Writer) *KnowledgeAdapter {
	return &KnowledgeAdapter{store: store, out: out}
}

// List prints every archived save with its number of known ingredients.
func (a *KnowledgeAdapter) List(ctx context.Context) ([]string, error) {
	archive, err := a.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive: %w", err)
	}

	saves := archive.Saves()
	if len(saves) == 0 {
		fmt.Fprintln(a.out, "No saves recorded.")
		return saves, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SAVE\tINGREDIENTS")
	fmt.Fprintln(w, "----\t-----------")
	for _, save := range saves {
		fmt.Fprintf(w, "%s\t%d\n", save, len(archive[save]))
	}
	w.Flush()
	return saves, nil
}

// Show prints the known-effect flags recorded for one save.
func (a *KnowledgeAdapter) Show(ctx context.Context, save string) (knowledge.Map, error) {
	archive, err := a.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive: %w", err)
	}
	known, ok := archive.Get(save)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSaveNotFound, save)
	}

	fmt.Fprintf(a.out, "\nSave: %s\n", save)
	if len(known) == 0 {
		fmt.Fprintln(a.out, "No ingredients known.")
		return known, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "INGREDIENT\tKNOWN")
	for _, id := range sortedKeys(known) {
		fmt.Fprintf(w, "%s\t%s\n", id, FormatFlags(known[id]))
	}
	w.Flush()
	fmt.Fprintln(a.out)
	return known, nil
}

// Forget removes one save from the archive.
func (a *KnowledgeAdapter) Forget(ctx context.Context, save string) error {
	archive, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load archive: %w", err)
	}
	if !archive.Forget(save) {
		return fmt.Errorf("%w: %s", ErrSaveNotFound, save)
	}
	if err := a.store.Save(ctx, archive); err != nil {
		return fmt.Errorf("failed to save archive: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Forgot %s\n", save)
	return nil
}

// knownByQuerier is implemented by stores that can answer per-ingredient
// queries directly.
type knownByQuerier interface {
	KnownBy(ctx context.Context, editorID string) (map[string]knowledge.Flags, error)
}

// KnownBy prints, for every save, what is known about one ingredient.
func (a *KnowledgeAdapter) KnownBy(ctx context.Context, editorID string) (map[string]knowledge.Flags, error) {
	var found map[string]knowledge.Flags
	if q, ok := a.store.(knownByQuerier); ok {
		got, err := q.KnownBy(ctx, editorID)
		if err != nil {
			return nil, fmt.Errorf("failed to query archive: %w", err)
		}
		found = got
	} else {
		archive, err := a.store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load archive: %w", err)
		}
		found = map[string]knowledge.Flags{}
		for save, known := range archive {
			for id, flags := range known {
				if strings.EqualFold(id, editorID) {
					found[save] = flags
				}
			}
		}
	}

	if len(found) == 0 {
		fmt.Fprintf(a.out, "No save knows %s.\n", editorID)
		return found, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SAVE\tKNOWN")
	for _, save := range slices.Sorted(maps.Keys(found)) {
		fmt.Fprintf(w, "%s\t%s\n", save, FormatFlags(found[save]))
	}
	w.Flush()
	return found, nil
}

// FormatFlags renders known slots as filled circles, e.g. "●○●○".
func FormatFlags(f knowledge.Flags) string {
	known := color.New(color.FgGreen)
	var b strings.Builder
	for slot := range effect.GroupSize {
		if f.Known(slot) {
			b.WriteString(known.Sprint("●"))
		} else {
			b.WriteString("○")
		}
	}
	return b.String()
}

func sortedKeys(m knowledge.Map) []string {
	return slices.Sorted(maps.Keys(m))
}
