package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/alchemyrand/internal/core/effect"
	"github.com/example/alchemyrand/internal/ports/primary"
	"github.com/example/alchemyrand/internal/ports/secondary"
)

// ReportAdapter prints catalog and controller state.
type ReportAdapter struct {
	out io.Writer
}

// NewReportAdapter creates a new ReportAdapter.
func NewReportAdapter(out io.Writer) *ReportAdapter {
	return &ReportAdapter{out: out}
}

// Catalog prints each ingredient's effects and known flags. Ingredients
// whose effects differ from baseline are marked.
func (a *ReportAdapter) Catalog(items []secondary.Ingredient, baseline map[string]effect.Group) {
	changed := color.New(color.FgHiMagenta)

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INGREDIENT\tKNOWN\tEFFECTS\t")
	for _, item := range items {
		marker := ""
		if base, ok := baseline[item.EditorID()]; ok && base != item.Effects() {
			marker = changed.Sprint("*")
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\t\n", item.EditorID(), marker, FormatFlags(item.KnownFlags()), FormatGroup(item.Effects()))
	}
	w.Flush()
}

// Groups prints a shuffled set, one group per line.
func (a *ReportAdapter) Groups(set effect.Set) {
	for i, g := range set {
		status := color.New(color.FgGreen).Sprint("✓")
		if !g.Unique() {
			status = color.New(color.FgRed).Sprint("✗")
		}
		fmt.Fprintf(a.out, "%s %3d  %s\n", status, i, FormatGroup(g))
	}
}

// Status prints a controller snapshot.
func (a *ReportAdapter) Status(s primary.ControllerStatus) {
	fmt.Fprintf(a.out, "\nState:        %s\n", color.New(color.FgCyan).Sprint(s.State))
	fmt.Fprintf(a.out, "Method:       %s\n", s.Policy.Method)
	fmt.Fprintf(a.out, "Trigger:      %s\n", s.Policy.Trigger)
	fmt.Fprintf(a.out, "Unlearn:      %t\n", s.Policy.UnlearnOnShuffle)
	fmt.Fprintf(a.out, "Seed:         %d\n", s.Policy.FixedSeed)
	fmt.Fprintf(a.out, "Save:         %s\n", orNone(s.CurrentSave))
	fmt.Fprintf(a.out, "Player:       %s\n", s.PlayerID)
	fmt.Fprintf(a.out, "Pool:         %d ingredients (%d denylisted)\n", s.PoolSize, s.DenylistSize)
	fmt.Fprintf(a.out, "Known:        %d ingredients\n", s.KnownIngredients)
	fmt.Fprintf(a.out, "Archive:      %d saves\n", s.ArchivedSaves)
	fmt.Fprintf(a.out, "Playthroughs: %d\n", s.Playthroughs)
	fmt.Fprintln(a.out)
}

// FormatGroup joins the effect names of a group.
func FormatGroup(g effect.Group) string {
	out := ""
	for slot, e := range g {
		if slot > 0 {
			out += ", "
		}
		out += effectName(e)
	}
	return out
}

func effectName(e effect.Effect) string {
	switch {
	case e.Base == nil:
		return "-"
	case e.Base.Name != "":
		return e.Base.Name
	default:
		return e.Base.EditorID
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
