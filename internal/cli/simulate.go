package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/alchemyrand/internal/config"
	"github.com/example/alchemyrand/internal/ports/secondary"
	"github.com/example/alchemyrand/internal/scenario"
	"github.com/example/alchemyrand/internal/wire"
)

// SimulateCmd returns the simulate command
func SimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [scenario.yaml]",
		Short: "Replay a scripted host session against the randomizer",
		Long: `Replay a scenario: an ingredient catalog plus the host events
(post load, data loaded, save loads, saves, menus, crafting) delivered in order.

Settings come from the settings file, then the scenario's settings block, then
flags. Knowledge is read from and written to the configured archive.

Examples:
  alchemyrand simulate scenarios/two-characters.yaml
  alchemyrand simulate run.yaml --trigger 0 --seed 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			settings := sc.Settings.Apply(wire.Settings(true))
			settings, err = settingsOverrides(cmd, settings)
			if err != nil {
				return err
			}
			policy, err := settings.Policy()
			if err != nil {
				wire.Logger().Warn("invalid settings, defaults used", zap.Error(err))
			}

			sim := wire.NewSimulation(sc, policy)
			if err := sim.Replay(ctx, sc.Steps); err != nil {
				return fmt.Errorf("failed to replay scenario: %w", err)
			}

			items := sim.Catalog.Items()
			ingredients := make([]secondary.Ingredient, len(items))
			for i, item := range items {
				ingredients[i] = item
			}

			report := wire.ReportAdapter()
			fmt.Printf("\nScenario: %s\n\n", sc.Name)
			report.Catalog(ingredients, sim.Baseline)
			report.Status(sim.Controller.Status())
			return nil
		},
	}

	addSettingsFlags(cmd)
	return cmd
}

func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().Int("method", 0, "Randomization method (0 = swap, 1 = shuffle)")
	cmd.Flags().Int("trigger", 0, "Randomize on (0 = game load, 1 = playthrough, 2 = alchemy menu)")
	cmd.Flags().Bool("unlearn", false, "Forget learned effects when shuffling")
	cmd.Flags().Uint64("seed", 0, "Fixed RNG seed (0 = random)")
}

// settingsOverrides applies the settings flags the user actually set.
func settingsOverrides(cmd *cobra.Command, s config.Settings) (config.Settings, error) {
	flags := cmd.Flags()
	var err error
	if flags.Changed("method") {
		if s.RandomMethod, err = flags.GetInt("method"); err != nil {
			return s, err
		}
	}
	if flags.Changed("trigger") {
		if s.RandomizeOn, err = flags.GetInt("trigger"); err != nil {
			return s, err
		}
	}
	if flags.Changed("unlearn") {
		if s.UnlearnIngredients, err = flags.GetBool("unlearn"); err != nil {
			return s, err
		}
	}
	if flags.Changed("seed") {
		if s.Seed, err = flags.GetUint64("seed"); err != nil {
			return s, err
		}
	}
	return s, nil
}
