package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/alchemyrand/internal/config"
	"github.com/example/alchemyrand/internal/wire"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize randomizer settings",
	}

	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configInitCmd())

	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings and paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			printConfig(os.Stdout, wire.Env(), wire.Settings(false))
			return nil
		},
	}
}

func configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the defaults",
		Long: `Write the settings file with default values and a comment per key.

Examples:
  alchemyrand config init
  alchemyrand config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := wire.Env().SettingsFile()
			return initSettings(os.Stdout, path, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing settings file")
	return cmd
}

func initSettings(out io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("settings file already exists: %s (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat settings file: %w", err)
	}
	if force {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove settings file: %w", err)
		}
	}

	if err := config.SaveSettings(path, config.DefaultSettings()); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Wrote %s\n", path)
	return nil
}

func printConfig(out io.Writer, env config.Env, settings config.Settings) {
	bold := color.New(color.Bold)
	policy, err := settings.Policy()

	bold.Fprintln(out, "Paths")
	fmt.Fprintf(out, "  Settings:  %s\n", env.SettingsFile())
	fmt.Fprintf(out, "  Denylists: %s\n", env.DenylistDir())
	switch env.ArchiveBackend {
	case config.BackendSQLite:
		fmt.Fprintf(out, "  Archive:   %s (sqlite)\n", env.ArchiveDBPath())
	default:
		fmt.Fprintf(out, "  Archive:   %s (json)\n", env.ArchiveJSONPath())
	}
	fmt.Fprintln(out)

	bold.Fprintln(out, "Settings")
	fmt.Fprintf(out, "  %s = %d (%s)\n", config.KeyRandomMethod, settings.RandomMethod, policy.Method)
	fmt.Fprintf(out, "  %s = %d (%s)\n", config.KeyRandomizeOn, settings.RandomizeOn, policy.Trigger)
	fmt.Fprintf(out, "  %s = %t\n", config.KeyUnlearnIngredients, settings.UnlearnIngredients)
	fmt.Fprintf(out, "  %s = %d\n", config.KeySeed, settings.Seed)
	if err != nil {
		fmt.Fprintf(out, "\n%s %v\n", color.New(color.FgYellow).Sprint("⚠"), err)
	}
}
