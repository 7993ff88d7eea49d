package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/alchemyrand/internal/cli"
	"github.com/example/alchemyrand/internal/version"
	"github.com/example/alchemyrand/internal/wire"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "alchemyrand",
		Short:   "Alchemy effect randomizer",
		Version: version.String(),
		Long: `alchemyrand shuffles ingredient effects, keeps per-save records of which
effects the player has learned and decides, by policy, when to re-randomize.

The host game is simulated from YAML scenarios; knowledge is stored in a JSON
or SQLite archive under the data directory.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			wire.SetVerbose(verbose)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(cli.SimulateCmd())
	rootCmd.AddCommand(cli.ShuffleCmd())
	rootCmd.AddCommand(cli.KnowledgeCmd())
	rootCmd.AddCommand(cli.ConfigCmd())

	err := rootCmd.Execute()
	wire.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
