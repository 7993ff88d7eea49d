package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cliadapter "github.com/example/alchemyrand/internal/adapters/cli"
	"github.com/example/alchemyrand/internal/app"
	"github.com/example/alchemyrand/internal/core/effect"
	"github.com/example/alchemyrand/internal/core/shuffle"
	"github.com/example/alchemyrand/internal/scenario"
	"github.com/example/alchemyrand/internal/wire"
)

// ShuffleCmd returns the shuffle command
func ShuffleCmd() *cobra.Command {
	var opts shuffleOptions

	cmd := &cobra.Command{
		Use:   "shuffle [scenario.yaml]",
		Short: "Run the shuffle engine over a scenario's catalog",
		Long: `Capture the effect pool of a scenario's catalog (minus its denylist),
shuffle it once and print the resulting groups. No events are replayed and
nothing is persisted.

Examples:
  alchemyrand shuffle run.yaml --seed 42
  alchemyrand shuffle run.yaml --method 0 --workers 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("method") {
				opts.Method = wire.Settings(false).RandomMethod
			}
			if !cmd.Flags().Changed("workers") {
				opts.Workers = wire.Env().Workers
			}
			_, err = runShuffle(context.Background(), os.Stdout, wire.Logger(), sc, opts)
			return err
		},
	}

	cmd.Flags().IntVar(&opts.Method, "method", 1, "Randomization method (0 = swap, 1 = shuffle)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "RNG seed (0 = random)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Uniqueness workers (0 = one per CPU)")

	return cmd
}

type shuffleOptions struct {
	Method  int
	Seed    uint64
	Workers int
}

func runShuffle(ctx context.Context, out io.Writer, logger *zap.Logger, sc *scenario.Scenario, opts shuffleOptions) (shuffle.Result, error) {
	method, err := shuffle.ParseMethod(opts.Method)
	if err != nil {
		return shuffle.Result{}, err
	}

	catalog := sc.BuildCatalog()
	catalog.MarkLoaded()

	deny, skipped := app.ResolveDenylist(catalog, sc.Denylist)
	for _, err := range skipped {
		logger.Warn("denylist: skipped entry", zap.Error(err))
	}
	pool, err := app.CapturePool(catalog, deny)
	if err != nil {
		return shuffle.Result{}, fmt.Errorf("failed to capture effect pool: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = shuffle.FreshSeed()
	}

	res, err := shuffle.NewEngine(opts.Workers).Run(pool.Groups, seed, method)
	if err != nil {
		return shuffle.Result{}, fmt.Errorf("failed to shuffle: %w", err)
	}

	fmt.Fprintf(out, "Shuffled %d ingredient effects (%d individual effects | RNG seed : %d)\n",
		pool.Len(), pool.Len()*effect.GroupSize, seed)
	if method == shuffle.MethodShuffle {
		fmt.Fprintf(out, "Uniqueness: %d workers, %d passes\n", res.Chunks, res.Passes)
	}
	fmt.Fprintln(out)
	cliadapter.NewReportAdapter(out).Groups(res.Groups)
	return res, nil
}
