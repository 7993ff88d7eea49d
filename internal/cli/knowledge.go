package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/alchemyrand/internal/wire"
)

// KnowledgeCmd returns the knowledge command
func KnowledgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Inspect the known-effects archive",
		Long: `List, show and forget the per-save known-effect records.

The archive backend is chosen with ALCHEMYRAND_ARCHIVE_BACKEND (json or sqlite).`,
	}

	cmd.AddCommand(knowledgeListCmd())
	cmd.AddCommand(knowledgeShowCmd())
	cmd.AddCommand(knowledgeForgetCmd())
	cmd.AddCommand(knowledgeWhoCmd())

	return cmd
}

func knowledgeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived saves",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.KnowledgeAdapter().List(context.Background())
			return err
		},
	}
}

func knowledgeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [save]",
		Short: "Show the known effects recorded for a save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.KnowledgeAdapter().Show(context.Background(), args[0])
			return err
		},
	}
}

func knowledgeForgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget [save]",
		Short: "Remove a save from the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.KnowledgeAdapter().Forget(context.Background(), args[0])
		},
	}
}

func knowledgeWhoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "who [ingredient]",
		Short: "Show which saves know an ingredient's effects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.KnowledgeAdapter().KnownBy(context.Background(), args[0])
			return err
		},
	}
}
