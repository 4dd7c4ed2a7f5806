package root

import (
	"github.com/spf13/cobra"

	"github.com/dexora-ai/dexora/pkg/cli"
	"github.com/dexora-ai/dexora/pkg/tools/builtin"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "tools",
		Short:   "List the tools offered to the model",
		GroupID: "advanced",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := builtin.NewRegistry()
			if err != nil {
				return err
			}

			cli.NewPrinter(cmd.OutOrStdout()).PrintTools(registry.Tools())
			return nil
		},
	}
}
