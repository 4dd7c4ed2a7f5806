package root

import (
	"github.com/spf13/cobra"

	"github.com/dexora-ai/dexora/pkg/cli"
	"github.com/dexora-ai/dexora/pkg/render"
)

type chatFlags struct {
	hideToolCalls bool
	outputJSON    bool
}

func newChatCmd(root *rootFlags) *cobra.Command {
	var flags chatFlags

	cmd := &cobra.Command{
		Use:   "chat [message | -]",
		Short: "Talk to Dexora in the terminal",
		Long: `Start an interactive conversation. With a message, run a single turn and exit;
"-" reads that message from stdin.`,
		Example: `  dexora chat
  dexora chat "find files about the quarterly budget"
  echo "show HR dashboard" | dexora chat -`,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, env, err := root.loadConfig(ctx)
			if err != nil {
				return err
			}

			rt, err := newRuntime(ctx, cfg, env, root.enableOtel)
			if err != nil {
				return err
			}
			defer closeRuntime(rt)

			out := cli.NewPrinter(cmd.OutOrStdout())
			return cli.Run(ctx, out, cli.Config{
				AppName:       "Dexora",
				HideToolCalls: flags.hideToolCalls,
				OutputJSON:    flags.outputJSON,
			}, rt, render.DefaultComponents(), cmd.InOrStdin(), args)
		},
	}

	cmd.Flags().BoolVar(&flags.hideToolCalls, "hide-tool-calls", false, "Do not print tool calls and their summaries")
	cmd.Flags().BoolVar(&flags.outputJSON, "json", false, "Print runtime events as JSON lines")

	return cmd
}
