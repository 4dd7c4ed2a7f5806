package root

import (
	"cmp"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dexora-ai/dexora/pkg/profile"
	"github.com/dexora-ai/dexora/pkg/server"
	"github.com/dexora-ai/dexora/pkg/session"
)

func newServeCmd(root *rootFlags) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve conversations, dashboards and the enterprise forms over HTTP.
The listen address is host:port, unix://path, npipe://name or fd://N.`,
		Example: `  dexora serve
  dexora serve --listen unix:///tmp/dexora.sock`,
		GroupID:     "core",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{consoleLogs: ""},
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

			srv := server.New(rt,
				session.NewInMemorySessionStore(cfg.SessionTTL()),
				profile.NewInMemoryStore(),
				server.WithRateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst),
			)

			addr := cmp.Or(listen, cfg.Server.Listen)
			ln, err := server.Listen(ctx, addr)
			if err != nil {
				return err
			}
			defer ln.Close()

			slog.Info("Serving", "addr", addr, "model", rt.ModelID())
			return srv.Serve(ctx, ln)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Address to listen on (default from the config file)")

	return cmd
}
