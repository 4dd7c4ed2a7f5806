package root

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dexora-ai/dexora/pkg/cli"
	"github.com/dexora-ai/dexora/pkg/config"
	"github.com/dexora-ai/dexora/pkg/environment"
	"github.com/dexora-ai/dexora/pkg/logging"
	"github.com/dexora-ai/dexora/pkg/paths"
)

const AppName = "dexora"

type rootFlags struct {
	enableOtel  bool
	debugMode   bool
	logFilePath string
	configPath  string
	envFiles    []string

	logFile      io.Closer
	otelShutdown func(context.Context) error
}

// consoleLogs marks commands that log to stderr even without --debug.
const consoleLogs = "console-logs"

func NewRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   AppName,
		Short: "dexora - enterprise chat assistant",
		Long:  "dexora answers questions and opens HR, sales, marketing, finance and engineering dashboards, file search, appointment and document forms",
		Example: `  dexora
  dexora chat "show me the sales dashboard"
  dexora serve --listen 127.0.0.1:8080
  dexora dashboard hr --filter department=Sales`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, console := cmd.Annotations[consoleLogs]
			if err := flags.setupLogging(cmd.ErrOrStderr(), console); err != nil {
				// If logging setup fails, fall back to stderr so we still get logs
				slog.SetDefault(slog.New(logging.NewFileHandler(cmd.ErrOrStderr(), slog.LevelDebug)))
				slog.Warn("Failed to open the debug log", "error", err)
			}

			if flags.enableOtel {
				shutdown, err := initOTelSDK(cmd.Context())
				if err != nil {
					slog.Warn("Failed to initialize OpenTelemetry SDK", "error", err)
				} else {
					flags.otelShutdown = shutdown
					slog.Debug("OpenTelemetry SDK initialized successfully")
				}
			}

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if flags.otelShutdown != nil {
				if err := flags.otelShutdown(context.WithoutCancel(cmd.Context())); err != nil {
					slog.Error("Failed to flush traces", "error", err)
				}
			}
			if flags.logFile != nil {
				if err := flags.logFile.Close(); err != nil {
					slog.Error("Failed to close log file", "error", err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.debugMode, "debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.enableOtel, "otel", "o", false, "Enable OpenTelemetry tracing")
	cmd.PersistentFlags().StringVar(&flags.logFilePath, "log-file", "", "Path to debug log file (default: ~/.dexora/dexora.debug.log; only used with --debug)")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to the config file (default: ~/.config/dexora/config.yaml)")
	cmd.PersistentFlags().StringSliceVar(&flags.envFiles, "env-from-file", nil, "Read environment variables from these files")

	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "advanced", Title: "Advanced Commands:"})

	cmd.AddCommand(newChatCmd(&flags))
	cmd.AddCommand(newServeCmd(&flags))
	cmd.AddCommand(newDashboardCmd())
	cmd.AddCommand(newToolsCmd())
	cmd.AddCommand(newConfigCmd(&flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func Execute(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args ...string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(defaultToChat(rootCmd, args))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return processErr(ctx, err, stderr, rootCmd)
	}
	return nil
}

// defaultToChat prepends "chat" to the argument list when no subcommand is
// specified so that bare "dexora" (or "dexora --debug", etc.) opens a
// conversation. Help flags (--help / -h) are left alone.
func defaultToChat(rootCmd *cobra.Command, args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append([]string{"chat"}, args...)
		case arg == "--help" || arg == "-h":
			return args
		case strings.HasPrefix(arg, "-"):
			if takesValue(rootCmd, arg) {
				i++
			}
			continue
		case isSubcommand(rootCmd, arg):
			return args
		default:
			return append([]string{"chat"}, args...)
		}
	}

	return append([]string{"chat"}, args...)
}

// takesValue reports whether arg is a persistent flag whose value is the
// next argument, as in "--config path".
func takesValue(cmd *cobra.Command, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}

	lookup := cmd.PersistentFlags().Lookup
	name, long := strings.CutPrefix(arg, "--")
	if !long {
		name = strings.TrimPrefix(arg, "-")
		lookup = cmd.PersistentFlags().ShorthandLookup
	}

	f := lookup(name)
	return f != nil && f.NoOptDefVal == ""
}

// isSubcommand reports whether name matches a registered subcommand or alias.
func isSubcommand(cmd *cobra.Command, name string) bool {
	switch name {
	case "help", "completion", "__complete", "__completeNoDesc":
		return true
	}
	for _, sub := range cmd.Commands() {
		if sub.Name() == name || sub.HasAlias(name) {
			return true
		}
	}
	return false
}

func processErr(ctx context.Context, err error, stderr io.Writer, rootCmd *cobra.Command) error {
	if ctx.Err() != nil {
		return ctx.Err()
	} else if envErr, ok := errors.AsType[*environment.RequiredEnvError](err); ok {
		fmt.Fprintln(stderr, "The following environment variables must be set:")
		for _, v := range envErr.Missing {
			fmt.Fprintf(stderr, " - %s\n", v)
		}
		fmt.Fprintln(stderr, "\nEither:\n - Set those environment variables before running dexora\n - Run dexora with --env-from-file\n - Switch to the offline backend with DEXORA_BACKEND=offline")
	} else if _, ok := errors.AsType[cli.RuntimeError](err); ok {
		// The fallback reply has already been printed
	} else {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr)
		if strings.HasPrefix(err.Error(), "unknown command ") || strings.HasPrefix(err.Error(), "accepts ") {
			_ = rootCmd.Usage()
		}
	}

	return err
}

// setupLogging configures slog. Without --debug, console commands log at
// info level to stderr and the others log nothing, keeping the transcript
// clean. With --debug, logs go to a rotating file <dataDir>/dexora.debug.log,
// or to --log-file, rotated at 10MB with 3 backups.
func (f *rootFlags) setupLogging(stderr io.Writer, console bool) error {
	if !f.debugMode {
		if !console {
			slog.SetDefault(slog.New(logging.Discard()))
			return nil
		}
		slog.SetDefault(slog.New(logging.NewConsoleHandler(stderr, slog.LevelInfo, isTerminal(stderr))))
		return nil
	}

	path := cmp.Or(strings.TrimSpace(f.logFilePath), paths.DebugLogFile())

	logFile, err := logging.NewRotatingFile(path)
	if err != nil {
		return err
	}
	f.logFile = logFile

	slog.SetDefault(slog.New(logging.NewFileHandler(logFile, slog.LevelDebug)))
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// loadConfig reads the config file and resolves the backend from the
// environment.
func (f *rootFlags) loadConfig(ctx context.Context) (*config.Config, environment.Provider, error) {
	env, err := environment.NewDefaultProvider(f.envFiles...)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, nil, err
	}
	cfg.ApplyEnv(ctx, env)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, env, nil
}
