// Package cmd implements the navkit CLI: the interactive shell plus
// inspection subcommands for routes, parameter resolution, and the
// merged config.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/navkit/internal/config"
	"github.com/oakwood-commons/navkit/internal/ui"
	"github.com/oakwood-commons/navkit/pkg/logger"
	"github.com/oakwood-commons/navkit/pkg/settings"
)

var (
	rootCtx context.Context

	configFile  string
	startPath   string
	debug       bool
	noColor     bool
	watchConfig bool
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Interactive navigation shell over a configured route tree",
	Long: `navkit opens an interactive shell over the route tree declared in the
config file. Paths carry their parameters inline (section/route?{"key":"value"});
pinned containers keep independent parameter state on the dashboard.`,
	Example: "\n  navkit\n  navkit --config nav.yaml --start inventory\n  navkit resolve inventory --current 'inventory?{\"q\":\"foo\"}'\n  navkit routes --config nav.yaml\n",
	Args:    cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// Map the debug flag to the zap level: debug => -1, else info.
		var level int8 = 0
		if debug {
			level = -1
		}
		run := settings.NewCliParams()
		run.MinLogLevel = level
		run.ConfigPath = configFile
		run.StartPath = startPath
		run.NoColor = noColor
		run.WatchConfig = watchConfig

		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = settings.IntoContext(logger.WithLogger(context.Background(), lgr), run)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		lgr := logger.FromContext(rootCtx)
		run := runParams()

		cfg, err := config.Load(run.ConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		engine, err := buildEngine(cfg, *lgr)
		if err != nil {
			return err
		}

		shell := ui.NewShell(engine.Navigator, engine.Board, engine.Stack, engine.History,
			ui.WithNoColor(run.NoColor),
			ui.WithShellLogger(*lgr),
		)
		engine.BindPrompt(shell)

		if run.WatchConfig && run.ConfigPath != "" {
			ctx, cancel := context.WithCancel(rootCtx)
			defer cancel()
			go func() {
				err := config.Watch(ctx, run.ConfigPath, *lgr, func(next config.File) {
					next.Apply(engine.Navigator.Registry())
					next.ApplyPins(engine.Board)
				})
				if err != nil && ctx.Err() == nil {
					lgr.Error(err, "config watcher stopped")
				}
			}()
		}

		start := run.StartPath
		if start == "" {
			start = cfg.App.StartPath
		}
		return ui.Run(shell, start, 0, 0)
	},
}

// runParams returns the run settings stored by PersistentPreRun, or CLI
// defaults when a command function is invoked outside Execute.
func runParams() *settings.Run {
	if rootCtx != nil {
		if run, ok := settings.FromContext(rootCtx); ok {
			return run
		}
	}
	return settings.NewCliParams()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file (sections, pins, guard)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVar(&startPath, "start", "", "path to open first (default from config)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().BoolVar(&watchConfig, "watch", false, "reload the config file on change")

	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(configCmd)

	if noColorEnv := os.Getenv("NO_COLOR"); noColorEnv != "" {
		noColor = true
	}
}
