package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/navkit/internal/config"
	"github.com/oakwood-commons/navkit/pkg/logger"
	"github.com/oakwood-commons/navkit/pkg/nav"
)

var resolveCurrent string

var resolveCmd = &cobra.Command{
	Use:   "resolve <container-path>",
	Short: "Print the parameters in effect for a container path",
	Long: `resolve computes the effective parameter set for a container path given
the shell location passed via --current. A --current path inside the dashboard
section resolves against the pinned containers; any other location resolves
against the current path itself.`,
	Example: "\n  navkit resolve inventory --current 'inventory?{\"q\":\"foo\"}'\n  navkit resolve inventory --current dashboard\n",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(runParams().ConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		lgr := logger.FromContext(rootCtx)
		engine, err := buildEngine(cfg, *lgr)
		if err != nil {
			return err
		}

		navigator := engine.Navigator
		navigator.State().CurrentPath = resolveCurrent

		p := navigator.ResolveParams(args[0])
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))

		ctx := navigator.ContextFor(resolveCurrent)
		if ctx == nav.ContextDashboard {
			lgr.V(1).Info("resolved in dashboard context", "container", args[0])
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveCurrent, "current", "", "shell location to resolve against")
}
