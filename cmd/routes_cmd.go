package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/navkit/internal/config"
	"github.com/oakwood-commons/navkit/pkg/logger"
	"github.com/oakwood-commons/navkit/pkg/routes"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the registered route tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(runParams().ConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		lgr := logger.FromContext(rootCtx)
		registry := routes.New(*lgr)
		cfg.Apply(registry)

		out := cmd.OutOrStdout()
		for _, section := range registry.Sections() {
			printRoute(out, section, 0)
		}
		return nil
	},
}

func printRoute(out io.Writer, r *routes.Route, depth int) {
	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s%s  (%s)", indent, r.DisplayName, r.Path)
	if r.Icon != "" {
		line = fmt.Sprintf("%s%s %s  (%s)", indent, r.Icon, r.DisplayName, r.Path)
	}
	fmt.Fprintln(out, line)
	for _, child := range r.Children() {
		printRoute(out, child, depth+1)
	}
}
