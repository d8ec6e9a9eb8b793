package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/titlelens/pkg/catalog"
	"github.com/Sumatoshi-tech/titlelens/pkg/mcp"
	"github.com/Sumatoshi-tech/titlelens/pkg/observability"
)

func newMCPCommand(global *GlobalOptions) *cobra.Command {
	var typ string

	cobraCmd := &cobra.Command{
		Use:   "mcp [source]",
		Short: "Start the MCP server on stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the
catalog charts as tools: titlelens_charts, titlelens_chart and
titlelens_filter. Logs go to stderr as JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(cmd, args, global, typ)
		},
	}

	cobraCmd.Flags().StringVarP(&typ, "type", "t", "", "initial content type filter (default from config)")

	return cobraCmd
}

func runMCP(cmd *cobra.Command, args []string, global *GlobalOptions, typ string) error {
	mcpGlobal := *global
	mcpGlobal.LogJSON = true

	sess, err := startSession(&mcpGlobal, launchOptions{
		mode:      observability.ModeMCP,
		logWriter: cmd.ErrOrStderr(),
	}, overrideType(typ))
	if err != nil {
		return err
	}
	defer sess.close()

	// Stdin carries the protocol, so the dataset cannot come from it.
	if sess.source(args) == catalog.StdinSource {
		return ErrStdinSource
	}

	dash, err := sess.dashboardFor(cmd.Context(), args, nil)
	if err != nil {
		return err
	}

	red, err := observability.NewREDMetrics(sess.providers.Meter)
	if err != nil {
		return fmt.Errorf("register RED metrics: %w", err)
	}

	srv := mcp.NewServer(mcp.ServerDeps{
		Dashboard: dash,
		Logger:    sess.logger,
		Metrics:   red,
		Tracer:    sess.providers.Tracer,
	})

	return srv.Run(cmd.Context())
}
