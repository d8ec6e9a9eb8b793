package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/titlelens/pkg/config"
	"github.com/Sumatoshi-tech/titlelens/pkg/observability"
	"github.com/Sumatoshi-tech/titlelens/pkg/render"
	"github.com/Sumatoshi-tech/titlelens/pkg/render/plotpage"
	"github.com/Sumatoshi-tech/titlelens/pkg/server"
)

// ServeCommand holds the flags of the serve command.
type ServeCommand struct {
	global  *GlobalOptions
	host    string
	port    int
	typ     string
	metrics bool
}

func newServeCommand(global *GlobalOptions) *cobra.Command {
	sc := &ServeCommand{global: global}

	cobraCmd := &cobra.Command{
		Use:   "serve [source]",
		Short: "Serve the interactive dashboard over HTTP",
		Long: `Load the dataset once and serve the dashboard page, the chart JSON API
and the shared content type filter until interrupted.

Endpoints:
  GET /                    dashboard page (?format=plot|text|json|yaml, ?type=)
  GET /api/charts          every chart for the current filter
  GET /api/charts/{chart}  one of years, genres, countries, durations
  GET|PUT /api/filter      read or change the filter
  GET /api/records/count   record totals per content type
  GET /healthz, /readyz    probes
  GET /metrics             Prometheus metrics (with --metrics)`,
		Example: `  titlelens serve netflix_titles.csv --port 8050
  titlelens serve https://example.com/netflix_titles.csv --metrics`,
		Args: cobra.MaximumNArgs(1),
		RunE: sc.run,
	}

	cobraCmd.Flags().StringVar(&sc.host, "host", "", "listen host (default from config)")
	cobraCmd.Flags().IntVarP(&sc.port, "port", "p", 0, "listen port (default from config)")
	cobraCmd.Flags().StringVarP(&sc.typ, "type", "t", "", "initial content type filter (default from config)")
	cobraCmd.Flags().BoolVar(&sc.metrics, "metrics", false, "expose Prometheus metrics at /metrics")

	return cobraCmd
}

func (sc *ServeCommand) run(cmd *cobra.Command, args []string) error {
	sess, err := startSession(sc.global, launchOptions{
		mode:      observability.ModeServe,
		logWriter: cmd.ErrOrStderr(),
	}, sc.applyFlags)
	if err != nil {
		return err
	}
	defer sess.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dash, err := sess.dashboardFor(ctx, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	red, err := observability.NewREDMetrics(sess.providers.Meter)
	if err != nil {
		return fmt.Errorf("register RED metrics: %w", err)
	}

	srv := server.New(dash,
		server.WithLogger(sess.logger),
		server.WithTracer(sess.providers.Tracer),
		server.WithREDMetrics(red),
		server.WithMetricsHandler(sess.providers.MetricsHandler),
		server.WithCORS(sess.cfg.Server.CORSOrigins),
		server.WithRenderOptions(
			render.WithTitle(sess.cfg.Render.Title),
			render.WithTheme(plotpage.ParseTheme(sess.cfg.Render.Theme)),
		),
	)

	err = srv.Run(ctx, sess.cfg.Server)
	if err != nil {
		return err
	}

	sess.logger.InfoContext(context.WithoutCancel(ctx), "dashboard server stopped")

	return nil
}

func (sc *ServeCommand) applyFlags(cfg *config.Config) {
	if sc.host != "" {
		cfg.Server.Host = sc.host
	}

	if sc.port != 0 {
		cfg.Server.Port = sc.port
	}

	overrideType(sc.typ)(cfg)

	if sc.metrics {
		cfg.Server.Metrics = true
	}
}
