package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/titlelens/pkg/config"
	"github.com/Sumatoshi-tech/titlelens/pkg/observability"
	"github.com/Sumatoshi-tech/titlelens/pkg/render"
	"github.com/Sumatoshi-tech/titlelens/pkg/render/plotpage"
	"github.com/Sumatoshi-tech/titlelens/pkg/render/terminal"
)

// ReportCommand holds the flags of the report command.
type ReportCommand struct {
	global  *GlobalOptions
	typ     string
	format  string
	output  string
	theme   string
	title   string
	width   int
	noColor bool
}

func newReportCommand(global *GlobalOptions) *cobra.Command {
	rc := &ReportCommand{global: global}

	cobraCmd := &cobra.Command{
		Use:   "report [source]",
		Short: "Render the catalog charts once",
		Long: `Load a Netflix titles CSV from a file, an http(s) URL or stdin (-) and
render the year, genre, country and duration charts for one content type.

Formats:
  plot  self-contained HTML page with interactive charts (default)
  text  terminal tables with ratio bars
  json  the chart data as JSON
  yaml  the chart data as YAML`,
		Example: `  titlelens report netflix_titles.csv -o report.html
  titlelens report netflix_titles.csv --format text --type "TV Show"
  curl -s https://example.com/netflix_titles.csv | titlelens report - --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: rc.run,
	}

	cobraCmd.Flags().StringVarP(&rc.typ, "type", "t", "", "content type filter: All, Movie or \"TV Show\" (default from config)")
	cobraCmd.Flags().StringVarP(&rc.format, "format", "f", "", "output format: "+strings.Join(render.Formats(), ", ")+" (default from config)")
	cobraCmd.Flags().StringVarP(&rc.output, "output", "o", "", "write to file instead of stdout")
	cobraCmd.Flags().StringVar(&rc.theme, "theme", "", "plot theme: dark or light (default from config)")
	cobraCmd.Flags().StringVar(&rc.title, "title", "", "report title (default from config)")
	cobraCmd.Flags().IntVar(&rc.width, "width", 0, "text output width (default from $COLUMNS)")
	cobraCmd.Flags().BoolVar(&rc.noColor, "no-color", false, "disable colored text output")

	return cobraCmd
}

func (rc *ReportCommand) run(cmd *cobra.Command, args []string) error {
	sess, err := startSession(rc.global, launchOptions{
		mode:      observability.ModeCLI,
		logWriter: cmd.ErrOrStderr(),
	}, rc.applyFlags)
	if err != nil {
		return err
	}
	defer sess.close()

	ctx, span := sess.providers.Tracer.Start(cmd.Context(), "titlelens.report")
	defer span.End()

	dash, err := sess.dashboardFor(ctx, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	renderer, err := render.For(sess.cfg.Render.Format,
		render.WithTitle(sess.cfg.Render.Title),
		render.WithTheme(plotpage.ParseTheme(sess.cfg.Render.Theme)),
		render.WithTerminal(rc.terminalConfig()),
	)
	if err != nil {
		return err
	}

	out, closeOut, err := rc.openOutput(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	err = renderer.Render(out, dash.Current(ctx))
	if err != nil {
		_ = closeOut()

		return fmt.Errorf("render %s report: %w", sess.cfg.Render.Format, err)
	}

	err = closeOut()
	if err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	if rc.output != "" {
		sess.logger.InfoContext(ctx, "report written",
			"path", rc.output,
			"format", sess.cfg.Render.Format,
			"records", dash.Len())
	}

	return nil
}

// applyFlags layers explicitly set flags over the loaded configuration.
func (rc *ReportCommand) applyFlags(cfg *config.Config) {
	overrideType(rc.typ)(cfg)

	if rc.format != "" {
		cfg.Render.Format = strings.ToLower(rc.format)
	}

	if rc.theme != "" {
		cfg.Render.Theme = strings.ToLower(rc.theme)
	}

	if rc.title != "" {
		cfg.Render.Title = rc.title
	}
}

func (rc *ReportCommand) terminalConfig() terminal.Config {
	termCfg := terminal.NewConfig()

	if rc.width > 0 {
		termCfg.Width = rc.width
	}

	termCfg.NoColor = termCfg.NoColor || rc.noColor || rc.output != "" || color.NoColor

	return termCfg
}

func (rc *ReportCommand) openOutput(stdout io.Writer) (io.Writer, func() error, error) {
	if rc.output == "" {
		return stdout, func() error { return nil }, nil
	}

	file, err := os.Create(rc.output)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}

	return file, file.Close, nil
}
