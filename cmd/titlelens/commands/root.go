// Package commands implements CLI command handlers for titlelens.
package commands

import (
	"github.com/spf13/cobra"
)

// GlobalOptions holds the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	LogLevel   string
	LogJSON    bool
	Verbose    bool
	Quiet      bool
}

// NewRootCommand builds the titlelens command tree.
func NewRootCommand() *cobra.Command {
	opts := &GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "titlelens",
		Short: "Titlelens - Netflix catalog explorer",
		Long: `Titlelens loads a Netflix titles CSV and charts it by release year,
genre, country and duration, filtered by content type.

Commands:
  report    Render the charts once (plot, text, json or yaml)
  serve     Serve the interactive dashboard over HTTP
  mcp       Expose the charts as MCP tools on stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default: titlelens.yaml in ., ./config or /etc/titlelens)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	flags.BoolVar(&opts.LogJSON, "log-json", false, "emit JSON logs")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logging)")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress output except errors")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(
		newReportCommand(opts),
		newServeCommand(opts),
		newMCPCommand(opts),
		newVersionCommand(),
	)

	return rootCmd
}
