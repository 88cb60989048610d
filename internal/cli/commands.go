// Package cli is the exview command tree: the TUI at the root and one-shot
// commands that print the same data as tables.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/five82/exview/internal/app"
	"github.com/five82/exview/internal/clock"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootOptions are the persistent flags every command shares.
type rootOptions struct {
	ConfigPath string
	PrefsPath  string
	APIBase    string
	LogFile    string
	Debug      bool
}

func (o *rootOptions) appOptions(info BuildInfo) app.Options {
	return app.Options{
		ConfigPath: o.ConfigPath,
		PrefsPath:  o.PrefsPath,
		APIBase:    o.APIBase,
		LogFile:    o.LogFile,
		Debug:      o.Debug,
		Version:    info.Version,
	}
}

// New returns the exview root command.
func New(info BuildInfo) *cobra.Command {
	return newRoot(info, clock.System{})
}

func newRoot(info BuildInfo, clk clock.Clock) *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "exview",
		Short: "Browse exceptions extracted from server logs.",
		Long: `exview talks to the log extraction service. Without a subcommand it
opens the terminal UI: pick an instance, extract today's log, browse the
extracted dates and read each exception with its context and stack trace.`,
		Example: `
exview
exview --api http://logs.internal:4000
exview exceptions srv-1 20240115
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), ro.appOptions(info))
		},
	}

	addRootArgs(cmd, ro)
	addCommands(cmd, ro, info, clk)
	return cmd
}

func addRootArgs(cmd *cobra.Command, o *rootOptions) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.ConfigPath, "config", "",
		"Config file path (default ~/.config/exview/config.toml).")
	flags.StringVar(&o.PrefsPath, "prefs", "",
		"Preferences file path (default ~/.config/exview/prefs.toml).")
	flags.StringVar(&o.APIBase, "api", "",
		"Log service base URL; overrides EXVIEW_API_BASE and the config file.")
	flags.StringVar(&o.LogFile, "log-file", "",
		"Write logs to this file; overrides log_file from the config file.")
	flags.BoolVar(&o.Debug, "debug", false,
		"Log at debug level and fail fast on invalid selections.")
}

// addCommands registers every subcommand under topLevel.
func addCommands(topLevel *cobra.Command, ro *rootOptions, info BuildInfo, clk clock.Clock) {
	addInstances(topLevel, ro, info)
	addDates(topLevel, ro, info, clk)
	addExceptions(topLevel, ro, info)
	addExtract(topLevel, ro, info, clk)
	addVersion(topLevel, info)
}
