package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/monlayout/pkg/buildinfo"
	"github.com/matzehuels/monlayout/pkg/observability"
	"github.com/matzehuels/monlayout/pkg/xrandr"
)

// RootCommand creates the root cobra command with all subcommands registered.
// Positional arguments of the root command are layout directives.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "monlayout [directive...]",
		Short:             "Arrange multiple monitors with xrandr",
		Long:              longHelp,
		Version:           buildinfo.Version,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE:              c.runLayout,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.opts.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&c.opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/monlayout/config.toml)")
	pf.StringVar(&c.opts.xrandr, "xrandr", "xrandr", "xrandr executable")
	pf.StringVar(&c.opts.probe, "probe", "xrandr", "monitor discovery backend: xrandr or randr")
	pf.BoolVar(&c.opts.noCache, "no-cache", false, "do not cache monitor names")

	f := root.Flags()
	f.BoolVarP(&c.opts.dryRun, "dry-run", "n", false, "print the xrandr commands without running them")
	f.BoolVar(&c.opts.confirm, "confirm", false, "ask before applying the layout")
	f.DurationVar(&c.opts.settle, "settle", xrandr.DefaultSettle, "pause between consecutive xrandr commands")

	root.AddCommand(c.monitorsCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies the log level and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	level := LogInfo
	if c.opts.verbose {
		level = LogDebug
		hooks := &logHooks{logger: c.Logger}
		observability.SetProbeHooks(hooks)
		observability.SetApplyHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
	c.SetLogLevel(level)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}
