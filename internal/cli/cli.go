package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/monlayout/pkg/cache"
	"github.com/matzehuels/monlayout/pkg/config"
	"github.com/matzehuels/monlayout/pkg/errors"
	"github.com/matzehuels/monlayout/pkg/monitor"
	"github.com/matzehuels/monlayout/pkg/xrandr"
)

// =============================================================================
// Constants
// =============================================================================

// nameNamespace versions the cached monitor names. Bump it when naming changes.
const nameNamespace = "v1"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	opts options

	// Replaced in tests.
	newProber func(cfg config.Config, namer monitor.Namer, logger *log.Logger) monitor.Prober
	newRunner func(cfg config.Config) xrandr.Runner
	confirm   func(ctx context.Context, prompt string) (bool, error)
}

// options holds the values bound to command-line flags.
type options struct {
	configPath string
	verbose    bool
	dryRun     bool
	confirm    bool
	settle     time.Duration
	xrandr     string
	probe      string
	noCache    bool
}

// New creates a CLI writing results to stdout and logs and prompts to stderr.
func New(stdout, stderr io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger:    newLogger(stderr, level),
		in:        os.Stdin,
		out:       stdout,
		errOut:    stderr,
		newProber: defaultProber,
		newRunner: defaultRunner,
	}
	c.confirm = c.runConfirm
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Settings
// =============================================================================

// settings loads the config file and applies flag overrides on top of it.
func (c *CLI) settings(cmd *cobra.Command) (config.Config, error) {
	path := c.opts.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			c.Logger.Debug("no config directory, using defaults", "err", err)
			return c.applyFlags(cmd, config.Default())
		}
		path = p
	} else if _, err := os.Stat(path); err != nil {
		return config.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("loaded config", "path", path)
	return c.applyFlags(cmd, cfg)
}

func (c *CLI) applyFlags(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("xrandr") {
		cfg.Xrandr = c.opts.xrandr
	}
	if flags.Changed("probe") {
		cfg.Probe = c.opts.probe
	}
	if flags.Changed("no-cache") {
		cfg.Cache = !c.opts.noCache
	}
	if flags.Changed("settle") {
		cfg.SettleDelay.Duration = c.opts.settle
	}
	if flags.Changed("confirm") {
		cfg.Confirm = c.opts.confirm
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid flags")
	}
	return cfg, nil
}

// =============================================================================
// Factories
// =============================================================================

func defaultProber(cfg config.Config, namer monitor.Namer, logger *log.Logger) monitor.Prober {
	if cfg.Probe == errors.ProbeRandR {
		return &monitor.RandRProber{Namer: namer, Logger: logger}
	}
	return &xrandr.Prober{
		Runner: &xrandr.ExecRunner{Binary: cfg.Xrandr},
		Namer:  namer,
		Logger: logger,
	}
}

func defaultRunner(cfg config.Config) xrandr.Runner {
	return &xrandr.ExecRunner{Binary: cfg.Xrandr}
}

// newNameCache opens the monitor name cache, degrading to a NullCache when
// caching is disabled or the cache directory is unusable.
func (c *CLI) newNameCache(cfg config.Config) cache.Cache {
	if !cfg.Cache {
		return cache.NewNullCache()
	}
	dir, err := config.CacheDir()
	if err != nil {
		c.Logger.Debug("name cache disabled", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("name cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// namer names monitors with edid-decode, falling back to the built-in EDID
// descriptor decoder, and memoises the result.
func namer(cfg config.Config, names cache.Cache) monitor.Namer {
	return monitor.CachedNamer{
		Inner: monitor.FallbackNamer{
			monitor.EDIDDecodeNamer{Binary: cfg.EDIDDecode},
			monitor.DescriptorNamer,
		},
		Cache:     names,
		Namespace: nameNamespace,
	}
}

// probe discovers the attached monitors, showing a spinner on terminals.
func (c *CLI) probe(ctx context.Context, cfg config.Config) ([]monitor.Record, error) {
	logger := loggerFromContext(ctx)
	names := c.newNameCache(cfg)
	defer names.Close()

	var spin *Spinner
	if isTerminal(c.errOut) && !c.opts.verbose {
		spin = newSpinner(ctx, c.errOut, "Probing monitors...")
		spin.Start()
	}

	prog := newProgress(logger)
	records, err := c.newProber(cfg, namer(cfg, names), logger).Probe(ctx)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return nil, err
	}
	prog.done("Probed " + pluralize(len(records), "monitor"))
	return records, nil
}

// =============================================================================
// Helpers
// =============================================================================

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
