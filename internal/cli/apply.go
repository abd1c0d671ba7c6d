package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/monlayout/pkg/config"
	"github.com/matzehuels/monlayout/pkg/layout"
	"github.com/matzehuels/monlayout/pkg/xrandr"
)

// runLayout is the root command: parse, probe, match, build and apply.
func (c *CLI) runLayout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.settings(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		c.printAttached(ctx, cfg)
		fmt.Fprintln(c.out, shortHelp)
		return nil
	}

	directives, parseErrs := layout.ParseAll(args)
	for _, err := range parseErrs {
		logger.Warn("ignoring directive", "err", err)
	}

	records, err := c.probe(ctx, cfg)
	if err != nil {
		return err
	}

	setup, err := layout.Match(directives, records)
	for _, w := range setup.Warnings {
		logger.Warn("ignoring directive", "err", w)
	}
	if err != nil {
		return err
	}

	groups := layout.Build(setup.Items)
	fmt.Fprintln(c.out, placementTable(layout.Place(setup.Items)))

	if c.opts.dryRun {
		return c.dryRun(ctx, groups)
	}

	if cfg.Confirm {
		for _, g := range groups {
			printCommand(c.out, g)
		}
		ok, err := c.confirm(ctx, "Apply this layout?")
		if err != nil {
			return err
		}
		if !ok {
			printInfo(c.out, "Layout not applied")
			return nil
		}
	}

	return c.apply(ctx, cfg, groups)
}

// dryRun feeds the groups through a DryRunner and prints what would run.
func (c *CLI) dryRun(ctx context.Context, groups []layout.ArgumentGroup) error {
	runner := &xrandr.DryRunner{}
	applier := &xrandr.Applier{Runner: runner, Logger: loggerFromContext(ctx)}
	if _, err := applier.Apply(ctx, groups); err != nil {
		return err
	}
	for _, call := range runner.Calls() {
		printCommand(c.out, call)
	}
	printInfo(c.out, "Dry run, nothing applied")
	return nil
}

// apply runs the groups with xrandr and reports failed groups.
func (c *CLI) apply(ctx context.Context, cfg config.Config, groups []layout.ArgumentGroup) error {
	logger := loggerFromContext(ctx)

	applier := xrandr.NewApplier(c.newRunner(cfg), logger)
	applier.Settle = cfg.SettleDelay.Duration

	report, err := applier.Apply(ctx, groups)
	if err != nil {
		return err
	}

	for _, g := range report.Groups {
		if !g.Failed() {
			continue
		}
		printError(c.errOut, "xrandr %s", g.Args)
		printDetail(c.errOut, "%v", g.Err)
	}
	if err := report.Err(); err != nil {
		return err
	}

	printSuccess(c.out, "Layout applied (%s)", pluralize(len(groups), "xrandr call"))
	return nil
}

// printAttached lists the monitors when no directive was given. Probe
// failures are only logged.
func (c *CLI) printAttached(ctx context.Context, cfg config.Config) {
	records, err := c.probe(ctx, cfg)
	if err != nil {
		loggerFromContext(ctx).Debug("could not list monitors", "err", err)
		return
	}
	if len(records) == 0 {
		return
	}
	fmt.Fprintln(c.out, StyleTitle.Render("Attached monitors:"))
	for _, r := range records {
		fmt.Fprintln(c.out, " "+r.String())
	}
	fmt.Fprintln(c.out)
}
