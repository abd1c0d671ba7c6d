package xrandr

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/monlayout/pkg/errors"
	"github.com/matzehuels/monlayout/pkg/layout"
	"github.com/matzehuels/monlayout/pkg/observability"
)

// DefaultSettle is the pause between consecutive argument groups. Outputs
// that were just switched off need a moment before they accept a new mode.
const DefaultSettle = 2 * time.Second

// GroupResult is the outcome of one argument group.
type GroupResult struct {
	Index  int
	Args   layout.ArgumentGroup
	Result *Result // nil when the process could not be started
	Err    error   // spawn failure or *ExitError
}

// Failed reports whether the group did not complete successfully.
func (g GroupResult) Failed() bool {
	return g.Err != nil
}

// Report collects the results of one Apply call.
type Report struct {
	RunID    string
	Groups   []GroupResult
	Duration time.Duration
}

// Failed returns the number of groups that failed.
func (r *Report) Failed() int {
	n := 0
	for _, g := range r.Groups {
		if g.Failed() {
			n++
		}
	}
	return n
}

// Err returns an EXECUTION_FAILED error when any group failed, nil otherwise.
// The first failure is kept as the cause.
func (r *Report) Err() error {
	failed := r.Failed()
	if failed == 0 {
		return nil
	}
	var first error
	for _, g := range r.Groups {
		if g.Failed() {
			first = g.Err
			break
		}
	}
	return errors.Wrap(errors.ErrCodeExecution, first,
		"%d of %d xrandr invocations failed", failed, len(r.Groups))
}

// Applier executes argument groups strictly in order.
type Applier struct {
	Runner Runner
	Settle time.Duration // pause between groups; zero disables it
	Logger *log.Logger

	// wait is replaced in tests.
	wait func(ctx context.Context, d time.Duration) error
}

// NewApplier returns an Applier using the default settle delay.
func NewApplier(runner Runner, logger *log.Logger) *Applier {
	return &Applier{Runner: runner, Settle: DefaultSettle, Logger: logger}
}

// Apply runs every group, pausing Settle between consecutive groups. A failed
// group is recorded and the next group still runs; nothing is retried.
//
// The returned error is non-nil only when ctx is cancelled, in which case the
// report holds the groups that ran before cancellation. Use Report.Err to
// check for failed groups.
func (a *Applier) Apply(ctx context.Context, groups []layout.ArgumentGroup) (*Report, error) {
	runID := uuid.NewString()
	logger := a.logger().With("run", runID[:8])
	hooks := observability.Apply()

	report := &Report{RunID: runID}
	start := time.Now()
	hooks.OnApplyStart(ctx, runID, len(groups))
	defer func() {
		report.Duration = time.Since(start)
		hooks.OnApplyComplete(ctx, runID, report.Failed(), report.Duration)
	}()

	for i, g := range groups {
		if i > 0 && a.Settle > 0 {
			logger.Debug("waiting for outputs to settle", "delay", a.Settle)
			if err := a.sleep(ctx, a.Settle); err != nil {
				return report, err
			}
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		logger.Debug("running xrandr", "group", i+1, "of", len(groups), "args", g.String())
		gr := a.run(ctx, i, g)
		report.Groups = append(report.Groups, gr)

		exitCode := -1
		var dur time.Duration
		if gr.Result != nil {
			exitCode, dur = gr.Result.ExitCode, gr.Result.Duration
		}
		hooks.OnGroupComplete(ctx, runID, i, exitCode, dur, gr.Err)

		if err := ctx.Err(); err != nil {
			return report, err
		}
		if gr.Failed() {
			logger.Error("xrandr failed", "group", i+1, "err", gr.Err)
			continue
		}
		logger.Debug("xrandr done", "group", i+1, "duration", dur)
	}
	return report, nil
}

func (a *Applier) run(ctx context.Context, index int, g layout.ArgumentGroup) GroupResult {
	gr := GroupResult{Index: index, Args: g}
	res, err := a.Runner.Run(ctx, g)
	gr.Result = res
	switch {
	case err != nil:
		gr.Err = err
	case res.ExitCode != 0:
		gr.Err = &ExitError{Code: res.ExitCode, Stderr: string(res.Stderr)}
	}
	return gr
}

func (a *Applier) sleep(ctx context.Context, d time.Duration) error {
	if a.wait != nil {
		return a.wait(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (a *Applier) logger() *log.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return log.Default()
}
