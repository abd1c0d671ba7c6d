package xrandr

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	mlerrors "github.com/matzehuels/monlayout/pkg/errors"
	"github.com/matzehuels/monlayout/pkg/layout"
	"github.com/matzehuels/monlayout/pkg/observability"
)

// scriptedRunner replays canned results and records every call.
type scriptedRunner struct {
	results []*Result
	errs    []error
	calls   [][]string
	events  *[]string
}

func (r *scriptedRunner) Run(ctx context.Context, args []string) (*Result, error) {
	i := len(r.calls)
	r.calls = append(r.calls, args)
	if r.events != nil {
		*r.events = append(*r.events, "run:"+strings.Join(args, " "))
	}
	var err error
	if i < len(r.errs) {
		err = r.errs[i]
	}
	if i < len(r.results) && r.results[i] != nil {
		return r.results[i], err
	}
	if err != nil {
		return nil, err
	}
	return &Result{Args: args}, nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func testApplier(runner Runner, settle time.Duration, events *[]string) *Applier {
	a := &Applier{Runner: runner, Settle: settle, Logger: quietLogger()}
	a.wait = func(ctx context.Context, d time.Duration) error {
		*events = append(*events, "wait:"+d.String())
		return ctx.Err()
	}
	return a
}

var testGroups = []layout.ArgumentGroup{
	{"--output", "DisplayPort-1", "--off"},
	{"--output", "DisplayPort-2", "--off"},
	{"--output", "DisplayPort-1", "--rotation", "normal", "--pos", "0x0", "--mode", "1920x1080", "--auto"},
}

func TestApplySequentialWithSettle(t *testing.T) {
	var events []string
	runner := &scriptedRunner{events: &events}
	a := testApplier(runner, 2*time.Second, &events)

	report, err := a.Apply(context.Background(), testGroups)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	want := []string{
		"run:--output DisplayPort-1 --off",
		"wait:2s",
		"run:--output DisplayPort-2 --off",
		"wait:2s",
		"run:--output DisplayPort-1 --rotation normal --pos 0x0 --mode 1920x1080 --auto",
	}
	if strings.Join(events, "\n") != strings.Join(want, "\n") {
		t.Errorf("events =\n%s\nwant\n%s", strings.Join(events, "\n"), strings.Join(want, "\n"))
	}
	if len(report.Groups) != 3 || report.Failed() != 0 {
		t.Errorf("report = %+v", report)
	}
	if report.Err() != nil {
		t.Errorf("Report.Err() = %v", report.Err())
	}
	if report.RunID == "" {
		t.Error("RunID should be set")
	}
}

func TestApplySingleGroupDoesNotWait(t *testing.T) {
	var events []string
	a := testApplier(&scriptedRunner{events: &events}, time.Second, &events)

	if _, err := a.Apply(context.Background(), testGroups[2:]); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	for _, e := range events {
		if strings.HasPrefix(e, "wait:") {
			t.Errorf("unexpected settle wait: %v", events)
		}
	}
}

func TestApplyZeroSettle(t *testing.T) {
	var events []string
	a := testApplier(&scriptedRunner{events: &events}, 0, &events)

	if _, err := a.Apply(context.Background(), testGroups); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(events) != 3 {
		t.Errorf("events = %v, want three runs and no waits", events)
	}
}

func TestApplyContinuesAfterFailure(t *testing.T) {
	var events []string
	runner := &scriptedRunner{
		events: &events,
		results: []*Result{
			{ExitCode: 1, Stderr: []byte("xrandr: cannot find output\n")},
		},
		errs: []error{nil, errors.New("exec: not started")},
	}
	a := testApplier(runner, time.Millisecond, &events)

	report, err := a.Apply(context.Background(), testGroups)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(runner.calls) != 3 {
		t.Fatalf("runner calls = %d, want 3", len(runner.calls))
	}
	if report.Failed() != 2 {
		t.Errorf("Failed() = %d, want 2", report.Failed())
	}

	var exitErr *ExitError
	if !errors.As(report.Groups[0].Err, &exitErr) || exitErr.Code != 1 {
		t.Errorf("group 0 err = %v, want *ExitError with code 1", report.Groups[0].Err)
	}
	if report.Groups[1].Result != nil {
		t.Error("group 1 should have no result")
	}
	if report.Groups[2].Failed() {
		t.Error("group 2 should succeed")
	}

	err = report.Err()
	if !mlerrors.Is(err, mlerrors.ErrCodeExecution) {
		t.Fatalf("Report.Err() = %v, want EXECUTION_FAILED", err)
	}
	if mlerrors.ExitCode(err) != mlerrors.ExitExecution {
		t.Errorf("ExitCode = %d", mlerrors.ExitCode(err))
	}
	if !strings.Contains(err.Error(), "2 of 3") {
		t.Errorf("Report.Err() = %q", err.Error())
	}
}

func TestApplyCancelledDuringSettle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var events []string
	runner := &scriptedRunner{events: &events}
	a := &Applier{Runner: runner, Settle: time.Second, Logger: quietLogger()}
	a.wait = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	report, err := a.Apply(ctx, testGroups)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Apply() error = %v, want context.Canceled", err)
	}
	if len(runner.calls) != 1 || len(report.Groups) != 1 {
		t.Errorf("ran %d groups after cancellation, want 1", len(runner.calls))
	}
}

func TestApplySleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := &Applier{}
	if err := a.sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleep() = %v, want context.Canceled", err)
	}
}

func TestApplyEmpty(t *testing.T) {
	var events []string
	runner := &scriptedRunner{events: &events}
	report, err := testApplier(runner, time.Second, &events).Apply(context.Background(), nil)
	if err != nil || len(report.Groups) != 0 || len(runner.calls) != 0 {
		t.Errorf("Apply(nil) = %+v, %v", report, err)
	}
}

type recordingApplyHooks struct {
	observability.NoopApplyHooks
	started, groups, failed int
}

func (h *recordingApplyHooks) OnApplyStart(_ context.Context, _ string, groups int) {
	h.started = groups
}

func (h *recordingApplyHooks) OnGroupComplete(context.Context, string, int, int, time.Duration, error) {
	h.groups++
}

func (h *recordingApplyHooks) OnApplyComplete(_ context.Context, _ string, failed int, _ time.Duration) {
	h.failed = failed
}

func TestApplyEmitsHooks(t *testing.T) {
	hooks := &recordingApplyHooks{}
	observability.SetApplyHooks(hooks)
	defer observability.Reset()

	var events []string
	runner := &scriptedRunner{events: &events, results: []*Result{nil, {ExitCode: 2}}}
	if _, err := testApplier(runner, 0, &events).Apply(context.Background(), testGroups); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if hooks.started != 3 || hooks.groups != 3 || hooks.failed != 1 {
		t.Errorf("hooks = %+v", hooks)
	}
}
