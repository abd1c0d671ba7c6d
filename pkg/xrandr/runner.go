package xrandr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"sync"
	"time"
)

// DefaultBinary is the xrandr executable looked up on $PATH.
const DefaultBinary = "xrandr"

// Result holds the outcome of one xrandr invocation.
type Result struct {
	Args     []string
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Success reports whether xrandr exited with status zero.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}

// Runner invokes xrandr with the given arguments.
//
// A non-zero exit status is not an error: it is reported through
// Result.ExitCode. Run returns an error only when the process could not be
// started or the context was cancelled.
type Runner interface {
	Run(ctx context.Context, args []string) (*Result, error)
}

// ExecRunner runs xrandr as a child process.
type ExecRunner struct {
	Binary string // defaults to DefaultBinary
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, args []string) (*Result, error) {
	bin := r.Binary
	if bin == "" {
		bin = DefaultBinary
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := &Result{
		Args:     slices.Clone(args),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("%s cancelled: %w", bin, ctxErr)
	}
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return nil, fmt.Errorf("failed to execute %s: %w", bin, err)
		}
		res.ExitCode = exitErr.ExitCode()
	}
	return res, nil
}

// DryRunner records invocations without spawning anything. Every call
// succeeds with empty output.
type DryRunner struct {
	mu    sync.Mutex
	calls [][]string
}

// Run implements Runner.
func (r *DryRunner) Run(ctx context.Context, args []string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, slices.Clone(args))
	return &Result{Args: slices.Clone(args)}, nil
}

// Calls returns the recorded argument lists in invocation order.
func (r *DryRunner) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// ExitError describes an xrandr invocation that exited non-zero.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("xrandr exited with status %d", e.Code)
	}
	return fmt.Sprintf("xrandr exited with status %d: %s", e.Code, msg)
}

var (
	_ Runner = (*ExecRunner)(nil)
	_ Runner = (*DryRunner)(nil)
)
