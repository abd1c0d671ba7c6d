package xrandr

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestExecRunner(t *testing.T) {
	r := &ExecRunner{Binary: requireShell(t)}

	res, err := r.Run(context.Background(), []string{"-c", "echo out; echo err >&2; exit 3"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if got := strings.TrimSpace(string(res.Stdout)); got != "out" {
		t.Errorf("Stdout = %q", got)
	}
	if got := strings.TrimSpace(string(res.Stderr)); got != "err" {
		t.Errorf("Stderr = %q", got)
	}
	if res.Success() {
		t.Error("Success() = true for exit status 3")
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := &ExecRunner{Binary: "monlayout-test-no-such-binary"}
	if _, err := r.Run(context.Background(), nil); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestExecRunnerCancelled(t *testing.T) {
	r := &ExecRunner{Binary: requireShell(t)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Run(ctx, []string{"-c", "sleep 5"}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDryRunner(t *testing.T) {
	r := &DryRunner{}
	args := []string{"--output", "eDP", "--off"}

	res, err := r.Run(context.Background(), args)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !res.Success() {
		t.Error("DryRunner result should succeed")
	}

	args[0] = "mutated"
	calls := r.Calls()
	if len(calls) != 1 || calls[0][0] != "--output" {
		t.Errorf("Calls() = %v, want a copy of the original args", calls)
	}
}

func TestExitError(t *testing.T) {
	tests := []struct {
		err  *ExitError
		want string
	}{
		{&ExitError{Code: 1}, "xrandr exited with status 1"},
		{&ExitError{Code: 1, Stderr: "  warning: output DP-9 not found; ignoring\n"},
			"xrandr exited with status 1: warning: output DP-9 not found; ignoring"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
