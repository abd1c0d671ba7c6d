package xrandr

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/monlayout/pkg/errors"
	"github.com/matzehuels/monlayout/pkg/monitor"
	"github.com/matzehuels/monlayout/pkg/observability"
)

// Prober discovers monitors by running "xrandr --props".
type Prober struct {
	Runner Runner
	Namer  monitor.Namer // nil leaves every monitor named "unknown"
	Logger *log.Logger
}

// Probe implements monitor.Prober.
func (p *Prober) Probe(ctx context.Context) (records []monitor.Record, err error) {
	start := time.Now()
	observability.Probe().OnProbeStart(ctx, errors.ProbeXrandr)
	defer func() {
		observability.Probe().OnProbeComplete(ctx, errors.ProbeXrandr, len(records), time.Since(start), err)
	}()

	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}

	res, err := p.Runner.Run(ctx, []string{"--props"})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeProbe, err, "query monitors")
	}
	if !res.Success() {
		return nil, errors.Wrap(errors.ErrCodeProbe,
			&ExitError{Code: res.ExitCode, Stderr: string(res.Stderr)}, "query monitors")
	}

	outputs, err := monitor.ParseProps(bytes.NewReader(res.Stdout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeProbe, err, "parse xrandr output")
	}
	if n := countConnected(res.Stdout); n > len(outputs) {
		logger.Debug("skipped connected outputs without modes", "count", n-len(outputs))
	}

	records, warnings := monitor.Assemble(ctx, outputs, p.Namer)
	for _, w := range warnings {
		logger.Debug("monitor name lookup failed", "err", w)
	}
	logger.Debug("probed monitors", "count", len(records), "duration", time.Since(start))
	return records, nil
}

func countConnected(out []byte) int {
	n := 0
	for _, line := range strings.Split(string(out), "\n") {
		if line != "" && line[0] != ' ' && line[0] != '\t' && strings.Contains(line, " connected") {
			n++
		}
	}
	return n
}

var _ monitor.Prober = (*Prober)(nil)
