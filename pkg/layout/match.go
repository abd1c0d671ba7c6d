package layout

import (
	"fmt"
	"strings"

	"github.com/matzehuels/monlayout/pkg/errors"
	"github.com/matzehuels/monlayout/pkg/monitor"
)

// SetupItem pairs a monitor with the directive that configures it.
// A nil Directive means no instruction was given and the output is turned off.
type SetupItem struct {
	Monitor   monitor.Record
	Directive *Directive
}

// Enabled reports whether the item leaves its monitor powered on.
func (s SetupItem) Enabled() bool {
	return s.Directive != nil && s.Directive.On()
}

// Setup is the result of matching directives against the monitor registry.
type Setup struct {
	// Items lists the configured monitors in directive order followed by the
	// unconfigured ones in registry order.
	Items []SetupItem

	// Warnings holds one *MonitorNotFoundError per dropped directive.
	Warnings []error
}

// MonitorNotFoundError reports a directive whose monitor index is not (or no
// longer) available in the registry.
type MonitorNotFoundError struct {
	Index     int
	Duplicate bool // the monitor was already claimed by an earlier directive
}

func (e *MonitorNotFoundError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("monitor with index %d not found: already configured by an earlier directive", e.Index)
	}
	return fmt.Sprintf("monitor with index %d not found", e.Index)
}

// Match pairs each directive with the monitor of the same index, in directive
// order. Directives without a monitor are dropped with a warning; monitors
// without a directive are appended, in registry order, to be turned off.
//
// Match fails with a coded *errors.Error when more than one directive is
// primary (MULTIPLE_PRIMARY), when no directive matched a monitor
// (NO_VALID_ARGUMENTS) or when the result would turn every monitor off
// (REFUSE_BLACKOUT). The Setup, warnings included, is returned alongside any
// error.
func Match(directives []Directive, monitors []monitor.Record) (*Setup, error) {
	available := make(map[int]monitor.Record, len(monitors))
	for _, m := range monitors {
		available[m.Index] = m
	}
	claimed := make(map[int]bool, len(directives))

	setup := &Setup{}
	for i := range directives {
		d := directives[i]
		m, ok := available[d.Monitor]
		if !ok {
			setup.Warnings = append(setup.Warnings, &MonitorNotFoundError{Index: d.Monitor, Duplicate: claimed[d.Monitor]})
			continue
		}
		delete(available, d.Monitor)
		claimed[d.Monitor] = true
		setup.Items = append(setup.Items, SetupItem{Monitor: m, Directive: &d})
	}
	matched := len(setup.Items)

	for _, m := range monitors {
		if _, ok := available[m.Index]; ok {
			setup.Items = append(setup.Items, SetupItem{Monitor: m})
		}
	}

	if err := checkPrimary(directives); err != nil {
		return setup, err
	}
	if matched == 0 {
		return setup, errors.New(errors.ErrCodeNoValidArguments, "no valid arguments provided for current monitor setup")
	}
	if !anyEnabled(setup.Items) {
		return setup, errors.New(errors.ErrCodeRefuseBlackout, "refusing to turn all monitors off")
	}
	return setup, nil
}

func checkPrimary(directives []Directive) error {
	var primaries []string
	for _, d := range directives {
		if d.Primary {
			primaries = append(primaries, fmt.Sprint(d.Monitor))
		}
	}
	if len(primaries) > 1 {
		return errors.New(errors.ErrCodeMultiplePrimary,
			"more than one primary monitor requested (%s)", strings.Join(primaries, ", "))
	}
	return nil
}

func anyEnabled(items []SetupItem) bool {
	for _, it := range items {
		if it.Enabled() {
			return true
		}
	}
	return false
}
