package monitor

import (
	"context"
	"fmt"
)

// Record is one connected output as seen by the registry.
type Record struct {
	Index  int    `json:"index" yaml:"index"`
	Link   string `json:"link" yaml:"link"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Name   string `json:"name" yaml:"name"`
}

// String renders the record the way it is listed to the user,
// e.g. "1. DELL U2415 (1920x1200) on DisplayPort-1".
func (r Record) String() string {
	return fmt.Sprintf("%d. %s (%dx%d) on %s", r.Index, r.Name, r.Width, r.Height, r.Link)
}

// Mode returns the preferred resolution in xrandr "WxH" notation.
func (r Record) Mode() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Prober discovers the monitors currently attached to the display server.
type Prober interface {
	Probe(ctx context.Context) ([]Record, error)
}

// Output is a raw probed output before it is indexed and named.
type Output struct {
	Link   string
	Width  int
	Height int
	EDID   []byte
}

// Assemble turns probed outputs into indexed, named records.
// Indices follow the order of outputs. Naming failures are not fatal: the
// record is named "unknown" and the error is returned alongside for logging.
func Assemble(ctx context.Context, outputs []Output, namer Namer) ([]Record, []error) {
	var warnings []error
	records := make([]Record, 0, len(outputs))
	for i, o := range outputs {
		name := unknownName
		if namer != nil && len(o.EDID) > 0 {
			n, err := namer.Name(ctx, o.EDID)
			if err != nil {
				warnings = append(warnings, fmt.Errorf("name %s: %w", o.Link, err))
			} else if n != "" {
				name = n
			}
		}
		records = append(records, Record{
			Index:  i,
			Link:   o.Link,
			Width:  o.Width,
			Height: o.Height,
			Name:   name,
		})
	}
	return records, warnings
}
