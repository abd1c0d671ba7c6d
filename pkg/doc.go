// Package pkg provides the libraries behind the monlayout command.
//
// # Overview
//
// monlayout arranges multiple monitors on an X11 desktop. The user writes one
// short directive per monitor ("1L", "2x1080y300", "0p"); monlayout probes the
// attached outputs, pairs directives with monitors, computes positions and
// runs xrandr.
//
// The pkg directory is organized into these areas:
//
//  1. [layout] - directive parsing, matching and xrandr argument building (pure)
//  2. [monitor] - monitor records, xrandr text parsing, RandR probing, EDID names
//  3. [xrandr] - running xrandr, applying argument groups, probing via xrandr
//  4. [cache] - byte cache for monitor names
//  5. [config], [errors], [observability], [buildinfo] - ambient support
//
// # Architecture
//
// The data flow of one run:
//
//	CLI arguments          xrandr --props / RandR
//	      ↓                        ↓
//	[layout.Parse]         [monitor.Prober]
//	      ↓                        ↓
//	      └──→ [layout.Match] ←────┘
//	                 ↓
//	          [layout.Build]
//	                 ↓
//	         [xrandr.Applier]
//
// # Quick Start
//
//	directives, _ := layout.ParseAll([]string{"1L", "2x1080y300", "0"})
//	prober := &xrandr.Prober{Runner: &xrandr.ExecRunner{}}
//	records, err := prober.Probe(ctx)
//	if err != nil {
//	    return err
//	}
//	setup, err := layout.Match(directives, records)
//	if err != nil {
//	    return err
//	}
//	report, err := xrandr.NewApplier(&xrandr.ExecRunner{}, logger).Apply(ctx, layout.Build(setup.Items))
//	if err != nil {
//	    return err
//	}
//	return report.Err()
package pkg
