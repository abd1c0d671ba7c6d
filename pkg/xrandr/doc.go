// Package xrandr talks to the xrandr command line tool.
//
// It has three parts:
//
//   - a [Runner] that spawns xrandr and captures its result ([ExecRunner]), or
//     records the call without spawning anything ([DryRunner])
//   - an [Applier] that executes layout argument groups one after another with
//     a settle delay between them
//   - a [Prober] that discovers monitors by parsing "xrandr --props"
//
// Argument groups come from layout.Build. A group that fails is reported and
// the next one still runs; callers turn a report with failures into an
// EXECUTION_FAILED error via [Report.Err].
package xrandr
