// Package layout turns terse per-monitor directives into xrandr argument groups.
//
// The package has three stages, all pure:
//
//  1. [Parse] reads one directive such as "1Lx300y0fp" into a [Directive].
//  2. [Match] pairs directives with probed monitor records, appends the
//     monitors nobody mentioned as "off", and enforces the global rules:
//     at most one primary, at least one matched directive, never every
//     monitor off.
//  3. [Build] folds the ordered setup items into [ArgumentGroup]s, chaining
//     X offsets left to right and carrying Y over from the previous monitor.
//
// # Directive grammar
//
//	<index>[n|l|r|i][x<int>][y<int>][f][p][o]
//
// Everything after the leading index may appear in any order and letters are
// case-insensitive:
//
//	n, l, r, i   rotation normal, left, right, inverted (default normal)
//	x<int>       absolute X position, may be negative (default: chained)
//	y<int>       absolute Y position, may be negative (default: previous Y)
//	f            force: power the output off in a separate xrandr call first
//	p            make this the primary output
//	o            turn the output off explicitly
//
// # Example
//
//	directives, _ := layout.ParseAll([]string{"1L", "2x1080y300", "0"})
//	setup, err := layout.Match(directives, records)
//	if err != nil {
//	    return err // MULTIPLE_PRIMARY, NO_VALID_ARGUMENTS or REFUSE_BLACKOUT
//	}
//	for _, g := range layout.Build(setup.Items) {
//	    fmt.Println("xrandr", g)
//	}
package layout
