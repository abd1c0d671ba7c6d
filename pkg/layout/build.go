package layout

import (
	"fmt"
	"strings"
)

// ArgumentGroup is the ordered argument list of one xrandr invocation.
type ArgumentGroup []string

// String joins the arguments with spaces for display.
func (g ArgumentGroup) String() string {
	return strings.Join(g, " ")
}

// Placement is the resolved geometry of one setup item.
type Placement struct {
	Link     string
	Enabled  bool
	Rotation Rotation
	X, Y     int
	Width    int // mode width, before rotation
	Height   int // mode height, before rotation
	Force    bool
	Primary  bool
}

// Mode returns the placement's mode in xrandr "WxH" notation.
func (p Placement) Mode() string {
	return fmt.Sprintf("%dx%d", p.Width, p.Height)
}

// Pos returns the placement's position in xrandr "XxY" notation.
func (p Placement) Pos() string {
	return fmt.Sprintf("%dx%d", p.X, p.Y)
}

// args returns the per-output flags of the main xrandr invocation.
func (p Placement) args() []string {
	if !p.Enabled {
		return []string{"--output", p.Link, "--off"}
	}
	args := []string{
		"--output", p.Link,
		"--rotation", p.Rotation.String(),
		"--pos", p.Pos(),
		"--mode", p.Mode(),
		"--auto",
	}
	if p.Primary {
		args = append(args, "--primary")
	}
	return args
}

// cursor is the running position threaded through the placement fold.
// x is where the next chained monitor starts; y is the last resolved Y.
type cursor struct {
	x, y int
}

// place resolves one item and returns the advanced cursor.
// Items that end up off do not move the cursor.
func (c cursor) place(it SetupItem) (Placement, cursor) {
	m := it.Monitor
	p := Placement{Link: m.Link, Width: m.Width, Height: m.Height}
	if !it.Enabled() {
		return p, c
	}

	d := it.Directive
	p.Enabled = true
	p.Rotation = d.Rotation
	p.Force = d.Force
	p.Primary = d.Primary

	p.X = c.x
	if d.X != nil {
		p.X = *d.X
	}
	p.Y = c.y
	if d.Y != nil {
		p.Y = *d.Y
	}

	extent, _ := d.Rotation.Extent(m.Width, m.Height)
	return p, cursor{x: c.x + extent, y: p.Y}
}

// Place resolves the position of every item in order. The X cursor advances
// by each enabled monitor's horizontal extent (its height when rotated left
// or right); Y carries over from the previous enabled monitor.
func Place(items []SetupItem) []Placement {
	placements := make([]Placement, 0, len(items))
	var c cursor
	for _, it := range items {
		var p Placement
		p, c = c.place(it)
		placements = append(placements, p)
	}
	return placements
}

// Build turns setup items into the ordered xrandr argument groups.
//
// Every forced item contributes a standalone "--output L --off" group. These
// come first, in item order, followed by a single group that configures all
// outputs at once. Empty input yields no groups.
func Build(items []SetupItem) []ArgumentGroup {
	if len(items) == 0 {
		return nil
	}

	var (
		groups []ArgumentGroup
		main   ArgumentGroup
	)
	for _, p := range Place(items) {
		if p.Force {
			groups = append(groups, ArgumentGroup{"--output", p.Link, "--off"})
		}
		main = append(main, p.args()...)
	}
	return append(groups, main)
}
