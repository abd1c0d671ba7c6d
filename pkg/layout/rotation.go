package layout

import "fmt"

// Rotation is the orientation of an output.
type Rotation int

const (
	Normal Rotation = iota
	Left
	Right
	Inverted
)

var rotationNames = [...]string{
	Normal:   "normal",
	Left:     "left",
	Right:    "right",
	Inverted: "inverted",
}

// String returns the lowercase xrandr name of the rotation.
func (r Rotation) String() string {
	if r < Normal || r > Inverted {
		return fmt.Sprintf("Rotation(%d)", int(r))
	}
	return rotationNames[r]
}

// Swaps reports whether the output is turned on its side, so that its
// height occupies the horizontal axis of the framebuffer.
func (r Rotation) Swaps() bool {
	return r == Left || r == Right
}

// Extent returns the horizontal and vertical size of a width x height mode
// under this rotation.
func (r Rotation) Extent(width, height int) (int, int) {
	if r.Swaps() {
		return height, width
	}
	return width, height
}

// letter returns the directive letter for r; Normal has none.
func (r Rotation) letter() string {
	switch r {
	case Left:
		return "l"
	case Right:
		return "r"
	case Inverted:
		return "i"
	}
	return ""
}

// rotationForLetter maps a lowercase directive letter to its rotation.
func rotationForLetter(c byte) (Rotation, bool) {
	switch c {
	case 'n':
		return Normal, true
	case 'l':
		return Left, true
	case 'r':
		return Right, true
	case 'i':
		return Inverted, true
	}
	return Normal, false
}
