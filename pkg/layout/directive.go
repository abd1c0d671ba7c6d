package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors. A *ParseError unwraps to exactly one of these.
var (
	ErrEmptyDirective      = errors.New("empty directive")
	ErrMissingMonitorIndex = errors.New("missing monitor index")
	ErrAmbiguousRotation   = errors.New("more than one rotation")
	ErrInvalidNumber       = errors.New("invalid number")
	ErrTrailingGarbage     = errors.New("unrecognized character")
	ErrDuplicateField      = errors.New("position given twice")
	ErrConflictingFlags    = errors.New("off cannot be combined with other settings")
)

// ParseError describes why a directive string was rejected.
type ParseError struct {
	Input string // the directive as given
	Pos   int    // byte offset of the offending character
	Err   error  // one of the Err* sentinels
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid directive %q at offset %d: %v", e.Input, e.Pos, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Directive is one parsed layout instruction for a single monitor.
type Directive struct {
	Monitor  int      // registry index of the target monitor
	Rotation Rotation // Normal unless a rotation letter was given
	X, Y     *int     // explicit position; nil means chained
	Force    bool     // power-cycle the output before configuring it
	Primary  bool     // mark as primary output
	Off      bool     // turn the output off
}

// On reports whether the directive leaves the monitor powered on.
func (d Directive) On() bool {
	return !d.Off
}

// String renders the directive in canonical form, e.g. "1lx1080y-10fp".
// Parse(d.String()) yields d again.
func (d Directive) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(d.Monitor))
	b.WriteString(d.Rotation.letter())
	if d.X != nil {
		b.WriteString("x" + strconv.Itoa(*d.X))
	}
	if d.Y != nil {
		b.WriteString("y" + strconv.Itoa(*d.Y))
	}
	if d.Force {
		b.WriteByte('f')
	}
	if d.Primary {
		b.WriteByte('p')
	}
	if d.Off {
		b.WriteByte('o')
	}
	return b.String()
}

// Parse reads a single directive. The leading decimal index is mandatory;
// the remaining flags may come in any order. Parse never defaults a
// malformed field: any unrecognized or ambiguous content is an error.
//
// Repeating a letter that carries no value (f, p, o or the same rotation) is
// accepted and has no further effect. The x and y offsets carry a value and
// may appear at most once each.
func Parse(raw string) (Directive, error) {
	fail := func(pos int, err error) (Directive, error) {
		return Directive{}, &ParseError{Input: raw, Pos: pos, Err: err}
	}

	if raw == "" {
		return fail(0, ErrEmptyDirective)
	}

	i := scanDigits(raw, 0)
	if i == 0 {
		return fail(0, ErrMissingMonitorIndex)
	}
	idx, err := strconv.Atoi(raw[:i])
	if err != nil {
		return fail(0, ErrInvalidNumber)
	}

	d := Directive{Monitor: idx}
	rotated := false

	for i < len(raw) {
		c := lower(raw[i])
		if r, ok := rotationForLetter(c); ok {
			if rotated && r != d.Rotation {
				return fail(i, ErrAmbiguousRotation)
			}
			d.Rotation, rotated = r, true
			i++
			continue
		}

		switch c {
		case 'x', 'y':
			field := &d.X
			if c == 'y' {
				field = &d.Y
			}
			if *field != nil {
				return fail(i, ErrDuplicateField)
			}
			v, next, ok := scanSigned(raw, i+1)
			if !ok {
				return fail(i+1, ErrInvalidNumber)
			}
			*field = &v
			i = next
		case 'f':
			d.Force = true
			i++
		case 'p':
			d.Primary = true
			i++
		case 'o':
			d.Off = true
			i++
		default:
			return fail(i, ErrTrailingGarbage)
		}
	}

	if d.Off && (rotated || d.X != nil || d.Y != nil || d.Force || d.Primary) {
		return fail(len(raw), ErrConflictingFlags)
	}
	return d, nil
}

// ParseAll parses every raw directive. Successfully parsed directives keep
// their input order; each rejected string contributes one error.
func ParseAll(raws []string) ([]Directive, []error) {
	var (
		directives []Directive
		errs       []error
	)
	for _, raw := range raws {
		d, err := Parse(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		directives = append(directives, d)
	}
	return directives, errs
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// scanDigits returns the offset of the first non-digit at or after i.
func scanDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// scanSigned reads an optionally signed decimal integer starting at i.
func scanSigned(s string, i int) (int, int, bool) {
	start := i
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	end := scanDigits(s, i)
	if end == i {
		return 0, start, false
	}
	v, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0, start, false
	}
	return v, end, true
}
