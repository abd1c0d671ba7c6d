package monitor

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/monlayout/pkg/errors"
)

// modeRegex matches the first column of an xrandr mode line ("1920x1080",
// "1920x1080i"). Dimensions are 3 to 5 digits wide.
var modeRegex = regexp.MustCompile(`^(\d{3,5})x(\d{3,5})i?$`)

// ParseProps scans the output of "xrandr --props" and returns the connected
// outputs in the order xrandr lists them.
//
// The preferred mode (marked "+") gives the output's dimensions; when no mode
// is marked preferred the first listed mode is used. Connected outputs that
// list no mode at all are skipped.
func ParseProps(r io.Reader) ([]Output, error) {
	var (
		outputs []Output
		cur     *propsOutput
		inEDID  bool
	)

	flush := func() {
		if cur == nil {
			return
		}
		if o, ok := cur.output(); ok {
			outputs = append(outputs, o)
		}
		cur = nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()

		if !isIndented(line) {
			inEDID = false
			flush()
			if strings.Contains(line, " connected") {
				cur = newPropsOutput(line)
			}
			continue
		}
		if cur == nil {
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "EDID:"):
			inEDID = true
		case inEDID && !strings.Contains(trimmed, ":"):
			cur.edid.WriteString(trimmed)
		default:
			inEDID = false
			cur.addMode(trimmed)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan xrandr output: %w", err)
	}
	flush()

	return outputs, nil
}

func isIndented(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}

// propsOutput accumulates one output block of "xrandr --props".
type propsOutput struct {
	link      string
	edid      strings.Builder
	first     [2]int
	preferred [2]int
	hasMode   bool
	hasPref   bool
}

func newPropsOutput(header string) *propsOutput {
	fields := strings.Fields(header)
	if len(fields) == 0 || errors.ValidateOutputName(fields[0]) != nil {
		return nil
	}
	return &propsOutput{link: fields[0]}
}

func (p *propsOutput) addMode(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	m := modeRegex.FindStringSubmatch(fields[0])
	if m == nil {
		return
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])

	if !p.hasMode {
		p.first = [2]int{w, h}
		p.hasMode = true
	}
	if !p.hasPref {
		for _, f := range fields[1:] {
			if strings.Contains(f, "+") {
				p.preferred = [2]int{w, h}
				p.hasPref = true
				break
			}
		}
	}
}

func (p *propsOutput) output() (Output, bool) {
	if p.link == "" || !p.hasMode {
		return Output{}, false
	}
	dims := p.first
	if p.hasPref {
		dims = p.preferred
	}
	o := Output{Link: p.link, Width: dims[0], Height: dims[1]}
	if raw, err := hex.DecodeString(p.edid.String()); err == nil && len(raw) > 0 {
		o.EDID = raw
	}
	return o, true
}
