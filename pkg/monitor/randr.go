package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/monlayout/pkg/errors"
	"github.com/matzehuels/monlayout/pkg/observability"
)

// edidAtom is the RandR output property holding the raw EDID.
const edidAtom = "EDID"

// maxEDIDWords bounds the EDID property read (4-byte units): base block plus
// up to seven extension blocks.
const maxEDIDWords = 256

// RandRProber queries the X server directly over the RandR extension instead
// of parsing xrandr's text output.
type RandRProber struct {
	Display string // X display, e.g. ":0"; empty uses $DISPLAY
	Namer   Namer
	Logger  *log.Logger
}

// Probe implements Prober.
func (p *RandRProber) Probe(ctx context.Context) (records []Record, err error) {
	start := time.Now()
	observability.Probe().OnProbeStart(ctx, errors.ProbeRandR)
	defer func() {
		observability.Probe().OnProbeComplete(ctx, errors.ProbeRandR, len(records), time.Since(start), err)
	}()

	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}

	conn, err := xgb.NewConnDisplay(p.Display)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeProbe, err, "connect to X display")
	}
	defer conn.Close()

	outputs, err := queryOutputs(conn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeProbe, err, "query RandR outputs")
	}

	records, warnings := Assemble(ctx, outputs, p.Namer)
	for _, w := range warnings {
		logger.Debug("monitor name lookup failed", "err", w)
	}
	return records, nil
}

func queryOutputs(conn *xgb.Conn) ([]Output, error) {
	if err := randr.Init(conn); err != nil {
		return nil, err
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root

	resources, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return nil, err
	}

	modes := make(map[uint32]randr.ModeInfo, len(resources.Modes))
	for _, m := range resources.Modes {
		modes[m.Id] = m
	}

	atom, err := xproto.InternAtom(conn, true, uint16(len(edidAtom)), edidAtom).Reply()
	if err != nil {
		return nil, fmt.Errorf("intern %s atom: %w", edidAtom, err)
	}

	var outputs []Output
	for _, output := range resources.Outputs {
		info, err := randr.GetOutputInfo(conn, output, resources.ConfigTimestamp).Reply()
		if err != nil {
			return nil, err
		}
		if info.Connection != randr.ConnectionConnected || len(info.Modes) == 0 {
			continue
		}
		// The first NumPreferred modes are preferred; Modes[0] is the best one.
		m, ok := modes[uint32(info.Modes[0])]
		if !ok {
			return nil, fmt.Errorf("output %s: unknown mode %d", info.Name, info.Modes[0])
		}

		o := Output{
			Link:   string(info.Name),
			Width:  int(m.Width),
			Height: int(m.Height),
		}
		if atom.Atom != xproto.AtomNone {
			prop, err := randr.GetOutputProperty(conn, output, atom.Atom, xproto.AtomAny, 0, maxEDIDWords, false, false).Reply()
			if err == nil && len(prop.Data) > 0 {
				o.EDID = prop.Data
			}
		}
		outputs = append(outputs, o)
	}
	return outputs, nil
}

var _ Prober = (*RandRProber)(nil)
