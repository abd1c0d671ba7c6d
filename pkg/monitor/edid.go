package monitor

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"github.com/matzehuels/monlayout/pkg/cache"
	"github.com/matzehuels/monlayout/pkg/observability"
)

const unknownName = "unknown"

// ErrNoName is returned by a Namer that found no model name in the EDID.
var ErrNoName = errors.New("no model name in EDID")

// Namer derives a human readable model name from raw EDID bytes.
type Namer interface {
	Name(ctx context.Context, edid []byte) (string, error)
}

// NamerFunc adapts a function to the Namer interface.
type NamerFunc func(ctx context.Context, edid []byte) (string, error)

// Name calls f.
func (f NamerFunc) Name(ctx context.Context, edid []byte) (string, error) {
	return f(ctx, edid)
}

// =============================================================================
// edid-decode
// =============================================================================

// EDIDDecodeNamer pipes the EDID, hex encoded, into the edid-decode tool and
// picks the model name out of its report.
type EDIDDecodeNamer struct {
	Binary string // defaults to "edid-decode"
}

// Name runs edid-decode and parses its output.
func (n EDIDDecodeNamer) Name(ctx context.Context, edid []byte) (string, error) {
	bin := n.Binary
	if bin == "" {
		bin = "edid-decode"
	}

	cmd := exec.CommandContext(ctx, bin)
	cmd.Stdin = strings.NewReader(hex.EncodeToString(edid))
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	// edid-decode exits non-zero on conformance failures while still printing
	// a complete report, so only a failure to start is fatal.
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("run %s: %w", bin, err)
		}
	}

	name := parseEDIDDecode(stdout.String())
	if name == "" {
		return "", ErrNoName
	}
	return name, nil
}

// edid-decode has printed the model name under different labels over time.
var (
	nameLabels  = []string{"Monitor name: ", "Display Product Name: "}
	asciiLabels = []string{"ASCII string: ", "Alphanumeric Data String: "}
)

// parseEDIDDecode extracts a model name from an edid-decode report.
// The monitor name wins; otherwise the distinct ASCII strings are sorted and
// joined with spaces.
func parseEDIDDecode(report string) string {
	var ascii []string
	for _, line := range strings.Split(report, "\n") {
		if v, ok := labelValue(line, nameLabels); ok && v != "" {
			return v
		}
		if v, ok := labelValue(line, asciiLabels); ok && v != "" {
			ascii = append(ascii, v)
		}
	}
	if len(ascii) == 0 {
		return ""
	}
	slices.Sort(ascii)
	return strings.Join(slices.Compact(ascii), " ")
}

func labelValue(line string, labels []string) (string, bool) {
	for _, label := range labels {
		if _, v, ok := strings.Cut(line, label); ok {
			return strings.Trim(strings.TrimSpace(v), "'"), true
		}
	}
	return "", false
}

// =============================================================================
// Native descriptor decoding
// =============================================================================

var edidHeader = []byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}

const (
	edidBlockSize      = 128
	descriptorSize     = 18
	tagProductName     = 0xfc
	tagAlphanumericStr = 0xfe
)

// descriptorOffsets are the four 18-byte descriptor slots of the base block.
var descriptorOffsets = []int{54, 72, 90, 108}

// DescriptorName decodes the model name from the display descriptors of an
// EDID base block: the product name descriptor (0xFC) if present, otherwise
// the sorted, de-duplicated alphanumeric data strings (0xFE).
func DescriptorName(edid []byte) (string, error) {
	if len(edid) < edidBlockSize {
		return "", fmt.Errorf("EDID too short: %d bytes", len(edid))
	}
	if !bytes.Equal(edid[:len(edidHeader)], edidHeader) {
		return "", errors.New("EDID header mismatch")
	}

	var ascii []string
	for _, off := range descriptorOffsets {
		d := edid[off : off+descriptorSize]
		// Display descriptors start with a zero pixel clock.
		if d[0] != 0 || d[1] != 0 || d[2] != 0 {
			continue
		}
		text := descriptorText(d[5:])
		if text == "" {
			continue
		}
		switch d[3] {
		case tagProductName:
			return text, nil
		case tagAlphanumericStr:
			ascii = append(ascii, text)
		}
	}
	if len(ascii) == 0 {
		return "", ErrNoName
	}
	slices.Sort(ascii)
	return strings.Join(slices.Compact(ascii), " "), nil
}

// descriptorText decodes a 13-byte descriptor payload terminated by 0x0A and
// padded with spaces.
func descriptorText(b []byte) string {
	if i := bytes.IndexByte(b, 0x0a); i >= 0 {
		b = b[:i]
	}
	return strings.TrimSpace(string(b))
}

// DescriptorNamer is a Namer backed by DescriptorName.
var DescriptorNamer = NamerFunc(func(_ context.Context, edid []byte) (string, error) {
	return DescriptorName(edid)
})

// =============================================================================
// Composition
// =============================================================================

// FallbackNamer tries each namer in turn and returns the first name found.
// The error of the last namer is returned when none succeeds.
type FallbackNamer []Namer

// Name implements Namer.
func (f FallbackNamer) Name(ctx context.Context, edid []byte) (string, error) {
	err := ErrNoName
	for _, n := range f {
		name, nerr := n.Name(ctx, edid)
		if nerr == nil && name != "" {
			return name, nil
		}
		if nerr != nil {
			err = nerr
		}
	}
	return "", err
}

// CachedNamer memoises an inner Namer in a cache keyed by the EDID hash.
// Cache failures degrade to calling the inner namer.
type CachedNamer struct {
	Inner     Namer
	Cache     cache.Cache
	Namespace string
}

// Name implements Namer.
func (c CachedNamer) Name(ctx context.Context, edid []byte) (string, error) {
	key := cache.NameKey(c.Namespace, edid)
	if data, hit, err := c.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "name")
		return string(data), nil
	}
	observability.Cache().OnCacheMiss(ctx, "name")

	name, err := c.Inner.Name(ctx, edid)
	if err != nil {
		return "", err
	}
	if err := c.Cache.Set(ctx, key, []byte(name), cache.NameTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "name", len(name))
	}
	return name, nil
}
