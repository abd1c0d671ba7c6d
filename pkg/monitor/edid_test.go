package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/monlayout/pkg/cache"
)

// buildEDID returns a 128-byte base block with the given display descriptors.
func buildEDID(descriptors map[int]struct {
	tag  byte
	text string
}) []byte {
	edid := make([]byte, edidBlockSize)
	copy(edid, edidHeader)
	for i, off := range descriptorOffsets {
		d, ok := descriptors[i]
		if !ok {
			// Detailed timing: non-zero pixel clock.
			edid[off] = 0x01
			continue
		}
		edid[off+3] = d.tag
		payload := edid[off+5 : off+descriptorSize]
		for j := range payload {
			payload[j] = ' '
		}
		n := copy(payload, d.text)
		if n < len(payload) {
			payload[n] = 0x0a
		}
	}
	return edid
}

type descriptor = struct {
	tag  byte
	text string
}

func TestDescriptorName(t *testing.T) {
	tests := []struct {
		name    string
		edid    []byte
		want    string
		wantErr bool
	}{
		{
			name: "product name",
			edid: buildEDID(map[int]descriptor{1: {tagAlphanumericStr, "ABC123"}, 2: {tagProductName, "DELL U2415"}}),
			want: "DELL U2415",
		},
		{
			name: "alphanumeric strings sorted and deduplicated",
			edid: buildEDID(map[int]descriptor{1: {tagAlphanumericStr, "LP140WF1"}, 2: {tagAlphanumericStr, "LG Display"}, 3: {tagAlphanumericStr, "LP140WF1"}}),
			want: "LG Display LP140WF1",
		},
		{
			name:    "no descriptors",
			edid:    buildEDID(nil),
			wantErr: true,
		},
		{
			name:    "too short",
			edid:    edidHeader,
			wantErr: true,
		},
		{
			name:    "bad header",
			edid:    make([]byte, edidBlockSize),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DescriptorName(tt.edid)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEDIDDecode(t *testing.T) {
	tests := []struct {
		name   string
		report string
		want   string
	}{
		{
			name:   "legacy monitor name",
			report: "Block 0, Base EDID:\n  Monitor name: DELL U2415\n  ASCII string: 7MT0186T0LCL\n",
			want:   "DELL U2415",
		},
		{
			name:   "modern product name",
			report: "    Display Product Name: 'HP E243'\n",
			want:   "HP E243",
		},
		{
			name:   "ascii fallback",
			report: "    ASCII string: LP140WF1\n    ASCII string: LG Display\n    ASCII string: LP140WF1\n",
			want:   "LG Display LP140WF1",
		},
		{
			name:   "nothing",
			report: "EDID conformity: FAIL\n",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseEDIDDecode(tt.report))
		})
	}
}

func TestFallbackNamer(t *testing.T) {
	ctx := context.Background()
	failing := NamerFunc(func(context.Context, []byte) (string, error) {
		return "", errors.New("edid-decode not installed")
	})
	fixed := NamerFunc(func(context.Context, []byte) (string, error) {
		return "Fixed", nil
	})

	name, err := FallbackNamer{failing, fixed}.Name(ctx, []byte{1})
	require.NoError(t, err)
	assert.Equal(t, "Fixed", name)

	_, err = FallbackNamer{failing}.Name(ctx, []byte{1})
	assert.EqualError(t, err, "edid-decode not installed")

	_, err = FallbackNamer{}.Name(ctx, []byte{1})
	assert.ErrorIs(t, err, ErrNoName)
}

func TestCachedNamer(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)

	calls := 0
	inner := NamerFunc(func(context.Context, []byte) (string, error) {
		calls++
		return "DELL U2415", nil
	})
	n := CachedNamer{Inner: inner, Cache: fc, Namespace: "test"}

	for i := 0; i < 3; i++ {
		name, err := n.Name(ctx, []byte{0xab, 0xcd})
		require.NoError(t, err)
		assert.Equal(t, "DELL U2415", name)
	}
	assert.Equal(t, 1, calls, "inner namer should run once")

	data, hit, err := fc.Get(ctx, cache.NameKey("test", []byte{0xab, 0xcd}))
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "DELL U2415", string(data))
}

func TestCachedNamerDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	calls := 0
	inner := NamerFunc(func(context.Context, []byte) (string, error) {
		calls++
		return "", ErrNoName
	})
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	n := CachedNamer{Inner: inner, Cache: fc, Namespace: "test"}

	_, err = n.Name(ctx, []byte{1})
	assert.ErrorIs(t, err, ErrNoName)
	_, err = n.Name(ctx, []byte{1})
	assert.ErrorIs(t, err, ErrNoName)
	assert.Equal(t, 2, calls)
}

func TestAssemble(t *testing.T) {
	ctx := context.Background()
	outputs := []Output{
		{Link: "eDP", Width: 1600, Height: 1200, EDID: []byte{1}},
		{Link: "DisplayPort-1", Width: 1920, Height: 1080, EDID: []byte{2}},
		{Link: "DisplayPort-2", Width: 1920, Height: 1200},
	}
	namer := NamerFunc(func(_ context.Context, edid []byte) (string, error) {
		if edid[0] == 2 {
			return "", ErrNoName
		}
		return "Laptop Display", nil
	})

	records, warnings := Assemble(ctx, outputs, namer)
	require.Len(t, records, 3)
	assert.Len(t, warnings, 1)

	assert.Equal(t, Record{Index: 0, Link: "eDP", Width: 1600, Height: 1200, Name: "Laptop Display"}, records[0])
	assert.Equal(t, "unknown", records[1].Name)
	assert.Equal(t, 1, records[1].Index)
	assert.Equal(t, "unknown", records[2].Name, "no EDID means no lookup")
	assert.Equal(t, "2. unknown (1920x1200) on DisplayPort-2", records[2].String())
	assert.Equal(t, "1920x1200", records[2].Mode())
}
