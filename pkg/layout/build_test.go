package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/monlayout/pkg/monitor"
)

func items(t *testing.T, monitors []monitor.Record, raws ...string) []SetupItem {
	t.Helper()
	setup, err := Match(mustParseAll(t, raws...), monitors)
	require.NoError(t, err)
	return setup.Items
}

func TestPlaceChainsXOffsets(t *testing.T) {
	monitors := []monitor.Record{
		{Index: 0, Link: "A", Width: 1920, Height: 1080},
		{Index: 1, Link: "B", Width: 1920, Height: 1200},
		{Index: 2, Link: "C", Width: 1600, Height: 1200},
	}

	placements := Place(items(t, monitors, "0", "1", "2"))
	require.Len(t, placements, 3)
	assert.Equal(t, 0, placements[0].X)
	assert.Equal(t, 1920, placements[1].X)
	assert.Equal(t, 3840, placements[2].X)
	for _, p := range placements {
		assert.Equal(t, 0, p.Y)
		assert.True(t, p.Enabled)
	}
}

func TestPlaceRotatedMonitorContributesHeight(t *testing.T) {
	monitors := []monitor.Record{
		{Index: 0, Link: "A", Width: 1920, Height: 1080},
		{Index: 1, Link: "B", Width: 1920, Height: 1200},
		{Index: 2, Link: "C", Width: 1920, Height: 1080},
	}

	placements := Place(items(t, monitors, "0l", "1r", "2i"))
	assert.Equal(t, 0, placements[0].X)
	assert.Equal(t, 1080, placements[1].X)
	assert.Equal(t, 2280, placements[2].X)
}

func TestPlaceCarriesY(t *testing.T) {
	monitors := []monitor.Record{
		{Index: 0, Link: "A", Width: 1920, Height: 1080},
		{Index: 1, Link: "B", Width: 1920, Height: 1080},
		{Index: 2, Link: "C", Width: 1920, Height: 1080},
	}

	placements := Place(items(t, monitors, "0", "1y-200f", "2"))
	assert.Equal(t, 0, placements[0].Y)
	assert.Equal(t, -200, placements[1].Y)
	assert.Equal(t, -200, placements[2].Y, "Y persists across a force-cycled monitor")
}

func TestPlaceOffItemsDoNotAdvance(t *testing.T) {
	monitors := []monitor.Record{
		{Index: 0, Link: "A", Width: 1920, Height: 1080},
		{Index: 1, Link: "B", Width: 2560, Height: 1440},
		{Index: 2, Link: "C", Width: 1600, Height: 1200},
	}

	placements := Place(items(t, monitors, "0", "1o", "2"))
	assert.False(t, placements[1].Enabled)
	assert.Equal(t, 1920, placements[2].X)
}

// The worked example from the usage text: monitor 1 rotated left, monitor 2
// at an explicit position, monitor 0 chained after both.
func TestBuildEndToEnd(t *testing.T) {
	monitors := sampleMonitors()
	it := items(t, monitors, "1L", "2x1080y300", "0")

	placements := Place(it)
	require.Len(t, placements, 3)

	assert.Equal(t, "DisplayPort-1", placements[0].Link)
	assert.Equal(t, Left, placements[0].Rotation)
	assert.Equal(t, [2]int{0, 0}, [2]int{placements[0].X, placements[0].Y})

	assert.Equal(t, "DisplayPort-2", placements[1].Link)
	assert.Equal(t, [2]int{1080, 300}, [2]int{placements[1].X, placements[1].Y})

	// 1080 (height of the rotated monitor) + 1920 (width of monitor 2).
	assert.Equal(t, "eDP", placements[2].Link)
	assert.Equal(t, [2]int{3000, 300}, [2]int{placements[2].X, placements[2].Y})

	groups := Build(it)
	require.Len(t, groups, 1)
	assert.Equal(t, ArgumentGroup{
		"--output", "DisplayPort-1", "--rotation", "left", "--pos", "0x0", "--mode", "1920x1080", "--auto",
		"--output", "DisplayPort-2", "--rotation", "normal", "--pos", "1080x300", "--mode", "1920x1200", "--auto",
		"--output", "eDP", "--rotation", "normal", "--pos", "3000x300", "--mode", "1600x1200", "--auto",
	}, groups[0])
}

func TestBuildUnconfiguredMonitorsTurnedOff(t *testing.T) {
	groups := Build(items(t, sampleMonitors(), "2p"))
	require.Len(t, groups, 1)
	assert.Equal(t, ArgumentGroup{
		"--output", "DisplayPort-2", "--rotation", "normal", "--pos", "0x0", "--mode", "1920x1200", "--auto", "--primary",
		"--output", "eDP", "--off",
		"--output", "DisplayPort-1", "--off",
	}, groups[0])
}

func TestBuildForceEmitsOffGroupFirst(t *testing.T) {
	groups := Build(items(t, sampleMonitors(), "0", "1f", "2F"))
	require.Len(t, groups, 3)

	assert.Equal(t, ArgumentGroup{"--output", "DisplayPort-1", "--off"}, groups[0])
	assert.Equal(t, ArgumentGroup{"--output", "DisplayPort-2", "--off"}, groups[1])

	main := groups[2]
	assert.Contains(t, main.String(), "--output DisplayPort-1 --rotation normal --pos 1600x0 --mode 1920x1080 --auto")
	assert.Contains(t, main.String(), "--output DisplayPort-2 --rotation normal --pos 3520x0 --mode 1920x1200 --auto")
}

func TestBuildForceOffPrecedesModeForSameLink(t *testing.T) {
	groups := Build(items(t, sampleMonitors(), "1fl", "0"))

	offAt, modeAt := -1, -1
	for i, g := range groups {
		for j := 0; j+1 < len(g); j++ {
			if g[j] != "--output" || g[j+1] != "DisplayPort-1" {
				continue
			}
			if j+2 < len(g) && g[j+2] == "--off" && offAt == -1 {
				offAt = i
			}
			if j+2 < len(g) && g[j+2] == "--rotation" {
				modeAt = i
			}
		}
	}
	require.NotEqual(t, -1, offAt)
	require.NotEqual(t, -1, modeAt)
	assert.Less(t, offAt, modeAt)
}

func TestBuildEmpty(t *testing.T) {
	assert.Nil(t, Build(nil))
	assert.Empty(t, Place(nil))
}

func TestBuildDeterministic(t *testing.T) {
	it := items(t, sampleMonitors(), "1Lx300y0fp", "2", "0i")
	assert.Equal(t, Build(it), Build(it))
}
