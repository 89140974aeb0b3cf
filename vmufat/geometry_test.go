package vmufat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPlanTotality exercises P1: for every power-of-two sector count, the
// planner's fields match the formulas in the geometry record definition.
func TestPlanTotality(t *testing.T) {
	for _, v := range []int64{4, 8, 16, 32, 64, 128, 256, 512, 1024} {
		v := v
		t.Run("", func(t *testing.T) {
			layout, err := Plan(v*SectorSize, 0)
			require.NoError(t, err)

			wantRootblock := v - 1
			wantFatstart := v - 2
			wantFatsize := (2 * v) >> SectorShift
			wantDirstart := wantFatstart - wantFatsize
			wantDirsize := (v - 1 - wantFatsize) / 17

			assert.Equal(t, wantRootblock, layout.Rootblock)
			assert.Equal(t, wantFatstart, layout.Fatstart)
			assert.Equal(t, wantFatsize, layout.Fatsize)
			assert.Equal(t, wantDirstart, layout.Dirstart)
			assert.Equal(t, wantDirsize, layout.Dirsize)
			assert.GreaterOrEqual(t, layout.Dirstart-layout.Dirsize, int64(0))
		})
	}
}

// TestPlanRoundsDownToPowerOfTwo exercises P2.
func TestPlanRoundsDownToPowerOfTwo(t *testing.T) {
	cases := []struct {
		rawSectors  int64
		wantSectors int64
	}{
		{4, 4},
		{5, 4},
		{255, 128},
		{256, 256},
		{257, 256},
		{1000, 512},
		{1024, 1024},
		{2047, 1024},
	}

	for _, tc := range cases {
		layout, err := Plan(tc.rawSectors*SectorSize, 0)
		require.NoError(t, err)
		assert.Equal(t, tc.wantSectors, layout.TotalSectors(), "raw sectors=%d", tc.rawSectors)
	}
}

// TestScenario1 is the literal S1 scenario: a zero-filled 128 KiB image.
func TestScenario1(t *testing.T) {
	layout, err := Plan(131072, 0)
	require.NoError(t, err)

	assert.EqualValues(t, 131072, layout.Size)
	assert.EqualValues(t, 255, layout.Rootblock)
	assert.EqualValues(t, 254, layout.Fatstart)
	assert.EqualValues(t, 1, layout.Fatsize)
	assert.EqualValues(t, 253, layout.Dirstart)
	assert.EqualValues(t, 14, layout.Dirsize)
	assert.EqualValues(t, 112, layout.DirectoryEntryCapacity())
}

// TestScenario2 mirrors S2 (a 512 KiB image) but derives its dirstart and
// dirsize expectations from the geometry formula directly rather than
// hardcoding them, since they follow straightforwardly from fatsize and
// the 1/17th directory ratio.
func TestScenario2(t *testing.T) {
	layout, err := Plan(524288, 0)
	require.NoError(t, err)

	assert.EqualValues(t, 1023, layout.Rootblock)
	assert.EqualValues(t, 1022, layout.Fatstart)
	assert.EqualValues(t, 4, layout.Fatsize)
	assert.EqualValues(t, layout.Fatstart-layout.Fatsize, layout.Dirstart)
	assert.EqualValues(t, (1024-1-4)/17, layout.Dirsize)
}

// TestScenario3UndersizedDevice exercises S3.
func TestScenario3UndersizedDevice(t *testing.T) {
	_, err := Plan(1500, 0)
	require.Error(t, err)
}

// TestScenario4RequestExceedsDevice exercises S4.
func TestScenario4RequestExceedsDevice(t *testing.T) {
	_, err := Plan(131072, 512)
	require.Error(t, err)
}

func TestPlanRejectsSmallRequestedCount(t *testing.T) {
	_, err := Plan(131072, 2)
	require.Error(t, err)
}
