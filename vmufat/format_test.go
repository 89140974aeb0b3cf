package vmufat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFormatFullPipeline runs Format end to end against a memory-backed
// device and spot-checks each stage: the planned rootblock, that progress
// was narrated, the root block's first signature byte (P3), the FAT
// terminator (P4), and the bad-block mark (P8).
func TestFormatFullPipeline(t *testing.T) {
	const totalSectors = 1024
	dev, _ := newTestStreamDevice(t, totalSectors)

	pinned := time.Date(2026, time.July, 31, 9, 0, 0, 0, time.UTC)
	badBlock := int64(3)

	var narration []string
	opts := FormatOptions{
		Clock: func() time.Time { return pinned },
		BadBlocks: func() ([]int32, error) {
			return []int32{int32(badBlock)}, nil
		},
		Verbose: func(format string, args ...any) {
			narration = append(narration, format)
		},
	}

	layout, err := Format(dev, opts)
	require.NoError(t, err)

	assert.EqualValues(t, 1023, layout.Rootblock)
	assert.NotEmpty(t, narration)

	rootSector, err := dev.ReadSectorAt(layout.Rootblock)
	require.NoError(t, err)
	assert.EqualValues(t, 0x55, rootSector[0])

	assert.EqualValues(t, fatTerminator, fatCellAt(t, dev, layout, layout.Rootblock))
	assert.EqualValues(t, fatTerminator, fatCellAt(t, dev, layout, badBlock))
}

// TestFormatRejectsUndersizedRequest exercises the error path where the
// requested sector count is smaller than the planner's minimum.
func TestFormatRejectsUndersizedRequest(t *testing.T) {
	dev, _ := newTestStreamDevice(t, 1024)
	_, err := Format(dev, FormatOptions{RequestedSectors: 2})
	require.Error(t, err)
}

// TestFormatAbortsOnBadBlockInSystemArea exercises P9 through the full
// pipeline: a bad-block source naming a system-area block must abort
// before any further writes matter.
func TestFormatAbortsOnBadBlockInSystemArea(t *testing.T) {
	dev, _ := newTestStreamDevice(t, 1024)
	layout, err := Plan(1024*SectorSize, 0)
	require.NoError(t, err)

	opts := FormatOptions{
		BadBlocks: func() ([]int32, error) {
			return []int32{int32(layout.Dirstart)}, nil
		},
	}
	_, err = Format(dev, opts)
	require.Error(t, err)
}
