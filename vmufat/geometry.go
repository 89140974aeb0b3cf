package vmufat

import vmerrors "github.com/mcmenaminadrian/mkfs.vmufat/errors"

// minimumSectors is the smallest sector count the planner will accept,
// per spec: N >= 4.
const minimumSectors = 4

// Layout is the immutable geometry record computed once per format
// invocation: size, rootblock, fatstart, fatsize, dirstart, dirsize.
//
// The FAT and directory regions are addressed by their *last* sector. From
// low sector to high, a volume holds the user data, the directory region,
// the FAT region, and the single root block.
type Layout struct {
	// Size is the volume size in octets: a multiple of 512 whose sector
	// count is a power of two.
	Size int64
	// Rootblock is the sector index of the root/superblock.
	Rootblock int64
	// Fatstart is the sector index of the last (highest-indexed) sector of
	// the FAT region.
	Fatstart int64
	// Fatsize is the number of sectors occupied by the FAT.
	Fatsize int64
	// Dirstart is the sector index of the last sector of the directory
	// region.
	Dirstart int64
	// Dirsize is the number of sectors allotted to the directory.
	Dirsize int64
}

// TotalSectors returns the volume size in sectors (Size >> SectorShift).
func (l Layout) TotalSectors() int64 {
	return l.Size >> SectorShift
}

// DirectoryEntryCapacity returns the number of 32-byte directory entries
// the directory region can hold: 16 entries per 512-byte sector.
func (l Layout) DirectoryEntryCapacity() int64 {
	return l.Dirsize * 8
}

// roundDownPowerOfTwo returns the largest power of two <= x, by repeated
// halving of 0x80000000, matching the source's _round_down exactly.
func roundDownPowerOfTwo(x int64) int64 {
	y := int64(0x80000000)
	for y > x {
		y = y >> 1
	}
	return y
}

// Plan derives a Layout from the raw device size in octets and an optional
// requested sector count (0 meaning "use the full device").
//
// Preserves the source's fatsize formula, (2*sectors)>>SectorShift, which
// yields 0 for any volume under 256 sectors; VMUFAT volumes smaller than
// that are not representable by this formatter, matching the original.
// The directory region takes 1/17th of the remainder after the FAT,
// rounding down; the user area takes the other 16/17ths.
func Plan(rawSize int64, requestedSectors int64) (Layout, error) {
	if requestedSectors > 0 && requestedSectors < minimumSectors {
		return Layout{}, vmerrors.ErrRequestedSizeTooSmall.WithMessage(
			"requested block count must be at least 4")
	}
	if rawSize < minimumSectors*SectorSize {
		return Layout{}, vmerrors.ErrDeviceTooSmall
	}

	effectiveSize := rawSize
	if requestedSectors > 0 {
		requestedSize := requestedSectors * SectorSize
		if requestedSize > rawSize {
			return Layout{}, vmerrors.ErrRequestedSizeExceedsDevice
		}
		effectiveSize = requestedSize
	}

	sectors := effectiveSize >> SectorShift
	roundedSectors := roundDownPowerOfTwo(sectors)
	size := roundedSectors << SectorShift

	rootblock := roundedSectors - 1
	fatstart := rootblock - 1
	fatsize := (2 * roundedSectors) >> SectorShift
	dirstart := fatstart - fatsize
	dirsize := (roundedSectors - (1 + fatsize)) / 17

	return Layout{
		Size:      size,
		Rootblock: rootblock,
		Fatstart:  fatstart,
		Fatsize:   fatsize,
		Dirstart:  dirstart,
		Dirsize:   dirsize,
	}, nil
}
