package vmufat

import (
	"encoding/binary"

	"github.com/boljen/go-bitmap"

	vmerrors "github.com/mcmenaminadrian/mkfs.vmufat/errors"
)

// MarkBadBlocks patches the FAT entry for each block in badBlocks to the
// terminator value, aborting if any lands inside the reserved system
// region [Dirstart, Rootblock]. Blocks outside [0, Rootblock] are ignored.
// Duplicates are tolerated: marking an already-bad block is a no-op.
//
// verbose, if non-nil, is called once per distinct block actually marked;
// a bitmap tracks which blocks have already been reported so a duplicate
// entry in badBlocks doesn't narrate the same block twice.
func MarkBadBlocks(dev Device, layout Layout, badBlocks []int32, verbose func(format string, args ...any)) error {
	if len(badBlocks) == 0 {
		return nil
	}

	reported := bitmap.New(int(layout.Rootblock) + 1)

	for _, b := range badBlocks {
		block := int64(b)
		if block < 0 || block > layout.Rootblock {
			continue
		}
		if block >= layout.Dirstart && block <= layout.Rootblock {
			return vmerrors.ErrBadBlockInSystemArea.WithMessage(
				"cannot mark a system-region block as bad")
		}

		if err := markBlockBad(dev, layout, block); err != nil {
			return err
		}

		if verbose != nil && !reported.Get(int(block)) {
			verbose("Bad block at %d noted.", block)
			reported.Set(int(block), true)
		}
	}

	return nil
}

// markBlockBad locates the FAT sector holding block's entry, patches the
// 16-bit slot, and writes the sector back.
func markBlockBad(dev Device, layout Layout, block int64) error {
	fatSector := (2*block)/SectorSize + layout.Dirstart + 1

	sector, err := dev.ReadSectorAt(fatSector)
	if err != nil {
		return vmerrors.ErrShortRead.WrapError(err)
	}

	slot := block % (SectorSize / 2)
	binary.LittleEndian.PutUint16(sector[slot*2:], fatTerminator)

	if err := dev.WriteSectorAt(fatSector, sector); err != nil {
		return vmerrors.ErrShortWrite.WrapError(err)
	}
	return nil
}
