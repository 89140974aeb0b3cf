package vmufat

import (
	"encoding/binary"

	"github.com/noxer/bytewriter"

	vmerrors "github.com/mcmenaminadrian/mkfs.vmufat/errors"
)

// FAT cell sentinel values. Any other 16-bit value is the index of the next
// block in a chain.
const (
	fatFree       uint16 = 0xFFFC
	fatTerminator uint16 = 0xFFFA
)

// fillWord fills every 16-bit slot of a sector with the same value,
// writing sequentially through a bytewriter so the encoding stays
// little-endian regardless of host byte order.
func fillWord(sector *Sector, value uint16) error {
	writer := bytewriter.New(sector[:])
	for i := 0; i < SectorSize/2; i++ {
		if err := binary.Write(writer, binary.LittleEndian, value); err != nil {
			return err
		}
	}
	return nil
}

// FATWriter constructs and writes the File Allocation Table.
type FATWriter struct{}

// Write synthesizes the FAT for layout and writes it to dev, spanning
// sectors [Dirstart+1 .. Fatstart].
//
// The buffer used for the final start sectors (those overlapping the
// FAT/directory self-chain region) is intentionally *not* reset between
// iterations: a slot whose block index doesn't match any of the four
// chain conditions keeps whatever value a previous iteration left there,
// matching the source exactly. In practice this only matters for volumes
// large enough that start > 1.
func (w *FATWriter) Write(dev Device, layout Layout) error {
	var buffer Sector
	if err := fillWord(&buffer, fatFree); err != nil {
		return err
	}

	// (a) Default fill: every FAT sector except the physically last one
	// covers user-data blocks, which start out free.
	if layout.Fatsize > 1 {
		for sectorIndex := layout.Fatstart - 1; sectorIndex > layout.Fatstart-layout.Fatsize; sectorIndex-- {
			if err := dev.WriteSectorAt(sectorIndex, buffer); err != nil {
				return vmerrors.ErrShortWrite.WrapError(err)
			}
		}
	}

	// (b) Final FAT sector(s): self-chains for the FAT and directory
	// regions.
	lowestFATBlock := 1 + layout.Fatstart - layout.Fatsize
	lowestDirBlock := 1 + layout.Dirstart - layout.Dirsize
	start := 2*(layout.Fatsize+layout.Dirsize)/SectorSize + 1

	var j int64
	for j = layout.Rootblock - start; j < layout.Rootblock; j++ {
		k := (j - layout.Dirstart - 1) * SectorSize
		for i := int64(0); i < SectorSize; i += 2 {
			bi := (k + i) / 2
			slot := int(i / 2)
			switch {
			case bi > lowestFATBlock:
				binary.LittleEndian.PutUint16(buffer[slot*2:], uint16(bi-1))
			case bi == lowestFATBlock:
				binary.LittleEndian.PutUint16(buffer[slot*2:], fatTerminator)
			case bi > lowestDirBlock:
				binary.LittleEndian.PutUint16(buffer[slot*2:], uint16(bi-1))
			case bi == lowestDirBlock:
				binary.LittleEndian.PutUint16(buffer[slot*2:], fatTerminator)
			}
		}

		if start > 1 {
			if err := dev.WriteSectorAt(j, buffer); err != nil {
				return vmerrors.ErrShortWrite.WrapError(err)
			}
		}
	}

	// (c) Root-block marker: the last buffer prepared covers the rootblock
	// itself (slot 255), which terminates its own self-chain.
	binary.LittleEndian.PutUint16(buffer[SectorSize-2:], fatTerminator)
	if err := dev.WriteSectorAt(j-1, buffer); err != nil {
		return vmerrors.ErrShortWrite.WrapError(err)
	}

	return nil
}
