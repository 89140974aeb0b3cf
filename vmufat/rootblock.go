package vmufat

import (
	"encoding/binary"
	"time"

	vmerrors "github.com/mcmenaminadrian/mkfs.vmufat/errors"
)

// RootBlockWriter synthesizes and writes the 512-byte root/superblock.
//
// Clock is the source of the current time used for the BCD timestamp. A nil
// Clock (the zero value) means time.Now, which is also what
// NewRootBlockWriter sets; tests pin it to a fixed instant so the written
// image is reproducible.
type RootBlockWriter struct {
	Clock func() time.Time
}

// NewRootBlockWriter returns a writer that stamps the root block with the
// current UTC time.
func NewRootBlockWriter() *RootBlockWriter {
	return &RootBlockWriter{Clock: time.Now}
}

// bcd encodes a decimal value 0..99 as (v/10)<<4 | (v%10).
func bcd(v int) byte {
	return byte((v/10)<<4 | (v % 10))
}

// buildRootBlock fills a 512-byte sector with the signature fill, BCD
// timestamp, and little-endian geometry words described in the root-block
// layout. Word offsets are 16-bit-word indices from the start of the
// sector; word 0x21 is deliberately left zero, matching the source, which
// never writes it.
func buildRootBlock(layout Layout, now time.Time) (Sector, error) {
	var sector Sector

	for i := 0; i < 0x10; i++ {
		sector[i] = 0x55
	}

	year := now.Year() - 1900
	sector[0x30] = bcd(19 + year/100)
	sector[0x31] = bcd(year % 100)
	sector[0x32] = bcd(int(now.Month()))
	sector[0x33] = bcd(now.Day())
	sector[0x34] = bcd(now.Hour())
	sector[0x35] = bcd(now.Minute())
	sector[0x36] = bcd(now.Second())
	sector[0x37] = bcd(int(now.Weekday()))

	writeWord := func(wordIndex int, value int64) {
		binary.LittleEndian.PutUint16(sector[wordIndex*2:], uint16(value))
	}

	writeWord(0x20, layout.Rootblock)
	writeWord(0x22, layout.Rootblock)
	writeWord(0x23, layout.Fatstart)
	writeWord(0x24, layout.Fatsize)
	writeWord(0x25, layout.Dirstart)
	writeWord(0x26, layout.Dirsize)
	writeWord(0x27, layout.DirectoryEntryCapacity())

	return sector, nil
}

// Write synthesizes the root block and writes it at layout.Rootblock. Any
// short or failed write is fatal for the format.
func (w *RootBlockWriter) Write(dev Device, layout Layout) error {
	clock := w.Clock
	if clock == nil {
		clock = time.Now
	}

	sector, err := buildRootBlock(layout, clock().UTC())
	if err != nil {
		return err
	}
	if err := dev.WriteSectorAt(layout.Rootblock, sector); err != nil {
		return vmerrors.ErrShortWrite.WrapError(err)
	}
	return nil
}
