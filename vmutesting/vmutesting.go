// Package vmutesting provides memory-backed devices for exercising the
// formatter without a real block device.
package vmutesting

import (
	"github.com/xaionaro-go/bytesextra"

	"github.com/mcmenaminadrian/mkfs.vmufat/vmufat"
)

// NewMemoryDevice returns a vmufat.Device backed by a zero-filled,
// in-memory image of the given size in sectors. The size must be exactly
// what the caller wants SectorCount to report; Format never resizes the
// backing store.
func NewMemoryDevice(totalSectors int64) (*vmufat.StreamDevice, []byte) {
	storage := make([]byte, totalSectors*vmufat.SectorSize)
	stream := bytesextra.NewReadWriteSeeker(storage)

	dev, err := vmufat.NewStreamDevice(stream)
	if err != nil {
		// storage is freshly allocated and always seekable; this can only
		// happen if bytesextra's seek implementation changes contract.
		panic(err)
	}
	return dev, storage
}
