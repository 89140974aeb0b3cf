package vmufat

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// newTestStreamDevice returns a zero-filled, memory-backed Device of the
// given size in sectors, for exercising writers without a real block
// device.
func newTestStreamDevice(t *testing.T, totalSectors int64) (*StreamDevice, []byte) {
	t.Helper()

	storage := make([]byte, totalSectors*SectorSize)
	stream := bytesextra.NewReadWriteSeeker(storage)

	dev, err := NewStreamDevice(stream)
	require.NoError(t, err)
	return dev, storage
}
