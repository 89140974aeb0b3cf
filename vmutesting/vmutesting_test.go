package vmutesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryDeviceReportsRequestedSize(t *testing.T) {
	dev, storage := NewMemoryDevice(64)
	defer dev.Close()

	count, err := dev.SectorCount()
	require.NoError(t, err)
	assert.EqualValues(t, 64, count)
	assert.Len(t, storage, 64*512)
}
