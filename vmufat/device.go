// Package vmufat implements the layout computation and on-disk writer for
// VMUFAT, a small FAT-style filesystem originally designed for a handheld
// memory-card device. It derives a volume's geometry from its size, writes
// the root/superblock and File Allocation Table, and marks bad sectors.
package vmufat

import (
	"io"
	"os"
	"sync"

	vmerrors "github.com/mcmenaminadrian/mkfs.vmufat/errors"
)

// SectorSize is the fixed size of every addressable unit on a VMUFAT
// volume. SectorShift is its base-2 logarithm, used wherever the original
// implementation divides or multiplies by shifting instead.
const SectorSize = 512
const SectorShift = 9

// Sector is one on-disk block, always exactly SectorSize bytes.
type Sector [SectorSize]byte

// Device is random-access, positional access to a fixed-size sequence of
// 512-byte sectors, addressed by absolute sector index. There is no shared
// seek cursor: every call carries its own offset, so concurrent callers
// (were any permitted by this package; the pipeline itself is
// single-threaded) never interfere with one another.
type Device interface {
	// ReadSectorAt reads the sector at the given absolute index.
	ReadSectorAt(index int64) (Sector, error)
	// WriteSectorAt writes the sector at the given absolute index.
	WriteSectorAt(index int64, data Sector) error
	// SectorCount returns the total number of whole sectors backing this
	// device.
	SectorCount() (int64, error)
	Close() error
}

// FileDevice wraps an *os.File representing a block special device or a
// plain image file. Reads and writes use ReadAt/WriteAt directly, so two
// calls against the same *FileDevice never race over a file position.
type FileDevice struct {
	file *os.File
}

// NewFileDevice wraps an already-opened file as a Device.
func NewFileDevice(file *os.File) *FileDevice {
	return &FileDevice{file: file}
}

func (d *FileDevice) ReadSectorAt(index int64) (Sector, error) {
	var sector Sector
	n, err := d.file.ReadAt(sector[:], index*SectorSize)
	if err != nil && err != io.EOF {
		return sector, vmerrors.ErrShortRead.WrapError(err)
	}
	if n != SectorSize {
		return sector, vmerrors.ErrShortRead.WithMessage("read fewer than 512 bytes")
	}
	return sector, nil
}

func (d *FileDevice) WriteSectorAt(index int64, data Sector) error {
	n, err := d.file.WriteAt(data[:], index*SectorSize)
	if err != nil {
		return vmerrors.ErrShortWrite.WrapError(err)
	}
	if n != SectorSize {
		return vmerrors.ErrShortWrite.WithMessage("wrote fewer than 512 bytes")
	}
	return nil
}

func (d *FileDevice) SectorCount() (int64, error) {
	info, err := d.file.Stat()
	if err != nil {
		return 0, vmerrors.ErrStatFailed.WrapError(err)
	}
	return info.Size() / SectorSize, nil
}

func (d *FileDevice) Close() error {
	return d.file.Close()
}

// StreamDevice adapts any io.ReadWriteSeeker (most commonly a
// bytesextra.NewReadWriteSeeker-backed byte slice in tests) into a Device.
// Because the underlying stream only exposes a seek cursor, every access is
// serialized under a mutex: seek, then read or write, matching the
// runCb pattern a block-oriented cache uses to wrap an arbitrary stream.
type StreamDevice struct {
	mu     sync.Mutex
	stream io.ReadWriteSeeker
	size   int64
}

// NewStreamDevice wraps stream, which must already be sized to an exact
// multiple of SectorSize.
func NewStreamDevice(stream io.ReadWriteSeeker) (*StreamDevice, error) {
	size, err := stream.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, vmerrors.ErrStatFailed.WrapError(err)
	}
	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return nil, vmerrors.ErrStatFailed.WrapError(err)
	}
	return &StreamDevice{stream: stream, size: size}, nil
}

func (d *StreamDevice) ReadSectorAt(index int64) (Sector, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var sector Sector
	if _, err := d.stream.Seek(index*SectorSize, io.SeekStart); err != nil {
		return sector, vmerrors.ErrShortRead.WrapError(err)
	}
	n, err := io.ReadFull(d.stream, sector[:])
	if err != nil {
		return sector, vmerrors.ErrShortRead.WrapError(err)
	}
	if n != SectorSize {
		return sector, vmerrors.ErrShortRead.WithMessage("read fewer than 512 bytes")
	}
	return sector, nil
}

func (d *StreamDevice) WriteSectorAt(index int64, data Sector) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.stream.Seek(index*SectorSize, io.SeekStart); err != nil {
		return vmerrors.ErrShortWrite.WrapError(err)
	}
	n, err := d.stream.Write(data[:])
	if err != nil {
		return vmerrors.ErrShortWrite.WrapError(err)
	}
	if n != SectorSize {
		return vmerrors.ErrShortWrite.WithMessage("wrote fewer than 512 bytes")
	}
	return nil
}

func (d *StreamDevice) SectorCount() (int64, error) {
	return d.size / SectorSize, nil
}

func (d *StreamDevice) Close() error {
	if closer, ok := d.stream.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
