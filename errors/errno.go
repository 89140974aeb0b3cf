// Package errors' sentinel values correspond to the error kinds laid out in
// the formatter's error handling design: Usage, Environment, Geometry, I/O,
// Data, and Invariant. Each is a plain string type so zero-value comparisons
// and errors.Is both work without any registry.
package errors

import (
	"fmt"
)

type VmufatError string

// Usage: bad or missing CLI arguments.
const ErrUsage = VmufatError("usage error")

// Environment: target not a block device, already mounted, stat/open failure,
// or allocation failure.
const ErrNotBlockDevice = VmufatError("not a block special device")
const ErrAlreadyMounted = VmufatError("device is already mounted")
const ErrStatFailed = VmufatError("stat failed")
const ErrOpenFailed = VmufatError("open failed")
const ErrAllocationFailed = VmufatError("memory allocation failed")

// Geometry: device too small, or requested block count out of range.
const ErrDeviceTooSmall = VmufatError("device too small for a VMUFAT volume")
const ErrRequestedSizeTooSmall = VmufatError("requested block count below minimum of 4")
const ErrRequestedSizeExceedsDevice = VmufatError("requested size exceeds device")

// I/O: any short or failed read/write during format.
const ErrShortRead = VmufatError("short read")
const ErrShortWrite = VmufatError("short write")

// Data: malformed bad-block list file.
const ErrMalformedBadBlockList = VmufatError("malformed bad-block list")

// Invariant: bad block lies in the reserved system region.
const ErrBadBlockInSystemArea = VmufatError("bad block lies in reserved system area")

func (e VmufatError) Error() string {
	return string(e)
}

func (e VmufatError) WithMessage(message string) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", e.Error(), message),
		originalError: e,
	}
}

func (e VmufatError) WrapError(err error) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: err,
	}
}
