package serial

import "errors"

// Error kinds. Wrapped errors carry the failing detail; match with
// errors.Is.
var (
	// ErrOpen indicates the device could not be opened.
	ErrOpen = errors.New("open failed")
	// ErrConfig indicates a line configuration was rejected.
	ErrConfig = errors.New("configuration rejected")
	// ErrInvalidFormat indicates a malformed format string.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrRead indicates a driver-level read failure.
	ErrRead = errors.New("read failed")
	// ErrWrite indicates a driver-level write failure.
	ErrWrite = errors.New("write failed")
	// ErrTimeout indicates no data arrived within a bounded timeout.
	ErrTimeout = errors.New("timeout")
	// ErrClosed indicates an operation on a closed handle.
	ErrClosed = errors.New("port closed")
)
