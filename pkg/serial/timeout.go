package serial

import "time"

type timeoutMode int

const (
	timeoutInfinite timeoutMode = iota
	timeoutNone
	timeoutBounded
)

// Timeout bounds a single driver-level read.
//
// The driver counts in deciseconds, so bounded timeouts are rounded up
// to the next whole decisecond. Sub-decisecond precision is lost.
type Timeout struct {
	mode timeoutMode
	ms   int64
}

var (
	// Infinite blocks until at least one byte or an error.
	Infinite = Timeout{mode: timeoutInfinite}
	// NonBlocking returns immediately with whatever is available.
	NonBlocking = Timeout{mode: timeoutNone}
)

// Bounded limits a single read to d. A non-positive d degenerates to
// NonBlocking.
func Bounded(d time.Duration) Timeout {
	ms := int64(d / time.Millisecond)
	if ms <= 0 {
		return Timeout{mode: timeoutNone}
	}
	return Timeout{mode: timeoutBounded, ms: ms}
}

// Deciseconds converts the bound to driver units, rounding up and
// capping at the 8-bit driver limit.
func (t Timeout) Deciseconds() uint8 {
	if t.mode != timeoutBounded {
		return 0
	}
	ds := (t.ms + 99) / 100
	if ds > 255 {
		ds = 255
	}
	return uint8(ds)
}

// DriverUnits returns the VMIN/VTIME pair encoding this timeout.
func (t Timeout) DriverUnits() (vmin, vtime uint8) {
	if t.mode == timeoutInfinite {
		return 1, 0
	}
	return 0, t.Deciseconds()
}

// errorOnElapsed reports whether a zero-byte read under this timeout
// is a Timeout error. Infinite and NonBlocking reads treat "nothing
// arrived" as a valid outcome.
func (t Timeout) errorOnElapsed() bool {
	return t.mode == timeoutBounded
}
