package serial

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Transport turns the single-attempt Handle primitives into bounded
// operations: whole-buffer sends and timeout-governed receives that
// survive signal interruption without losing progress.
type Transport struct {
	h Handle
}

// NewTransport wraps an open handle.
func NewTransport(h Handle) *Transport {
	return &Transport{h: h}
}

// Line reports the achieved line configuration.
func (t *Transport) Line() LineConfig {
	return t.h.Line()
}

// Drain blocks until queued outbound bytes are transmitted.
func (t *Transport) Drain() error {
	return t.h.Drain()
}

// Configure parses format ("<data><parity><stop>"), applies the
// configuration, and flushes the glitch bytes left over from the line
// settling on the new parameters.
func (t *Transport) Configure(baud int, format string, handshake bool) error {
	cfg, err := NewLineConfig(baud, format, handshake)
	if err != nil {
		return err
	}
	if err := t.h.Apply(cfg, NonBlocking); err != nil {
		return err
	}
	return t.h.Flush()
}

// Send writes all of buf. Interrupted writes are retried on the unsent
// remainder; any other failure aborts.
func (t *Transport) Send(buf []byte) error {
	for len(buf) > 0 {
		n, err := t.h.WriteRaw(buf)
		if err != nil {
			if interrupted(err) {
				continue
			}
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
		buf = buf[n:]
	}
	return nil
}

// SendByte writes a single byte.
func (t *Transport) SendByte(b byte) error {
	return t.Send([]byte{b})
}

// Receive reads up to n bytes under tmo and returns whatever was
// collected. The timeout bounds each driver-level read, not the whole
// call: a trickle of bytes each arriving just in time keeps the call
// going, mirroring the line discipline.
//
// A read that returns nothing ends the call: ErrTimeout under a
// bounded timeout, a short (possibly empty) result otherwise.
func (t *Transport) Receive(n int, tmo Timeout) ([]byte, error) {
	buf := make([]byte, n)
	got, err := t.ReceiveInto(buf, tmo)
	return buf[:got], err
}

// ReceiveInto is Receive into a caller-owned buffer, returning the
// number of bytes collected even on error.
func (t *Transport) ReceiveInto(buf []byte, tmo Timeout) (int, error) {
	if err := t.h.SetTimeout(tmo); err != nil {
		return 0, err
	}
	got := 0
	for got < len(buf) {
		n, err := t.h.ReadRaw(buf[got:])
		if err != nil {
			if interrupted(err) {
				continue
			}
			return got, fmt.Errorf("%w: %v", ErrRead, err)
		}
		if n == 0 {
			if tmo.errorOnElapsed() {
				return got, ErrTimeout
			}
			return got, nil
		}
		got += n
	}
	return got, nil
}

// ReceiveExact reads exactly n bytes under tmo.
func (t *Transport) ReceiveExact(n int, tmo Timeout) ([]byte, error) {
	buf, err := t.Receive(n, tmo)
	if err != nil {
		return buf, err
	}
	if len(buf) < n {
		return buf, ErrTimeout
	}
	return buf, nil
}

// ReceiveByte reads a single byte under tmo.
func (t *Transport) ReceiveByte(tmo Timeout) (byte, error) {
	buf, err := t.ReceiveExact(1, tmo)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// interrupted reports a signal-interrupted syscall, which is retried
// transparently and never surfaces above this layer.
func interrupted(err error) bool {
	return err == unix.EINTR
}
