package footctl

import (
	"errors"
	"fmt"
	"time"

	"github.com/footworks/footmon.go/pkg/serial"
)

// Command byte classes.
const (
	cmdClassMask = 0xF0
	cmdPedal     = 0xE0 // low bit selects the pedal
	cmdButton    = 0xF0 // low nibble is the button index
	clearButtons = 0x0F // button sentinel: reset all
)

// ErrButtonRange rejects button indices the state cannot represent.
// The wire allows low nibbles 12-14 but the device has 12 buttons;
// such commands are dropped rather than written out of bounds.
var ErrButtonRange = errors.New("button index out of range")

// ByteReceiver is the receive contract the decoder consumes.
// *serial.Transport implements it; the decoder never touches the
// handle directly.
type ByteReceiver interface {
	ReceiveByte(serial.Timeout) (byte, error)
	ReceiveExact(n int, tmo serial.Timeout) ([]byte, error)
}

// Decoder turns the raw byte stream into device events, one command
// at a time.
type Decoder struct {
	// CommandTimeout bounds the wait for the next command byte.
	CommandTimeout serial.Timeout
}

// NewDecoder creates a decoder with the polling timeout the monitor
// loop uses.
func NewDecoder() *Decoder {
	return &Decoder{CommandTimeout: serial.Bounded(time.Millisecond)}
}

// Next reads and decodes one command from recv.
//
// A command timeout or an unrecognized command yields (nil, nil):
// no event yet. A decodable command with a bad payload or index
// yields (nil, err); the stream stays usable and the next call
// resumes at the following command byte.
func (d *Decoder) Next(recv ByteReceiver) (Event, error) {
	cmd, err := recv.ReceiveByte(d.CommandTimeout)
	if err != nil {
		if errors.Is(err, serial.ErrTimeout) {
			return nil, nil
		}
		return nil, err
	}
	return d.Decode(cmd, recv)
}

// Decode classifies one command byte, reading any fixed payload from
// recv.
func (d *Decoder) Decode(cmd byte, recv ByteReceiver) (Event, error) {
	switch cmd & cmdClassMask {
	case cmdPedal:
		pedal := int(cmd & 0x01)
		raw, err := recv.ReceiveExact(2, serial.Infinite)
		if err != nil {
			return nil, fmt.Errorf("pedal %d payload: %w", pedal, err)
		}
		ev := &PedalEvent{Cmd: cmd, Pedal: pedal}
		copy(ev.Raw[:], raw)
		return ev, nil
	case cmdButton:
		n := int(cmd & 0x0F)
		if n == clearButtons {
			return &ClearEvent{Cmd: cmd}, nil
		}
		if n >= ButtonCount {
			return nil, fmt.Errorf("%w: %d", ErrButtonRange, n)
		}
		return &ButtonEvent{Cmd: cmd, Button: n}, nil
	}
	// unrecognized command: silently ignored
	return nil, nil
}
