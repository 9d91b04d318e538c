// Package footctl decodes the foot-controller wire protocol and
// maintains the live device state.
//
// The device speaks a command-first framing: the high nibble of each
// command byte selects the event class, the low nibble (or low bit)
// carries the pedal select or button index. Pedal commands are
// followed by a fixed 2-byte raw reading; button commands carry no
// payload. There is no length prefix and no checksum.
package footctl

// Event is a decoded device event.
type Event interface {
	// Command returns the raw command byte that produced the event.
	Command() byte
}

// PedalEvent carries a raw expression pedal reading.
type PedalEvent struct {
	Cmd   byte
	Pedal int
	Raw   [2]byte
}

// Command implements Event.
func (e *PedalEvent) Command() byte { return e.Cmd }

// ButtonEvent reports a button press. The protocol has no per-button
// release; buttons are set-only until a ClearEvent.
type ButtonEvent struct {
	Cmd    byte
	Button int
}

// Command implements Event.
func (e *ButtonEvent) Command() byte { return e.Cmd }

// ClearEvent resets all buttons.
type ClearEvent struct {
	Cmd byte
}

// Command implements Event.
func (e *ClearEvent) Command() byte { return e.Cmd }
