package footctl

import "fmt"

// Device geometry.
const (
	PedalCount  = 2
	ButtonCount = 12
)

// State is the live device state. It is owned by the monitor loop and
// must not be shared across goroutines; collaborators get value copies
// via Snapshot.
type State struct {
	Pedals  [PedalCount][2]byte
	Buttons [ButtonCount]bool
	LastCmd byte
	LastErr error
}

// Apply mutates the state with a decoded event. Indices are bounds
// checked even though the decoder already rejects out-of-range wire
// values.
func (s *State) Apply(ev Event) error {
	if ev == nil {
		return nil
	}
	s.LastCmd = ev.Command()
	switch e := ev.(type) {
	case *PedalEvent:
		if e.Pedal < 0 || e.Pedal >= PedalCount {
			return fmt.Errorf("pedal index out of range: %d", e.Pedal)
		}
		s.Pedals[e.Pedal] = e.Raw
	case *ButtonEvent:
		if e.Button < 0 || e.Button >= ButtonCount {
			return fmt.Errorf("%w: %d", ErrButtonRange, e.Button)
		}
		s.Buttons[e.Button] = true
	case *ClearEvent:
		s.Buttons = [ButtonCount]bool{}
	}
	return nil
}

// Snapshot returns a read-only copy for the render and publish
// collaborators.
func (s *State) Snapshot() State {
	return *s
}
