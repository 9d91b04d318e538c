package footctl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyPedalReading(t *testing.T) {
	var s State
	s.Buttons[5] = true
	require.NoError(t, s.Apply(&PedalEvent{Cmd: 0xE0, Pedal: 0, Raw: [2]byte{0x12, 0x34}}))
	require.Equal(t, [2]byte{0x12, 0x34}, s.Pedals[0])
	// pedal 1 and buttons are untouched
	require.Equal(t, [2]byte{}, s.Pedals[1])
	require.True(t, s.Buttons[5])
	require.Equal(t, byte(0xE0), s.LastCmd)

	require.NoError(t, s.Apply(&PedalEvent{Cmd: 0xE0, Pedal: 0, Raw: [2]byte{0x56, 0x78}}))
	require.Equal(t, [2]byte{0x56, 0x78}, s.Pedals[0])
}

func TestApplyButtonsSetOnly(t *testing.T) {
	var s State
	require.NoError(t, s.Apply(&ButtonEvent{Cmd: 0xF3, Button: 3}))
	require.True(t, s.Buttons[3])
	for i, pressed := range s.Buttons {
		require.Equal(t, i == 3, pressed, "button %d", i)
	}

	// a second press of the same button holds, applying another does
	// not release the first
	require.NoError(t, s.Apply(&ButtonEvent{Cmd: 0xF7, Button: 7}))
	require.True(t, s.Buttons[3])
	require.True(t, s.Buttons[7])

	require.NoError(t, s.Apply(&ClearEvent{Cmd: 0xFF}))
	require.Equal(t, [ButtonCount]bool{}, s.Buttons)
	require.Equal(t, byte(0xFF), s.LastCmd)
}

func TestApplyBoundsChecked(t *testing.T) {
	var s State
	require.ErrorIs(t, s.Apply(&ButtonEvent{Button: 12}), ErrButtonRange)
	require.Error(t, s.Apply(&ButtonEvent{Button: -1}))
	require.Error(t, s.Apply(&PedalEvent{Pedal: 2}))
	require.Equal(t, [ButtonCount]bool{}, s.Buttons)
}

func TestApplyNilEvent(t *testing.T) {
	var s State
	require.NoError(t, s.Apply(nil))
	require.Equal(t, State{}, s)
}

func TestSnapshotIsACopy(t *testing.T) {
	var s State
	s.Apply(&ButtonEvent{Cmd: 0xF0, Button: 0})
	snap := s.Snapshot()
	s.Apply(&ClearEvent{Cmd: 0xFF})
	require.True(t, snap.Buttons[0])
	require.False(t, s.Buttons[0])
}
