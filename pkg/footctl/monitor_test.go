package footctl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []Event
	states []State
}

func (r *recordingSink) Publish(ev Event, snap State) error {
	r.events = append(r.events, ev)
	r.states = append(r.states, snap)
	return nil
}

func TestMonitorRun(t *testing.T) {
	recv := script(0xE0, 0x12, 0x34, 0x00, 0xF3, 0xFF)
	sink := &recordingSink{}
	mon := NewMonitor(recv)
	mon.Interval, mon.ErrPause = 0, 0
	mon.Sink = sink

	ctx, cancel := context.WithCancel(context.Background())
	renders := 0
	mon.Renderer = RenderFunc(func(State) {
		renders++
		if len(recv.data) == 0 {
			cancel()
		}
	})

	err := mon.Run(ctx)
	require.Equal(t, context.Canceled, err)
	require.True(t, renders > 0)

	require.Equal(t, []Event{
		&PedalEvent{Cmd: 0xE0, Pedal: 0, Raw: [2]byte{0x12, 0x34}},
		&ButtonEvent{Cmd: 0xF3, Button: 3},
		&ClearEvent{Cmd: 0xFF},
	}, sink.events)

	// the sink sees each snapshot as produced, and buttons end cleared
	require.Equal(t, [2]byte{0x12, 0x34}, sink.states[0].Pedals[0])
	require.True(t, sink.states[1].Buttons[3])
	require.Equal(t, [ButtonCount]bool{}, sink.states[2].Buttons)

	final := mon.State()
	require.Equal(t, [2]byte{0x12, 0x34}, final.Pedals[0])
	require.Equal(t, byte(0xFF), final.LastCmd)
}

func TestMonitorSurvivesDecodeErrors(t *testing.T) {
	recv := script(0xFC, 0xF2) // out-of-range button, then a valid press
	mon := NewMonitor(recv)
	mon.Interval, mon.ErrPause = 0, 0

	ctx, cancel := context.WithCancel(context.Background())
	var sawErr bool
	mon.Renderer = RenderFunc(func(s State) {
		if s.LastErr != nil {
			sawErr = true
		}
		if len(recv.data) == 0 {
			cancel()
		}
	})

	err := mon.Run(ctx)
	require.Equal(t, context.Canceled, err)
	require.True(t, sawErr)
	require.True(t, mon.State().Buttons[2])
}
