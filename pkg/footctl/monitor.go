package footctl

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// Renderer displays a device state snapshot.
type Renderer interface {
	Render(State)
}

// RenderFunc is the func form of Renderer.
type RenderFunc func(State)

// Render implements Renderer.
func (f RenderFunc) Render(s State) { f(s) }

// EventSink receives decoded events with the state they produced.
type EventSink interface {
	Publish(Event, State) error
}

// Monitor drives receive, decode, apply, render forever. It owns the
// decoder and the device state; everything runs on the goroutine that
// calls Run.
type Monitor struct {
	Recv     ByteReceiver
	Decoder  *Decoder
	Renderer Renderer
	Sink     EventSink
	Interval time.Duration // yield between iterations
	ErrPause time.Duration // pause after a non-fatal error

	state State
}

// NewMonitor creates a monitor over recv with default pacing.
func NewMonitor(recv ByteReceiver) *Monitor {
	return &Monitor{
		Recv:     recv,
		Decoder:  NewDecoder(),
		Interval: 10 * time.Millisecond,
		ErrPause: time.Second,
	}
}

// Run implements framework.Runnable. Steady-state errors are logged
// and survived: the display keeps showing the last known state.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ev, err := m.Decoder.Next(m.Recv)
		if err != nil {
			m.state.LastErr = err
			glog.Errorf("decode: %v", err)
			m.render()
			if !m.pause(ctx, m.ErrPause) {
				return ctx.Err()
			}
			continue
		}
		if ev != nil {
			m.state.LastErr = nil
			if err := m.state.Apply(ev); err != nil {
				glog.Errorf("apply: %v", err)
			} else if m.Sink != nil {
				if err := m.Sink.Publish(ev, m.state.Snapshot()); err != nil {
					glog.Errorf("publish: %v", err)
				}
			}
		}
		m.render()
		if !m.pause(ctx, m.Interval) {
			return ctx.Err()
		}
	}
}

// State returns a snapshot of the current device state. Valid only
// from the Run goroutine or after Run returned.
func (m *Monitor) State() State {
	return m.state.Snapshot()
}

func (m *Monitor) render() {
	if m.Renderer != nil {
		m.Renderer.Render(m.state.Snapshot())
	}
}

func (m *Monitor) pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
