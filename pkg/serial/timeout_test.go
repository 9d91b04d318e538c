package serial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBoundedDeciseconds(t *testing.T) {
	testCases := []struct {
		ms     int
		expect uint8
	}{
		{1, 1},
		{99, 1},
		{100, 1},
		{101, 2},
		{150, 2},
		{1000, 10},
		{25500, 255},
		{99999, 255}, // capped at the 8-bit driver limit
	}
	for _, tc := range testCases {
		tmo := Bounded(time.Duration(tc.ms) * time.Millisecond)
		require.Equalf(t, tc.expect, tmo.Deciseconds(), "%d ms", tc.ms)
	}
	// rounding is always up: ceil(ms/100)
	for ms := 1; ms <= 2000; ms++ {
		expect := uint8((ms + 99) / 100)
		require.Equalf(t, expect, Bounded(time.Duration(ms)*time.Millisecond).Deciseconds(), "%d ms", ms)
	}
}

func TestDriverUnits(t *testing.T) {
	vmin, vtime := Infinite.DriverUnits()
	require.Equal(t, uint8(1), vmin)
	require.Equal(t, uint8(0), vtime)

	vmin, vtime = NonBlocking.DriverUnits()
	require.Equal(t, uint8(0), vmin)
	require.Equal(t, uint8(0), vtime)

	vmin, vtime = Bounded(250 * time.Millisecond).DriverUnits()
	require.Equal(t, uint8(0), vmin)
	require.Equal(t, uint8(3), vtime)
}

func TestBoundedZeroIsNonBlocking(t *testing.T) {
	require.Equal(t, NonBlocking, Bounded(0))
	require.Equal(t, NonBlocking, Bounded(-time.Second))
	require.False(t, Bounded(0).errorOnElapsed())
	require.True(t, Bounded(time.Millisecond).errorOnElapsed())
	require.False(t, Infinite.errorOnElapsed())
}
