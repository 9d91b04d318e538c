//go:build linux
// +build linux

package serial

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestEncodeDecodeLine(t *testing.T) {
	testCases := []struct {
		name string
		cfg  LineConfig
	}{
		{"named 8N1", LineConfig{Baud: 9600, DataBits: 8, Parity: ParityNone, StopBits: Stop1}},
		{"named 7E2", LineConfig{Baud: 115200, DataBits: 7, Parity: ParityEven, StopBits: Stop2}},
		{"odd parity", LineConfig{Baud: 19200, DataBits: 8, Parity: ParityOdd, StopBits: Stop1}},
		{"handshake", LineConfig{Baud: 57600, DataBits: 8, Parity: ParityNone, StopBits: Stop1, Handshake: true}},
		{"custom clock", LineConfig{Baud: 10416, DataBits: 8, Parity: ParityNone, StopBits: Stop1}},
		{"5O2 custom", LineConfig{Baud: 12345, DataBits: 5, Parity: ParityOdd, StopBits: Stop2}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var tio unix.Termios
			tio.Cflag = unix.HUPCL // stale flags must not leak into the line bits
			encodeLine(tc.cfg, &tio)
			require.Equal(t, tc.cfg, decodeLine(&tio))
			require.NotZero(t, tio.Cflag&unix.CLOCAL)
			require.NotZero(t, tio.Cflag&unix.CREAD)
			require.Equal(t, uint32(unix.IGNPAR), tio.Iflag)
		})
	}
}

func TestEncodeCustomClock(t *testing.T) {
	var tio unix.Termios
	encodeLine(LineConfig{Baud: 10416, DataBits: 8, Parity: ParityNone, StopBits: Stop1}, &tio)
	require.Equal(t, uint32(unix.BOTHER), tio.Cflag&unix.CBAUD)
	require.Equal(t, uint32(10416), tio.Ispeed)
	require.Equal(t, uint32(10416), tio.Ospeed)

	encodeLine(LineConfig{Baud: 9600, DataBits: 8, Parity: ParityNone, StopBits: Stop1}, &tio)
	require.Equal(t, uint32(unix.B9600), tio.Cflag&unix.CBAUD)
	require.Zero(t, tio.Ospeed)
}

func TestCloseIdempotent(t *testing.T) {
	fds := make([]int, 2)
	require.NoError(t, unix.Pipe(fds))
	defer unix.Close(fds[1])

	p := &port{fd: fds[0], path: "pipe", open: true}
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	_, err := p.ReadRaw(make([]byte, 1))
	require.ErrorIs(t, err, ErrClosed)
	_, err = p.WriteRaw([]byte{0})
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, p.Flush(), ErrClosed)
	require.ErrorIs(t, p.SetTimeout(NonBlocking), ErrClosed)
}
