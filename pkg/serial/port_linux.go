//go:build linux
// +build linux

package serial

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// baudCodes maps named rates to their symbolic driver codes.
var baudCodes = map[int]uint32{
	300:    unix.B300,
	2400:   unix.B2400,
	4800:   unix.B4800,
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
}

type port struct {
	fd       int
	path     string
	open     bool
	settings unix.Termios
}

// Open acquires the serial device at path. O_NONBLOCK only guards the
// open itself against a stalled carrier line; the descriptor is
// switched back to blocking reads so VMIN/VTIME govern timeouts.
func Open(path string) (Handle, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, path, err)
	}
	p := &port{fd: fd, path: path, open: true}
	if err := unix.SetNonblock(fd, false); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, path, err)
	}
	// The device's current settings become the starting snapshot:
	// Apply is a read-modify-write against these flags, not a full
	// overwrite.
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS2)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, path, err)
	}
	p.settings = *t
	return p, nil
}

// ReadRaw implements Handle. The raw OS error is returned unwrapped so
// callers can distinguish an interrupted call.
func (p *port) ReadRaw(b []byte) (int, error) {
	if !p.open {
		return 0, ErrClosed
	}
	n, err := unix.Read(p.fd, b)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// WriteRaw implements Handle.
func (p *port) WriteRaw(b []byte) (int, error) {
	if !p.open {
		return 0, ErrClosed
	}
	n, err := unix.Write(p.fd, b)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// SetTimeout implements Handle.
func (p *port) SetTimeout(t Timeout) error {
	if !p.open {
		return ErrClosed
	}
	p.settings.Cc[unix.VMIN], p.settings.Cc[unix.VTIME] = t.DriverUnits()
	if err := unix.IoctlSetTermios(p.fd, unix.TCSETS2, &p.settings); err != nil {
		return fmt.Errorf("%w: timeout: %v", ErrConfig, err)
	}
	return nil
}

// Apply implements Handle.
func (p *port) Apply(cfg LineConfig, tmo Timeout) error {
	if !p.open {
		return ErrClosed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	next := p.settings
	encodeLine(cfg, &next)
	next.Cc[unix.VMIN], next.Cc[unix.VTIME] = tmo.DriverUnits()
	if err := unix.IoctlSetTermios(p.fd, unix.TCSETS2, &next); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	// Read the settings back so the snapshot reports the bit rate the
	// driver actually achieved for a custom clock.
	t, err := unix.IoctlGetTermios(p.fd, unix.TCGETS2)
	if err != nil {
		return fmt.Errorf("%w: readback: %v", ErrConfig, err)
	}
	p.settings = *t
	return nil
}

// Flush implements Handle.
func (p *port) Flush() error {
	if !p.open {
		return ErrClosed
	}
	return unix.IoctlSetInt(p.fd, unix.TCFLSH, unix.TCIOFLUSH)
}

// Drain implements Handle.
func (p *port) Drain() error {
	if !p.open {
		return ErrClosed
	}
	// tcdrain(3) is TCSBRK with a non-zero argument.
	return unix.IoctlSetInt(p.fd, unix.TCSBRK, 1)
}

// Close implements Handle. Closing twice is a no-op.
func (p *port) Close() error {
	if !p.open {
		return nil
	}
	p.open = false
	return unix.Close(p.fd)
}

// Line implements Handle.
func (p *port) Line() LineConfig {
	return decodeLine(&p.settings)
}

// encodeLine folds cfg into the driver flags of t. Pure with respect
// to the OS; the ioctl happens in Apply.
func encodeLine(cfg LineConfig, t *unix.Termios) {
	cflag := t.Cflag
	cflag |= unix.CLOCAL | unix.CREAD
	cflag &^= unix.CSIZE | unix.PARENB | unix.PARODD | unix.CSTOPB | unix.CRTSCTS | unix.CBAUD

	switch cfg.DataBits {
	case 5:
		cflag |= unix.CS5
	case 6:
		cflag |= unix.CS6
	case 7:
		cflag |= unix.CS7
	case 8:
		cflag |= unix.CS8
	}

	switch cfg.Parity {
	case ParityOdd:
		cflag |= unix.PARENB | unix.PARODD
	case ParityEven:
		cflag |= unix.PARENB
	}

	if cfg.StopBits == Stop2 {
		cflag |= unix.CSTOPB
	}

	var speed uint32
	if code, ok := baudCodes[cfg.Baud]; ok {
		cflag |= code
	} else {
		cflag |= unix.BOTHER
		speed = uint32(cfg.Baud)
	}

	if cfg.Handshake {
		cflag |= unix.CRTSCTS
	}

	t.Cflag = cflag
	t.Iflag = unix.IGNPAR
	t.Ispeed = speed
	t.Ospeed = speed
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 0
}

// decodeLine recovers the LineConfig from driver flags.
func decodeLine(t *unix.Termios) LineConfig {
	var c LineConfig
	switch t.Cflag & unix.CSIZE {
	case unix.CS5:
		c.DataBits = 5
	case unix.CS6:
		c.DataBits = 6
	case unix.CS7:
		c.DataBits = 7
	case unix.CS8:
		c.DataBits = 8
	}
	switch {
	case t.Cflag&unix.PARENB == 0:
		c.Parity = ParityNone
	case t.Cflag&unix.PARODD != 0:
		c.Parity = ParityOdd
	default:
		c.Parity = ParityEven
	}
	if t.Cflag&unix.CSTOPB != 0 {
		c.StopBits = Stop2
	} else {
		c.StopBits = Stop1
	}
	c.Handshake = t.Cflag&unix.CRTSCTS != 0
	if t.Cflag&unix.CBAUD == unix.BOTHER {
		c.Baud = int(t.Ospeed)
	} else {
		for rate, code := range baudCodes {
			if t.Cflag&unix.CBAUD == code {
				c.Baud = rate
				break
			}
		}
	}
	return c
}
