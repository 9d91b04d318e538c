package serial

import "fmt"

// Parity represents the parity mode.
type Parity byte

// Supported parity modes.
const (
	ParityNone Parity = 'N'
	ParityOdd  Parity = 'O'
	ParityEven Parity = 'E'
)

// StopBits represents the number of stop bits.
type StopBits byte

// Supported stop bit counts.
const (
	Stop1 StopBits = 1
	Stop2 StopBits = 2
)

// LineConfig is the value form of a serial line configuration.
// The zero value is invalid; build one with NewLineConfig.
type LineConfig struct {
	Baud      int
	DataBits  byte
	Parity    Parity
	StopBits  StopBits
	Handshake bool
}

// namedRates are the bit rates with a symbolic driver code. Any other
// positive rate is configured as a custom clock.
var namedRates = []int{300, 2400, 4800, 9600, 19200, 38400, 57600, 115200}

// IsNamedRate reports whether baud has a symbolic driver code.
func IsNamedRate(baud int) bool {
	for _, r := range namedRates {
		if r == baud {
			return true
		}
	}
	return false
}

// NewLineConfig builds a LineConfig from a bit rate and a 3-character
// format string "<data><parity><stop>", e.g. "8N1".
func NewLineConfig(baud int, format string, handshake bool) (LineConfig, error) {
	c := LineConfig{Baud: baud, Handshake: handshake}
	if len(format) != 3 {
		return c, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
	switch format[0] {
	case '5', '6', '7', '8':
		c.DataBits = format[0] - '0'
	default:
		return c, fmt.Errorf("%w: data bits %q", ErrInvalidFormat, format[0])
	}
	switch format[1] {
	case 'N', 'O', 'E':
		c.Parity = Parity(format[1])
	default:
		return c, fmt.Errorf("%w: parity %q", ErrInvalidFormat, format[1])
	}
	switch format[2] {
	case '1':
		c.StopBits = Stop1
	case '2':
		c.StopBits = Stop2
	default:
		return c, fmt.Errorf("%w: stop bits %q", ErrInvalidFormat, format[2])
	}
	return c, c.Validate()
}

// Validate checks every field resolves to a known driver code. It is
// called before any OS-level state is mutated.
func (c LineConfig) Validate() error {
	if c.Baud <= 0 {
		return fmt.Errorf("%w: bit rate %d", ErrConfig, c.Baud)
	}
	if c.DataBits < 5 || c.DataBits > 8 {
		return fmt.Errorf("%w: data bits %d", ErrConfig, c.DataBits)
	}
	switch c.Parity {
	case ParityNone, ParityOdd, ParityEven:
	default:
		return fmt.Errorf("%w: parity %q", ErrConfig, byte(c.Parity))
	}
	switch c.StopBits {
	case Stop1, Stop2:
	default:
		return fmt.Errorf("%w: stop bits %d", ErrConfig, c.StopBits)
	}
	return nil
}

// Format renders the configuration back into "<data><parity><stop>".
func (c LineConfig) Format() string {
	return fmt.Sprintf("%d%c%d", c.DataBits, byte(c.Parity), c.StopBits)
}
