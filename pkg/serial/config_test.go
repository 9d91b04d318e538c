package serial

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFormatTriples(t *testing.T) {
	dataBits := []byte{'5', '6', '7', '8'}
	parities := []byte{'N', 'O', 'E'}
	stopBits := []byte{'1', '2'}
	for _, d := range dataBits {
		for _, p := range parities {
			for _, s := range stopBits {
				format := string([]byte{d, p, s})
				t.Run(format, func(t *testing.T) {
					cfg, err := NewLineConfig(9600, format, false)
					require.NoError(t, err)
					require.Equal(t, d-'0', cfg.DataBits)
					require.Equal(t, Parity(p), cfg.Parity)
					require.Equal(t, StopBits(s-'0'), cfg.StopBits)
					require.Equal(t, format, cfg.Format())
				})
			}
		}
	}
}

func TestParseFormatRejected(t *testing.T) {
	for _, format := range []string{"", "8N", "8N11", "4N1", "9N1", "8X1", "8N3", "N81"} {
		t.Run(fmt.Sprintf("%q", format), func(t *testing.T) {
			_, err := NewLineConfig(9600, format, false)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestValidateRejectsBadRate(t *testing.T) {
	cfg, err := NewLineConfig(9600, "8N1", false)
	require.NoError(t, err)
	cfg.Baud = 0
	require.ErrorIs(t, cfg.Validate(), ErrConfig)
	cfg.Baud = -300
	require.ErrorIs(t, cfg.Validate(), ErrConfig)
}

func TestNamedRates(t *testing.T) {
	for _, rate := range namedRates {
		require.True(t, IsNamedRate(rate), "rate %d", rate)
	}
	// the device operating point is a custom clock
	require.False(t, IsNamedRate(10416))
	require.False(t, IsNamedRate(0))
}
