package serial

// Handle owns an open serial device and its line configuration.
//
// ReadRaw and WriteRaw are single, non-retrying attempts: a partial
// write is a valid result, a zero-byte read means no data arrived
// within the current timeout (a serial line has no end-of-stream), and
// an interrupted call surfaces the raw OS error. Transport layers the
// retry and framing policy on top.
type Handle interface {
	// ReadRaw makes one read attempt into p.
	ReadRaw(p []byte) (int, error)
	// WriteRaw makes one write attempt of p.
	WriteRaw(p []byte) (int, error)
	// SetTimeout rewrites only the driver read timeout.
	SetTimeout(Timeout) error
	// Apply validates and writes a full line configuration, then reads
	// the achieved configuration back from the driver.
	Apply(LineConfig, Timeout) error
	// Flush discards unread and unwritten bytes in both directions.
	Flush() error
	// Drain blocks until queued outbound bytes are on the wire.
	Drain() error
	// Close releases the handle. Idempotent.
	Close() error
	// Line returns the achieved configuration snapshot. After Apply
	// with a custom clock rate, Baud reports what the driver actually
	// set, which may differ from the request.
	Line() LineConfig
}
