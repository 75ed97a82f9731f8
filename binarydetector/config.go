// Package binarydetector implements the entry/exit state machine that falls back to
// capturing raw bytes when the wire stops looking like NMEA-0183, per §4.8. It is the
// idiomatic-Go analog of the teacher library's DLE/STX/ETX framing state machine in
// actisense/reader.go, adapted from a fixed binary protocol to a density heuristic.
package binarydetector

// Config configures a Detector. The zero value is valid; ApplyDefaults fills in anything
// left unset.
type Config struct {
	// MaxNonNMEAPerLine is the non-NMEA byte count above which a line triggers entry into
	// blob-capture mode. Default 10.
	MaxNonNMEAPerLine int
	// ResyncMinBytes is how many bytes after a `$PNOR` match must themselves look like
	// NMEA (at most ResyncMaxNonNMEA non-NMEA bytes among them) to confirm resync.
	// Default 45.
	ResyncMinBytes int
	// ResyncMaxNonNMEA is the non-NMEA byte allowance within the ResyncMinBytes window.
	// Default 2.
	ResyncMaxNonNMEA int
	// BlobMaxBytes caps a single blob file; reaching it rotates to a new blob without
	// leaving binary mode. Default 10MiB.
	BlobMaxBytes int64

	LogFunc func(format string, a ...any)
}

const (
	defaultMaxNonNMEAPerLine = 10
	defaultResyncMinBytes    = 45
	defaultResyncMaxNonNMEA  = 2
	defaultBlobMaxBytes      = 10 * 1024 * 1024
)

// ApplyDefaults fills zero-valued fields with their defaults, in place.
func (c *Config) ApplyDefaults() {
	if c.MaxNonNMEAPerLine <= 0 {
		c.MaxNonNMEAPerLine = defaultMaxNonNMEAPerLine
	}
	if c.ResyncMinBytes <= 0 {
		c.ResyncMinBytes = defaultResyncMinBytes
	}
	if c.ResyncMaxNonNMEA <= 0 {
		c.ResyncMaxNonNMEA = defaultResyncMaxNonNMEA
	}
	if c.BlobMaxBytes <= 0 {
		c.BlobMaxBytes = defaultBlobMaxBytes
	}
}
