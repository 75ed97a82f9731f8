package binarydetector

import (
	"time"

	"github.com/aldas/adcp-ingest"
)

// Mode is the detector's current framing mode.
type Mode string

const (
	ModeASCII  Mode = "ascii"
	ModeBinary Mode = "binary"
)

// ExitResult is returned by FeedBinary when the detector has resynchronized: Blob is the
// finalized byte buffer to persist, ResumeFrom is the tail of the fed bytes starting at the
// located `$`, to be handed back to normal line framing.
type ExitResult struct {
	Blob       nmea.BinaryBlob
	ResumeFrom []byte
}

// Detector tracks ASCII/binary mode across successive lines read off the wire. It holds no
// I/O of its own: the consumer feeds it lines/chunks and reacts to what it returns.
type Detector struct {
	cfg  Config
	mode Mode
	blob *nmea.BinaryBlob
}

// New constructs a Detector starting in ASCII mode.
func New(cfg Config) *Detector {
	cfg.ApplyDefaults()
	return &Detector{cfg: cfg, mode: ModeASCII}
}

// Mode reports the detector's current mode.
func (d *Detector) Mode() Mode {
	return d.mode
}

func isNMEAByte(b byte) bool {
	return (b >= 0x20 && b <= 0x7E) || b == 0x0D || b == 0x0A
}

func countNonNMEA(b []byte) int {
	n := 0
	for _, c := range b {
		if !isNMEAByte(c) {
			n++
		}
	}
	return n
}

// CheckLine is called for every line read while in ASCII mode. It returns true if the
// line's non-NMEA byte density triggered entry into binary mode, in which case the line's
// bytes have already been appended to the newly opened blob.
func (d *Detector) CheckLine(line []byte, now time.Time) bool {
	if d.mode == ModeBinary {
		return false
	}
	if countNonNMEA(line) <= d.cfg.MaxNonNMEAPerLine {
		return false
	}
	d.mode = ModeBinary
	d.blob = &nmea.BinaryBlob{OpenedAt: now}
	// The triggering line is at most one read's worth of bytes, far short of
	// BlobMaxBytes, so entry can never itself require a rotation.
	d.blob.Bytes = append(d.blob.Bytes, line...)
	return true
}

// FeedBinary appends chunk to the open blob while in binary mode and scans for the resync
// marker: `$PNOR` followed by at least ResyncMinBytes bytes containing no more than
// ResyncMaxNonNMEA non-NMEA bytes. rotated is non-nil if the blob cap was hit and a new
// blob was opened transparently; exit is non-nil if resync was found, in which case the
// detector has already returned to ASCII mode.
func (d *Detector) FeedBinary(chunk []byte, now time.Time) (exit *ExitResult, rotated *nmea.BinaryBlob) {
	if d.mode != ModeBinary {
		return nil, nil
	}

	// Rescan the tail of the bytes already held: a "$PNOR" match that starts just before
	// this chunk, or a candidate whose window was still incomplete last time, begins there.
	scanFrom := len(d.blob.Bytes) - len("$PNOR") - d.cfg.ResyncMinBytes + 1
	if scanFrom < 0 {
		scanFrom = 0
	}

	for len(chunk) > 0 {
		room := d.cfg.BlobMaxBytes - int64(len(d.blob.Bytes))
		if room <= 0 {
			closed := *d.blob
			closed.ClosedAt = now
			rotated = &closed
			d.blob = &nmea.BinaryBlob{OpenedAt: now}
			scanFrom = 0
			room = d.cfg.BlobMaxBytes
		}
		take := int64(len(chunk))
		if take > room {
			take = room
		}
		d.blob.Bytes = append(d.blob.Bytes, chunk[:take]...)
		chunk = chunk[take:]
	}

	buf := d.blob.Bytes
	const marker = "$PNOR"
	for i := scanFrom; i+len(marker) <= len(buf); i++ {
		if string(buf[i:i+len(marker)]) != marker {
			continue
		}
		windowEnd := i + len(marker) + d.cfg.ResyncMinBytes
		if windowEnd > len(buf) {
			continue // not enough bytes yet to judge this candidate; wait for more
		}
		window := buf[i+len(marker) : windowEnd]
		if countNonNMEA(window) > d.cfg.ResyncMaxNonNMEA {
			continue
		}

		finalized := *d.blob
		finalized.ClosedAt = now
		finalized.Bytes = append([]byte(nil), buf[:i]...)
		resume := append([]byte(nil), buf[i:]...)

		d.mode = ModeASCII
		d.blob = nil
		return &ExitResult{Blob: finalized, ResumeFrom: resume}, rotated
	}

	return nil, rotated
}
