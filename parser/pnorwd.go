package parser

import (
	"fmt"

	"github.com/aldas/adcp-ingest"
)

// ParsePNORWD parses one directional-spectrum bin, emitted in a burst following a PNORH3/
// PNORH4 header. It carries no date/time of its own; the burst's timestamp is the
// preceding header's.
func ParsePNORWD(frame []byte, _ *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORWD"
	fs := fields(frame)
	if err := requireFieldCount(prefix, fs, 4); err != nil {
		return nmea.ParsedRecord{}, err
	}

	freqBin, err := number(prefix, fs, 0)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	direction, err := number(prefix, fs, 1)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	if !inRangeExclusiveHi(direction, 0, 360) {
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s direction out of [0,360)", ErrFieldRange, prefix)
	}
	spread, err := number(prefix, fs, 2)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	energy, err := number(prefix, fs, 3)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}

	rec := &nmea.Pnorwd{FreqBin: freqBin, Direction: direction, Spread: spread, Energy: energy}
	return nmea.ParsedRecord{Kind: nmea.KindPnorwd, Pnorwd: rec}, nil
}
