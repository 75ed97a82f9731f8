package parser

import (
	"fmt"

	"github.com/aldas/adcp-ingest"
)

// ParsePNORE parses an echo-intensity-per-cell sentence: date, time, cell index, then one
// amplitude value per beam (4 beams).
func ParsePNORE(frame []byte, cfg *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORE"
	fs := fields(frame)
	if err := requireFieldCount(prefix, fs, 7); err != nil {
		return nmea.ParsedRecord{}, err
	}

	date, err := nmea.DecodeDateMMDDYY(fs[0])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s date: %w", prefix, err)
	}
	tm, err := nmea.DecodeTime(fs[1])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s time: %w", prefix, err)
	}
	cellIndex, err := nmea.DecodeInt(fs[2])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s cell index: %w", prefix, err)
	}
	beams := make([]nmea.Number, 4)
	for i := range beams {
		beams[i], err = number(prefix, fs, 3+i)
		if err != nil {
			return nmea.ParsedRecord{}, err
		}
	}

	if _, err := checkCellIndex(prefix, cellIndex, cfg); err != nil {
		return nmea.ParsedRecord{}, err
	}

	rec := &nmea.Pnore{
		Date: date, Time: tm, CellIndex: cellIndex,
		Beam1: beams[0], Beam2: beams[1], Beam3: beams[2], Beam4: beams[3],
	}
	return nmea.ParsedRecord{Kind: nmea.KindPnore, Pnore: rec}, nil
}
