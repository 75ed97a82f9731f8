package parser

import (
	"fmt"

	"github.com/aldas/adcp-ingest"
)

const (
	pnorbWaveBandFieldCount    = 14
	pnorbBottomTrackFieldCount = 8
)

// ParsePNORB dispatches a $PNORB sentence to the wave-band or bottom-tracking shape based
// on field arity, since the instrument reuses one prefix for both record types (§9(b)).
func ParsePNORB(frame []byte, _ *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORB"
	fs := fields(frame)
	switch len(fs) {
	case pnorbWaveBandFieldCount:
		return parsePnorbWaveBand(prefix, fs)
	case pnorbBottomTrackFieldCount:
		return parsePnorbBottomTrack(prefix, fs)
	default:
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s got %d fields, want %d (wave-band) or %d (bottom-track)",
			ErrFieldCount, prefix, len(fs), pnorbWaveBandFieldCount, pnorbBottomTrackFieldCount)
	}
}

func parsePnorbWaveBand(prefix string, fs []string) (nmea.ParsedRecord, error) {
	date, err := nmea.DecodeDateMMDDYY(fs[0])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s date: %w", prefix, err)
	}
	tm, err := nmea.DecodeTime(fs[1])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s time: %w", prefix, err)
	}

	vals := make([]nmea.Number, 11)
	for i := range vals {
		vals[i], err = number(prefix, fs, 2+i)
		if err != nil {
			return nmea.ParsedRecord{}, err
		}
	}
	errorCode, err := nmea.DecodeHex(fs[13], 4)
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s error code: %w", prefix, err)
	}
	if !inRangeExclusiveHi(vals[6], 0, 360) {
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s DirTp out of [0,360)", ErrFieldRange, prefix)
	}

	rec := &nmea.PnorbWaveBand{
		Date: date, Time: tm,
		FreqLow: vals[0], FreqHigh: vals[1], Hm0: vals[2], H3: vals[3],
		Tm02: vals[4], Tp: vals[5], DirTp: vals[6], Spread: vals[7],
		MainDirection: vals[8], MeanPressure: vals[9], Quality: vals[10],
		ErrorCode: errorCode,
	}
	return nmea.ParsedRecord{Kind: nmea.KindPnorbWaveBand, PnorbWaveBand: rec}, nil
}

func parsePnorbBottomTrack(prefix string, fs []string) (nmea.ParsedRecord, error) {
	date, err := nmea.DecodeDateMMDDYY(fs[0])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s date: %w", prefix, err)
	}
	tm, err := nmea.DecodeTime(fs[1])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s time: %w", prefix, err)
	}

	ranges := make([]nmea.Number, 4)
	for i := range ranges {
		ranges[i], err = number(prefix, fs, 2+i)
		if err != nil {
			return nmea.ParsedRecord{}, err
		}
	}
	status, err := nmea.DecodeHex(fs[6], 2)
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s status: %w", prefix, err)
	}
	quality, err := number(prefix, fs, 7)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}

	rec := &nmea.PnorbBottomTrack{
		Date: date, Time: tm,
		Range1: ranges[0], Range2: ranges[1], Range3: ranges[2], Range4: ranges[3],
		Status: status, Quality: quality,
	}
	return nmea.ParsedRecord{Kind: nmea.KindPnorbBottomTrack, PnorbBottomTrack: rec}, nil
}
