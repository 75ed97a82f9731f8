package parser

import (
	"fmt"

	"github.com/aldas/adcp-ingest"
)

// pnorwNumberCount is the count of Number-valued fields between time and the error code:
// Hm0, H3, H10, Hmax, Tm02, Tp, Tz, PeakDirection, Spread, MeanDirection,
// UnidirectivityIndex, MeanPressure, NoDetectCount, BadDetectCount, NearSurfaceSpeed,
// NearSurfaceDirection.
const pnorwNumberCount = 16

// pnorwFieldCount is date, time, the Number fields, then the error code.
const pnorwFieldCount = 2 + pnorwNumberCount + 1

// ParsePNORW parses the wave summary sentence.
func ParsePNORW(frame []byte, _ *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORW"
	fs := fields(frame)
	if err := requireFieldCount(prefix, fs, pnorwFieldCount); err != nil {
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

	vals := make([]nmea.Number, pnorwNumberCount)
	for i := range vals {
		vals[i], err = number(prefix, fs, 2+i)
		if err != nil {
			return nmea.ParsedRecord{}, err
		}
	}

	errorCode, err := nmea.DecodeHex(fs[pnorwFieldCount-1], 4)
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s error code: %w", prefix, err)
	}

	peakDirection, meanDirection, nearSurfaceDirection := vals[7], vals[9], vals[15]
	for _, d := range []nmea.Number{peakDirection, meanDirection, nearSurfaceDirection} {
		if !inRangeExclusiveHi(d, 0, 360) {
			return nmea.ParsedRecord{}, fmt.Errorf("%w: %s direction out of [0,360)", ErrFieldRange, prefix)
		}
	}

	rec := &nmea.Pnorw{
		Date: date, Time: tm,
		Hm0: vals[0], H3: vals[1], H10: vals[2], Hmax: vals[3],
		Tm02: vals[4], Tp: vals[5], Tz: vals[6],
		PeakDirection: peakDirection, Spread: vals[8], MeanDirection: meanDirection,
		UnidirectivityIndex: vals[10], MeanPressure: vals[11],
		NoDetectCount: vals[12], BadDetectCount: vals[13],
		NearSurfaceSpeed: vals[14], NearSurfaceDirection: nearSurfaceDirection,
		ErrorCode: errorCode,
	}

	return nmea.ParsedRecord{Kind: nmea.KindPnorw, Pnorw: rec}, nil
}
