package parser

import (
	"fmt"

	"github.com/aldas/adcp-ingest"
)

// pnorfHeaderFieldCount is flag, date, time, basis, start freq, step freq, N.
const pnorfHeaderFieldCount = 7

// ParsePNORF parses a variable-length Fourier spectral coefficient sentence: a fixed
// 7-field header followed by N coefficient quadruples (A1, B1, A2, B2).
func ParsePNORF(frame []byte, _ *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORF"
	fs := fields(frame)
	if len(fs) < pnorfHeaderFieldCount {
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s got %d fields, want at least %d", ErrFieldCount, prefix, len(fs), pnorfHeaderFieldCount)
	}

	flag, err := nmea.DecodeInt(fs[0])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s flag: %w", prefix, err)
	}
	date, err := nmea.DecodeDateMMDDYY(fs[1])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s date: %w", prefix, err)
	}
	tm, err := nmea.DecodeTime(fs[2])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s time: %w", prefix, err)
	}
	basis, err := nmea.DecodeInt(fs[3])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s basis: %w", prefix, err)
	}
	startFreq, err := number(prefix, fs, 4)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	stepFreq, err := number(prefix, fs, 5)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	n, err := nmea.DecodeInt(fs[6])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s N: %w", prefix, err)
	}
	if n < 0 {
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s N must be >= 0", ErrFieldRange, prefix)
	}

	want := pnorfHeaderFieldCount + n*4
	if err := requireFieldCount(prefix, fs, want); err != nil {
		return nmea.ParsedRecord{}, err
	}

	coeffs := make([]nmea.FourierCoefficient, n)
	for i := 0; i < n; i++ {
		base := pnorfHeaderFieldCount + i*4
		a1, err := number(prefix, fs, base)
		if err != nil {
			return nmea.ParsedRecord{}, err
		}
		b1, err := number(prefix, fs, base+1)
		if err != nil {
			return nmea.ParsedRecord{}, err
		}
		a2, err := number(prefix, fs, base+2)
		if err != nil {
			return nmea.ParsedRecord{}, err
		}
		b2, err := number(prefix, fs, base+3)
		if err != nil {
			return nmea.ParsedRecord{}, err
		}
		coeffs[i] = nmea.FourierCoefficient{A1: a1, B1: b1, A2: a2, B2: b2}
	}

	rec := &nmea.Pnorf{
		Flag: flag, Date: date, Time: tm, Basis: basis,
		StartFreq: startFreq, StepFreq: stepFreq, N: n, Coefficients: coeffs,
	}
	return nmea.ParsedRecord{Kind: nmea.KindPnorf, Pnorf: rec}, nil
}
