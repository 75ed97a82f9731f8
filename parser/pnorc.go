package parser

import (
	"fmt"

	"github.com/aldas/adcp-ingest"
)

// checkCellIndex enforces the structural cell-index floor (must be >= 1) as a hard
// FIELD_RANGE failure, and the cross-sentence latched-config ceiling as a soft warning
// per §4.3: "failure downgrades the record to a validation warning but still persists
// the parsed values." cfg is nil until the consumer has latched a PNORI record.
func checkCellIndex(prefix string, cellIndex int, cfg *nmea.Pnori) (warn bool, err error) {
	if cellIndex < 1 {
		return false, fmt.Errorf("%w: %s cell index %d must be >= 1", ErrFieldRange, prefix, cellIndex)
	}
	if cfg != nil && cellIndex > cfg.Cells {
		return true, nil
	}
	return false, nil
}

// ParsePNORC parses the base 3-component PNORC current-velocity sentence.
func ParsePNORC(frame []byte, cfg *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORC"
	fs := fields(frame)
	if err := requireFieldCount(prefix, fs, 6); err != nil {
		return nmea.ParsedRecord{}, err
	}
	return parsePnorcPositional(prefix, "PNORC", fs, cfg, false)
}

// ParsePNORC1 parses the 4-component PNORC1 current-velocity sentence (adds a vertical
// beam component).
func ParsePNORC1(frame []byte, cfg *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORC1"
	fs := fields(frame)
	if err := requireFieldCount(prefix, fs, 7); err != nil {
		return nmea.ParsedRecord{}, err
	}
	return parsePnorcPositional(prefix, "PNORC1", fs, cfg, true)
}

func parsePnorcPositional(prefix string, variant string, fs []string, cfg *nmea.Pnori, fourComponents bool) (nmea.ParsedRecord, error) {
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
	v1, err := number(prefix, fs, 3)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	v2, err := number(prefix, fs, 4)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	v3, err := number(prefix, fs, 5)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	var v4 nmea.Number
	if fourComponents {
		v4, err = number(prefix, fs, 6)
		if err != nil {
			return nmea.ParsedRecord{}, err
		}
	}

	warn, err := checkCellIndex(prefix, cellIndex, cfg)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}

	rec := &nmea.Pnorc{
		Variant: nmea.InstrumentVariant(variant), Date: date, Time: tm, CellIndex: cellIndex,
		Velocity1: v1, Velocity2: v2, Velocity3: v3, Velocity4: v4,
		CellIndexWarning: warn,
	}
	return nmea.ParsedRecord{Kind: nmea.KindPnorc, Pnorc: rec}, nil
}

// pnorc2RequiredTags lists PNORC2's required keys; V4/amplitude/correlation keys are
// present only when the instrument reports them, which the tagged encoding supports
// natively (§4.3: "optional amplitudes and correlations").
var pnorc2RequiredTags = []string{"DATE", "TIME", "CELL", "V1", "V2", "V3"}

// ParsePNORC2 parses the tagged PNORC2 current-velocity sentence.
func ParsePNORC2(frame []byte, cfg *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORC2"
	m := tags(frame)
	if err := requireTags(prefix, m, pnorc2RequiredTags...); err != nil {
		return nmea.ParsedRecord{}, err
	}

	date, err := nmea.DecodeDateMMDDYY(m["DATE"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s date: %w", prefix, err)
	}
	tm, err := nmea.DecodeTime(m["TIME"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s time: %w", prefix, err)
	}
	cellIndex, err := nmea.DecodeInt(m["CELL"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s cell index: %w", prefix, err)
	}
	v1, err := nmea.DecodeNumber(m["V1"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s V1: %w", prefix, err)
	}
	v2, err := nmea.DecodeNumber(m["V2"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s V2: %w", prefix, err)
	}
	v3, err := nmea.DecodeNumber(m["V3"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s V3: %w", prefix, err)
	}

	rec := &nmea.Pnorc{Variant: "PNORC2", Date: date, Time: tm, CellIndex: cellIndex, Velocity1: v1, Velocity2: v2, Velocity3: v3}

	if raw, ok := m["V4"]; ok {
		rec.Velocity4, err = nmea.DecodeNumber(raw)
		if err != nil {
			return nmea.ParsedRecord{}, fmt.Errorf("%s V4: %w", prefix, err)
		}
	}
	for key, dst := range map[string]*nmea.Number{
		"AMP1": &rec.Amplitude1, "AMP2": &rec.Amplitude2, "AMP3": &rec.Amplitude3, "AMP4": &rec.Amplitude4,
		"CORR1": &rec.Corr1, "CORR2": &rec.Corr2, "CORR3": &rec.Corr3, "CORR4": &rec.Corr4,
	} {
		if raw, ok := m[key]; ok {
			v, err := nmea.DecodeNumber(raw)
			if err != nil {
				return nmea.ParsedRecord{}, fmt.Errorf("%s %s: %w", prefix, key, err)
			}
			*dst = v
		}
	}

	warn, err := checkCellIndex(prefix, cellIndex, cfg)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	rec.CellIndexWarning = warn

	return nmea.ParsedRecord{Kind: nmea.KindPnorc, Pnorc: rec}, nil
}

// ParsePNORC3 parses the cell-averaged PNORC3 sentence: date, time, cell, speed,
// direction, amplitude (six fields).
func ParsePNORC3(frame []byte, cfg *nmea.Pnori) (nmea.ParsedRecord, error) {
	return parsePnorcAveraged("PNORC3", frame, cfg)
}

// ParsePNORC4 parses the cell-averaged PNORC4 sentence, same six-field shape as PNORC3.
func ParsePNORC4(frame []byte, cfg *nmea.Pnori) (nmea.ParsedRecord, error) {
	return parsePnorcAveraged("PNORC4", frame, cfg)
}

func parsePnorcAveraged(prefix string, frame []byte, cfg *nmea.Pnori) (nmea.ParsedRecord, error) {
	fs := fields(frame)
	if err := requireFieldCount(prefix, fs, 6); err != nil {
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
	speed, err := number(prefix, fs, 3)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	direction, err := number(prefix, fs, 4)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	if !inRangeExclusiveHi(direction, 0, 360) {
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s direction out of [0,360)", ErrFieldRange, prefix)
	}
	amplitude, err := number(prefix, fs, 5)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}

	warn, err := checkCellIndex(prefix, cellIndex, cfg)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}

	rec := &nmea.PnorcAveraged{
		Variant: nmea.InstrumentVariant(prefix), Date: date, Time: tm, CellIndex: cellIndex,
		Speed: speed, Direction: direction, Amplitude: amplitude, CellIndexWarning: warn,
	}
	return nmea.ParsedRecord{Kind: nmea.KindPnorcAveraged, PnorcAveraged: rec}, nil
}
