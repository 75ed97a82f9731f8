package parser

import (
	"fmt"

	"github.com/aldas/adcp-ingest"
)

// validateSensorRanges enforces the common PNORS-family range rules (§4.3). An absent
// (invalid-marker) Number always passes; only present values are checked.
func validateSensorRanges(prefix string, battery, soundSpeed, heading, pitch, roll, pressure, temperature nmea.Number) error {
	switch {
	case !inRange(battery, 0, 30):
		return fmt.Errorf("%w: %s battery out of [0,30]", ErrFieldRange, prefix)
	case !inRange(soundSpeed, 1400, 2000):
		return fmt.Errorf("%w: %s sound speed out of [1400,2000]", ErrFieldRange, prefix)
	case !inRangeExclusiveHi(heading, 0, 360):
		return fmt.Errorf("%w: %s heading out of [0,360)", ErrFieldRange, prefix)
	case !inRange(pitch, -90, 90):
		return fmt.Errorf("%w: %s pitch out of [-90,90]", ErrFieldRange, prefix)
	case !inRange(roll, -180, 180):
		return fmt.Errorf("%w: %s roll out of [-180,180]", ErrFieldRange, prefix)
	case !inRange(pressure, 0, 20000):
		return fmt.Errorf("%w: %s pressure out of [0,20000]", ErrFieldRange, prefix)
	case !inRange(temperature, -5, 50):
		return fmt.Errorf("%w: %s temperature out of [-5,50]", ErrFieldRange, prefix)
	}
	return nil
}

// ParsePNORS parses the base PNORS sensor/environment snapshot.
func ParsePNORS(frame []byte, _ *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORS"
	fs := fields(frame)
	if err := requireFieldCount(prefix, fs, 13); err != nil {
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
	errCode, err := nmea.DecodeHex(fs[2], 8)
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s error code: %w", prefix, err)
	}
	status, err := nmea.DecodeHex(fs[3], 8)
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s status: %w", prefix, err)
	}
	battery, err := number(prefix, fs, 4)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	soundSpeed, err := number(prefix, fs, 5)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	heading, err := number(prefix, fs, 6)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	pitch, err := number(prefix, fs, 7)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	roll, err := number(prefix, fs, 8)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	pressure, err := number(prefix, fs, 9)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	temperature, err := number(prefix, fs, 10)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	analog1, err := number(prefix, fs, 11)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	analog2, err := number(prefix, fs, 12)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}

	if err := validateSensorRanges(prefix, battery, soundSpeed, heading, pitch, roll, pressure, temperature); err != nil {
		return nmea.ParsedRecord{}, err
	}

	rec := &nmea.Pnors{
		Variant: "PNORS", Date: date, Time: tm, ErrorCode: errCode, Status: status,
		Battery: battery, SoundSpeed: soundSpeed, Heading: heading, Pitch: pitch, Roll: roll,
		Pressure: pressure, Temperature: temperature, AnalogInput1: analog1, AnalogInput2: analog2,
	}
	return nmea.ParsedRecord{Kind: nmea.KindPnors, Pnors: rec}, nil
}

// ParsePNORS1 parses PNORS1, which adds a standard-deviation field after each of
// heading/pitch/roll/pressure.
func ParsePNORS1(frame []byte, _ *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORS1"
	fs := fields(frame)
	if err := requireFieldCount(prefix, fs, 17); err != nil {
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
	errCode, err := nmea.DecodeHex(fs[2], 8)
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s error code: %w", prefix, err)
	}
	status, err := nmea.DecodeHex(fs[3], 8)
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s status: %w", prefix, err)
	}
	vals := make([]nmea.Number, 13)
	for i := 0; i < 13; i++ {
		v, err := number(prefix, fs, 4+i)
		if err != nil {
			return nmea.ParsedRecord{}, err
		}
		vals[i] = v
	}
	battery, soundSpeed := vals[0], vals[1]
	heading, headingSD := vals[2], vals[3]
	pitch, pitchSD := vals[4], vals[5]
	roll, rollSD := vals[6], vals[7]
	pressure, pressureSD := vals[8], vals[9]
	temperature := vals[10]
	analog1, analog2 := vals[11], vals[12]

	if err := validateSensorRanges(prefix, battery, soundSpeed, heading, pitch, roll, pressure, temperature); err != nil {
		return nmea.ParsedRecord{}, err
	}

	rec := &nmea.Pnors{
		Variant: "PNORS1", Date: date, Time: tm, ErrorCode: errCode, Status: status,
		Battery: battery, SoundSpeed: soundSpeed,
		Heading: heading, HeadingSD: headingSD,
		Pitch: pitch, PitchSD: pitchSD,
		Roll: roll, RollSD: rollSD,
		Pressure: pressure, PressureSD: pressureSD,
		Temperature: temperature, AnalogInput1: analog1, AnalogInput2: analog2,
	}
	return nmea.ParsedRecord{Kind: nmea.KindPnors, Pnors: rec}, nil
}

// pnors2RequiredTags is the required key set for the tagged PNORS2 variant.
var pnors2RequiredTags = []string{"DATE", "TIME", "EC", "SC", "BV", "SS", "HSD", "H", "PI", "PISD", "R", "RSD", "P", "PSD", "T"}

// ParsePNORS2 parses the tagged PNORS2 variant.
func ParsePNORS2(frame []byte, _ *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORS2"
	m := tags(frame)
	if err := requireTags(prefix, m, pnors2RequiredTags...); err != nil {
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
	errCode, err := nmea.DecodeInt(m["EC"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s EC: %w", prefix, err)
	}
	status, err := nmea.DecodeHex(m["SC"], 8)
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s SC: %w", prefix, err)
	}

	numbered := map[string]*nmea.Number{}
	for _, key := range []string{"BV", "SS", "HSD", "H", "PI", "PISD", "R", "RSD", "P", "PSD", "T"} {
		v, err := nmea.DecodeNumber(m[key])
		if err != nil {
			return nmea.ParsedRecord{}, fmt.Errorf("%s %s: %w", prefix, key, err)
		}
		vv := v
		numbered[key] = &vv
	}

	if err := validateSensorRanges(prefix, *numbered["BV"], *numbered["SS"], *numbered["H"], *numbered["PI"], *numbered["R"], *numbered["P"], *numbered["T"]); err != nil {
		return nmea.ParsedRecord{}, err
	}

	rec := &nmea.Pnors{
		Variant: "PNORS2", Date: date, Time: tm,
		ErrorCode: fmt.Sprintf("%d", errCode), Status: status,
		Battery: *numbered["BV"], SoundSpeed: *numbered["SS"],
		Heading: *numbered["H"], HeadingSD: *numbered["HSD"],
		Pitch: *numbered["PI"], PitchSD: *numbered["PISD"],
		Roll: *numbered["R"], RollSD: *numbered["RSD"],
		Pressure: *numbered["P"], PressureSD: *numbered["PSD"],
		Temperature: *numbered["T"],
	}
	return nmea.ParsedRecord{Kind: nmea.KindPnors, Pnors: rec}, nil
}

// pnors3RequiredTags is the required key set for the compact-tagged PNORS3 variant,
// which omits error/status codes and standard deviations.
var pnors3RequiredTags = []string{"DATE", "TIME", "BV", "H", "PI", "R", "P", "T"}

// ParsePNORS3 parses the compact-tagged PNORS3 variant.
func ParsePNORS3(frame []byte, _ *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORS3"
	m := tags(frame)
	if err := requireTags(prefix, m, pnors3RequiredTags...); err != nil {
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
	numbered := map[string]nmea.Number{}
	for _, key := range []string{"BV", "H", "PI", "R", "P", "T"} {
		v, err := nmea.DecodeNumber(m[key])
		if err != nil {
			return nmea.ParsedRecord{}, fmt.Errorf("%s %s: %w", prefix, key, err)
		}
		numbered[key] = v
	}

	if err := validateSensorRanges(prefix, numbered["BV"], nmea.Number{}, numbered["H"], numbered["PI"], numbered["R"], numbered["P"], numbered["T"]); err != nil {
		return nmea.ParsedRecord{}, err
	}

	rec := &nmea.Pnors{
		Variant: "PNORS3", Date: date, Time: tm,
		Battery: numbered["BV"], Heading: numbered["H"], Pitch: numbered["PI"],
		Roll: numbered["R"], Pressure: numbered["P"], Temperature: numbered["T"],
	}
	return nmea.ParsedRecord{Kind: nmea.KindPnors, Pnors: rec}, nil
}

// ParsePNORS4 parses the minimal positional PNORS4 variant: date, time, heading,
// pressure, temperature.
func ParsePNORS4(frame []byte, _ *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORS4"
	fs := fields(frame)
	if err := requireFieldCount(prefix, fs, 5); err != nil {
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
	heading, err := number(prefix, fs, 2)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	pressure, err := number(prefix, fs, 3)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	temperature, err := number(prefix, fs, 4)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}

	if err := validateSensorRanges(prefix, nmea.Number{}, nmea.Number{}, heading, nmea.Number{}, nmea.Number{}, pressure, temperature); err != nil {
		return nmea.ParsedRecord{}, err
	}

	rec := &nmea.Pnors{Variant: "PNORS4", Date: date, Time: tm, Heading: heading, Pressure: pressure, Temperature: temperature}
	return nmea.ParsedRecord{Kind: nmea.KindPnors, Pnors: rec}, nil
}
