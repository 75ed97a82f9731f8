package parser

import (
	"fmt"
	"strings"

	"github.com/aldas/adcp-ingest"
)

// ParsePNORA parses the altimeter sentence. The instrument emits it either positionally
// (8 fields: date, time, pressure, distance, quality, status, pitch, roll) or tagged with
// an explicit FMT=201 marker; ParsePNORA dispatches on whether the first field contains a
// '=' so one router entry covers both encodings.
func ParsePNORA(frame []byte, _ *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORA"
	fs := fields(frame)
	if len(fs) > 0 && strings.Contains(fs[0], "=") {
		return parsePnoraTagged(prefix, frame)
	}
	return parsePnoraPositional(prefix, fs)
}

func parsePnoraPositional(prefix string, fs []string) (nmea.ParsedRecord, error) {
	if err := requireFieldCount(prefix, fs, 8); err != nil {
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
	pressure, err := number(prefix, fs, 2)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	distance, err := number(prefix, fs, 3)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	quality, err := number(prefix, fs, 4)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	status, err := nmea.DecodeHex(fs[5], 2)
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s status: %w", prefix, err)
	}
	pitch, err := number(prefix, fs, 6)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	roll, err := number(prefix, fs, 7)
	if err != nil {
		return nmea.ParsedRecord{}, err
	}
	if !inRange(distance, 0, 1000) {
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s distance out of [0,1000]", ErrFieldRange, prefix)
	}
	if !inRange(pitch, -90, 90) {
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s pitch out of [-90,90]", ErrFieldRange, prefix)
	}
	if !inRange(roll, -180, 180) {
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s roll out of [-180,180]", ErrFieldRange, prefix)
	}

	rec := &nmea.Pnora{
		Date: date, Time: tm, Pressure: pressure, Distance: distance, Quality: quality,
		Status: status, Pitch: pitch, Roll: roll,
	}
	return nmea.ParsedRecord{Kind: nmea.KindPnora, Pnora: rec}, nil
}

var pnoraTaggedRequiredTags = []string{"DATE", "TIME", "P", "D", "Q", "STATUS", "PITCH", "ROLL", "FMT"}

func parsePnoraTagged(prefix string, frame []byte) (nmea.ParsedRecord, error) {
	m := tags(frame)
	if err := requireTags(prefix, m, pnoraTaggedRequiredTags...); err != nil {
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
	pressure, err := nmea.DecodeNumber(m["P"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s P: %w", prefix, err)
	}
	distance, err := nmea.DecodeNumber(m["D"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s D: %w", prefix, err)
	}
	quality, err := nmea.DecodeNumber(m["Q"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s Q: %w", prefix, err)
	}
	status, err := nmea.DecodeHex(m["STATUS"], 2)
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s STATUS: %w", prefix, err)
	}
	pitch, err := nmea.DecodeNumber(m["PITCH"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s PITCH: %w", prefix, err)
	}
	roll, err := nmea.DecodeNumber(m["ROLL"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s ROLL: %w", prefix, err)
	}
	formatCode, err := nmea.DecodeInt(m["FMT"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s FMT: %w", prefix, err)
	}
	if formatCode != 201 {
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s FMT %d, only 201 is known", ErrFieldRange, prefix, formatCode)
	}
	if !inRange(distance, 0, 1000) {
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s distance out of [0,1000]", ErrFieldRange, prefix)
	}
	if !inRange(pitch, -90, 90) {
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s pitch out of [-90,90]", ErrFieldRange, prefix)
	}
	if !inRange(roll, -180, 180) {
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s roll out of [-180,180]", ErrFieldRange, prefix)
	}

	rec := &nmea.Pnora{
		Date: date, Time: tm, Pressure: pressure, Distance: distance, Quality: quality,
		Status: status, Pitch: pitch, Roll: roll, FormatCode: formatCode,
	}
	return nmea.ParsedRecord{Kind: nmea.KindPnora, Pnora: rec}, nil
}
