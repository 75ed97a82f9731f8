package parser

import (
	"fmt"
	"strconv"

	"github.com/aldas/adcp-ingest"
)

// ParsePNORH4 parses the positional PNORH4 header sentence that precedes a burst of
// per-cell PNORE/PNORC sentences: date (YYMMDD, unlike the MMDDYY used by every other
// family), time, error code (hex), status (8 hex).
func ParsePNORH4(frame []byte, _ *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORH4"
	fs := fields(frame)
	if err := requireFieldCount(prefix, fs, 4); err != nil {
		return nmea.ParsedRecord{}, err
	}

	date, err := nmea.DecodeDateYYMMDD(fs[0])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s date: %w", prefix, err)
	}
	tm, err := nmea.DecodeTime(fs[1])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s time: %w", prefix, err)
	}
	errorCode, err := strconv.ParseInt(fs[2], 16, 32)
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s error code not hex: %s", nmea.ErrFieldBadHex, prefix, fs[2])
	}
	status, err := nmea.DecodeHex(fs[3], 8)
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s status: %w", prefix, err)
	}

	rec := &nmea.PnorHeader{Variant: "PNORH4", Date: date, Time: tm, ErrorCode: int(errorCode), Status: status}
	return nmea.ParsedRecord{Kind: nmea.KindPnorHeader, PnorHeader: rec}, nil
}

// pnorh3RequiredTags lists PNORH3's required keys.
var pnorh3RequiredTags = []string{"DATE", "TIME", "EC", "STATUS"}

// ParsePNORH3 parses the tagged PNORH3 header sentence, same fields as PNORH4 but
// order-independent.
func ParsePNORH3(frame []byte, _ *nmea.Pnori) (nmea.ParsedRecord, error) {
	const prefix = "PNORH3"
	m := tags(frame)
	if err := requireTags(prefix, m, pnorh3RequiredTags...); err != nil {
		return nmea.ParsedRecord{}, err
	}

	date, err := nmea.DecodeDateYYMMDD(m["DATE"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s date: %w", prefix, err)
	}
	tm, err := nmea.DecodeTime(m["TIME"])
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s time: %w", prefix, err)
	}
	errorCode, err := strconv.ParseInt(m["EC"], 16, 32)
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%w: %s EC not hex: %s", nmea.ErrFieldBadHex, prefix, m["EC"])
	}
	status, err := nmea.DecodeHex(m["STATUS"], 8)
	if err != nil {
		return nmea.ParsedRecord{}, fmt.Errorf("%s STATUS: %w", prefix, err)
	}

	rec := &nmea.PnorHeader{Variant: "PNORH3", Date: date, Time: tm, ErrorCode: int(errorCode), Status: status}
	return nmea.ParsedRecord{Kind: nmea.KindPnorHeader, PnorHeader: rec}, nil
}
