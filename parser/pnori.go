package parser

import (
	"fmt"

	"github.com/aldas/adcp-ingest"
)

// Options configures behavior the spec leaves as an implementer choice (§9, Open
// Questions). The zero value is the normative default.
type Options struct {
	// StrictCellCountBound switches PNORI.Cells validation from the normative 1..1000
	// range to the stricter 1..128 range some in-source implementations used; see
	// DESIGN.md for the resolution of this Open Question.
	StrictCellCountBound bool
}

func maxCellCount(opts Options) int {
	if opts.StrictCellCountBound {
		return 128
	}
	return 1000
}

// ParsePNORI parses the PNORI (base) instrument configuration sentence.
func ParsePNORI(opts Options) nmea.ParserFunc {
	return parseInstrumentConfig("PNORI", opts)
}

// ParsePNORI1 parses the PNORI1 variant.
func ParsePNORI1(opts Options) nmea.ParserFunc {
	return parseInstrumentConfig("PNORI1", opts)
}

// ParsePNORI2 parses the PNORI2 variant.
func ParsePNORI2(opts Options) nmea.ParserFunc {
	return parseInstrumentConfig("PNORI2", opts)
}

// parseInstrumentConfig implements the shared PNORI/PNORI1/PNORI2 positional layout:
// InstrumentType, HeadID, Beams, Cells, Blanking, CellSize, CoordSystemCode.
func parseInstrumentConfig(prefix string, opts Options) nmea.ParserFunc {
	return func(frame []byte, _ *nmea.Pnori) (nmea.ParsedRecord, error) {
		fs := fields(frame)
		if err := requireFieldCount(prefix, fs, 7); err != nil {
			return nmea.ParsedRecord{}, err
		}

		instrumentType, err := nmea.DecodeInt(fs[0])
		if err != nil {
			return nmea.ParsedRecord{}, fmt.Errorf("%s instrument type: %w", prefix, err)
		}
		headID := fs[1]
		beams, err := nmea.DecodeInt(fs[2])
		if err != nil {
			return nmea.ParsedRecord{}, fmt.Errorf("%s beams: %w", prefix, err)
		}
		cells, err := nmea.DecodeInt(fs[3])
		if err != nil {
			return nmea.ParsedRecord{}, fmt.Errorf("%s cells: %w", prefix, err)
		}
		blanking, err := number(prefix, fs, 4)
		if err != nil {
			return nmea.ParsedRecord{}, err
		}
		cellSize, err := number(prefix, fs, 5)
		if err != nil {
			return nmea.ParsedRecord{}, err
		}
		coordCode, err := nmea.DecodeInt(fs[6])
		if err != nil {
			return nmea.ParsedRecord{}, fmt.Errorf("%s coordinate system: %w", prefix, err)
		}

		if instrumentType != 0 && instrumentType != 2 && instrumentType != 4 {
			return nmea.ParsedRecord{}, fmt.Errorf("%w: %s instrument type %d not in {0,2,4}", ErrFieldRange, prefix, instrumentType)
		}
		if len(headID) > 30 {
			return nmea.ParsedRecord{}, fmt.Errorf("%w: %s head ID longer than 30 chars", ErrFieldRange, prefix)
		}
		if beams < 1 || beams > 4 {
			return nmea.ParsedRecord{}, fmt.Errorf("%w: %s beams %d not in [1,4]", ErrFieldRange, prefix, beams)
		}
		if cells < 1 || cells > maxCellCount(opts) {
			return nmea.ParsedRecord{}, fmt.Errorf("%w: %s cells %d out of bounds", ErrFieldRange, prefix, cells)
		}
		if !inRangeExclusiveLo(blanking, 0, 100) {
			return nmea.ParsedRecord{}, fmt.Errorf("%w: %s blanking out of (0,100]", ErrFieldRange, prefix)
		}
		if !inRangeExclusiveLo(cellSize, 0, 100) {
			return nmea.ParsedRecord{}, fmt.Errorf("%w: %s cell size out of (0,100]", ErrFieldRange, prefix)
		}
		coord, ok := coordSystemName(coordCode)
		if !ok {
			return nmea.ParsedRecord{}, fmt.Errorf("%w: %s coordinate system code %d unknown", ErrFieldRange, prefix, coordCode)
		}
		// Cross-field rule: instrument type 4 requires 4 beams.
		if instrumentType == 4 && beams != 4 {
			return nmea.ParsedRecord{}, fmt.Errorf("%w: %s type=4 requires beams=4, got %d", ErrFieldRange, prefix, beams)
		}

		rec := &nmea.Pnori{
			Variant:         nmea.InstrumentVariant(prefix),
			InstrumentType:  instrumentType,
			HeadID:          headID,
			Beams:           beams,
			Cells:           cells,
			Blanking:        blanking.Value,
			CellSize:        cellSize.Value,
			CoordSystemCode: coordCode,
			CoordSystem:     coord,
		}
		return nmea.ParsedRecord{Kind: nmea.KindPnori, Pnori: rec}, nil
	}
}

func coordSystemName(code int) (nmea.CoordSystem, bool) {
	switch code {
	case 0:
		return nmea.CoordSystemENU, true
	case 1:
		return nmea.CoordSystemXYZ, true
	case 2:
		return nmea.CoordSystemBeam, true
	default:
		return "", false
	}
}

// inRangeExclusiveLo validates a present, always-populated Number (blanking/cell-size
// are never invalid-marker fields in practice) against (lo, hi].
func inRangeExclusiveLo(n nmea.Number, loExclusive, hiInclusive float64) bool {
	if !n.Present {
		return true
	}
	return n.Value > loExclusive && n.Value <= hiInclusive
}
