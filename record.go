package nmea

import "time"

// ErrorKind enumerates the error_kind values written to parse_errors, per spec §7.
type ErrorKind string

const (
	ErrorKindChecksumMissing   ErrorKind = "CHECKSUM_MISSING"
	ErrorKindChecksumMalformed ErrorKind = "CHECKSUM_MALFORMED"
	ErrorKindChecksumMismatch  ErrorKind = "CHECKSUM_MISMATCH"
	ErrorKindUnknownPrefix     ErrorKind = "UNKNOWN_PREFIX"
	ErrorKindFieldCount        ErrorKind = "FIELD_COUNT"
	ErrorKindFieldFormat       ErrorKind = "FIELD_FORMAT"
	ErrorKindFieldRange        ErrorKind = "FIELD_RANGE"
	ErrorKindMissingTag        ErrorKind = "MISSING_TAG"
	ErrorKindOversized         ErrorKind = "OVERSIZED"
	ErrorKindBinaryModeEntry   ErrorKind = "BINARY_MODE_ENTRY"
	ErrorKindBinaryModeExit    ErrorKind = "BINARY_MODE_EXIT"
	ErrorKindTransportTimeout  ErrorKind = "TRANSPORT_TIMEOUT"
	ErrorKindTransportFatal    ErrorKind = "TRANSPORT_FATAL"
	ErrorKindStoreWrite        ErrorKind = "STORE_WRITE"
)

// ParseOutcome is the outcome column of raw_lines.
type ParseOutcome string

const (
	OutcomeOK     ParseOutcome = "ok"
	OutcomeFail   ParseOutcome = "fail"
	OutcomeBinary ParseOutcome = "binary"
)

// RawLine is written exactly once for every line read off the wire, never mutated. Per
// §3 invariant 1, every RawLine with Outcome=OutcomeOK has exactly one companion row in a
// parsed-family table; every RawLine with Outcome=OutcomeFail has exactly one companion
// ParseError. BINARY_MODE_ENTRY/EXIT rows stand alone.
type RawLine struct {
	ReceivedAt     time.Time
	Bytes          []byte
	Outcome        ParseOutcome
	Prefix         string // empty if undetected
	ChecksumValid  bool
	ErrorMessage   string
}

// ParseError is written exactly once per frame that failed to parse.
type ParseError struct {
	ReceivedAt        time.Time
	Bytes             []byte
	Kind              ErrorKind
	AttemptedPrefix   string
	ExpectedChecksum  string
	ActualChecksum    string
	Detail            string
}

// CoordSystem is the PNORI coordinate-system field.
type CoordSystem string

const (
	CoordSystemENU  CoordSystem = "ENU"
	CoordSystemXYZ  CoordSystem = "XYZ"
	CoordSystemBeam CoordSystem = "BEAM"
)

// coordSystemByCode maps the instrument's numeric coordinate system code to CoordSystem.
var coordSystemByCode = map[int]CoordSystem{
	0: CoordSystemENU,
	1: CoordSystemXYZ,
	2: CoordSystemBeam,
}

// RecordKind discriminates ParsedRecord's active variant. This is the idiomatic-Go
// rendering of the "tagged sum type" called for in the design notes: a discriminator plus
// exactly one non-nil variant pointer, rather than an inheritance hierarchy.
type RecordKind string

const (
	KindPnori            RecordKind = "PNORI"
	KindPnors            RecordKind = "PNORS"
	KindPnorc            RecordKind = "PNORC"
	KindPnorcAveraged    RecordKind = "PNORC_AVERAGED"
	KindPnorHeader       RecordKind = "PNORH"
	KindPnora            RecordKind = "PNORA"
	KindPnorw            RecordKind = "PNORW"
	KindPnorbWaveBand    RecordKind = "PNORB_WAVE_BAND"
	KindPnorbBottomTrack RecordKind = "PNORB_BOTTOM_TRACK"
	KindPnore            RecordKind = "PNORE"
	KindPnorf            RecordKind = "PNORF"
	KindPnorwd           RecordKind = "PNORWD"
)

// ParsedRecord is the tagged-union parsed result of one sentence. Exactly one of the
// variant pointers is non-nil, selected by Kind. Shared metadata (receive time, the
// instrument-reported date/time when present) lives here, not duplicated in variants.
type ParsedRecord struct {
	Kind       RecordKind
	ReceivedAt time.Time

	Pnori            *Pnori
	Pnors            *Pnors
	Pnorc            *Pnorc
	PnorcAveraged    *PnorcAveraged
	PnorHeader       *PnorHeader
	Pnora            *Pnora
	Pnorw            *Pnorw
	PnorbWaveBand    *PnorbWaveBand
	PnorbBottomTrack *PnorbBottomTrack
	Pnore            *Pnore
	Pnorf            *Pnorf
	Pnorwd           *Pnorwd
}

// InstrumentVariant discriminates sibling positional/tagged variants within a family
// (PNORI vs PNORI1 vs PNORI2, etc.) sharing one storage table per §4.9/§9(c).
type InstrumentVariant string

// Pnori is the instrument configuration record (PNORI/PNORI1/PNORI2). Latched in memory
// by the consumer as the most recently observed value; consulted read-only by
// cell-indexed parsers to bound CellIndex.
type Pnori struct {
	Variant         InstrumentVariant
	InstrumentType  int
	HeadID          string
	Beams           int
	Cells           int
	Blanking        float64
	CellSize        float64
	CoordSystemCode int
	CoordSystem     CoordSystem
}

// Pnors is the sensor/environment snapshot (PNORS/S1/S2/S3/S4).
type Pnors struct {
	Variant      InstrumentVariant
	Date         Date
	Time         Time
	ErrorCode    string // 8 hex
	Status       string // 8 hex
	Battery      Number
	SoundSpeed   Number
	Heading      Number
	HeadingSD    Number
	Pitch        Number
	PitchSD      Number
	Roll         Number
	RollSD       Number
	Pressure     Number
	PressureSD   Number
	Temperature  Number
	AnalogInput1 Number
	AnalogInput2 Number
}

// Pnorc is a per-cell current-velocity record (PNORC/C1/C2, non cell-averaged).
type Pnorc struct {
	Variant    InstrumentVariant
	Date       Date
	Time       Time
	CellIndex  int
	Velocity1  Number
	Velocity2  Number
	Velocity3  Number
	Velocity4  Number // present only for 4-component variants
	Amplitude1 Number
	Amplitude2 Number
	Amplitude3 Number
	Amplitude4 Number
	Corr1      Number
	Corr2      Number
	Corr3      Number
	Corr4      Number
	// CellIndexWarning is set (without failing the record) when CellIndex exceeds the
	// latched instrument configuration's cell count; see §4.3 cross-sentence checks.
	CellIndexWarning bool
}

// PnorcAveraged is the cell-averaged current-velocity record (PNORC3/PNORC4).
type PnorcAveraged struct {
	Variant          InstrumentVariant
	Date             Date
	Time             Time
	CellIndex        int
	Speed            Number
	Direction        Number
	Amplitude        Number
	CellIndexWarning bool
}

// PnorHeader precedes a burst of per-cell sentences (PNORH3/H4).
type PnorHeader struct {
	Variant   InstrumentVariant
	Date      Date
	Time      Time
	ErrorCode int
	Status    string // 8 hex
}

// Pnora is an altimeter record.
type Pnora struct {
	Date       Date
	Time       Time
	Pressure   Number
	Distance   Number
	Quality    Number
	Status     string // 2 hex
	Pitch      Number
	Roll       Number
	FormatCode int // set for the tagged (format code 201) variant, 0 for positional
}

// Pnorw is the wave summary record: 19 fields (date, time, 16 values, error code).
type Pnorw struct {
	Date                  Date
	Time                  Time
	Hm0                   Number
	H3                    Number
	H10                   Number
	Hmax                  Number
	Tm02                  Number
	Tp                    Number
	Tz                    Number
	PeakDirection         Number
	Spread                Number
	MeanDirection         Number
	UnidirectivityIndex   Number
	MeanPressure          Number
	NoDetectCount         Number
	BadDetectCount        Number
	NearSurfaceSpeed      Number
	NearSurfaceDirection  Number
	ErrorCode             string // 4 hex
}

// PnorbWaveBand is the wave-band parameters record (14 fields), selected when a $PNORB
// sentence carries 14 fields; see §9(b).
type PnorbWaveBand struct {
	Date          Date
	Time          Time
	FreqLow       Number
	FreqHigh      Number
	Hm0           Number
	H3            Number
	Tm02          Number
	Tp            Number
	DirTp         Number
	Spread        Number
	MainDirection Number
	MeanPressure  Number
	ErrorCode     string // hex
	Quality       Number
}

// PnorbBottomTrack is the bottom-tracking record (8 fields), selected when a $PNORB
// sentence carries 8 fields; see §9(b).
type PnorbBottomTrack struct {
	Date    Date
	Time    Time
	Range1  Number
	Range2  Number
	Range3  Number
	Range4  Number
	Status  string // hex
	Quality Number
}

// Pnore is an echo-intensity-per-cell record across 4 beams.
type Pnore struct {
	Date      Date
	Time      Time
	CellIndex int
	Beam1     Number
	Beam2     Number
	Beam3     Number
	Beam4     Number
}

// Pnorf is a Fourier spectral coefficient record, variable length.
type Pnorf struct {
	Flag       int
	Date       Date
	Time       Time
	Basis      int
	StartFreq  Number
	StepFreq   Number
	N          int
	Coefficients []FourierCoefficient
}

// FourierCoefficient is one {A1,B1,A2,B2} quadruple of a Pnorf record.
type FourierCoefficient struct {
	A1 Number
	B1 Number
	A2 Number
	B2 Number
}

// Pnorwd is one directional-spectrum bin, emitted in a burst following a PnorHeader.
type Pnorwd struct {
	FreqBin   Number
	Direction Number
	Spread    Number
	Energy    Number
}

// BinaryBlob is the accumulated byte buffer captured while the binary-mode detector is
// engaged, persisted as a single file once the detector resynchronizes.
type BinaryBlob struct {
	OpenedAt time.Time
	ClosedAt time.Time
	Bytes    []byte
}
