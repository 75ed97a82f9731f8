// Package store persists raw lines, parsed records and parse errors to an embedded,
// pure-Go SQLite database via gorm.io/gorm and github.com/glebarez/sqlite (no cgo, so the
// unattended service has no toolchain dependency at deploy time), grounded on
// marmos91-dittofs's pkg/controlplane/store/gorm.go. A small go.etcd.io/bbolt side-ledger
// tracks restart-resume bookkeeping, grounded on serebryakov7-j1708-stats's use of bbolt
// for cursor/offset persistence.
package store

import "time"

// RawLineModel is the raw_lines table: written exactly once per line read off the wire,
// never mutated (§3).
type RawLineModel struct {
	ID            uint `gorm:"primarykey"`
	ReceivedAt    time.Time `gorm:"index"`
	Bytes         []byte
	Outcome       string `gorm:"index"`
	Prefix        string `gorm:"index"`
	ChecksumValid bool
	ErrorMessage  string
}

func (RawLineModel) TableName() string { return "raw_lines" }

// ParseErrorModel is the parse_errors table.
type ParseErrorModel struct {
	ID               uint `gorm:"primarykey"`
	ReceivedAt       time.Time `gorm:"index"`
	Bytes            []byte
	ErrorKind        string `gorm:"index"`
	AttemptedPrefix  string
	ExpectedChecksum string
	ActualChecksum   string
	Detail           string
}

func (ParseErrorModel) TableName() string { return "parse_errors" }

// PnoriRecordModel backs PNORI/PNORI1/PNORI2, discriminated by Variant, per §9(c)'s
// "consolidated multi-variant table is an internal optimization" note.
type PnoriRecordModel struct {
	ID              uint `gorm:"primarykey"`
	ReceivedAt      time.Time `gorm:"index"`
	Variant         string    `gorm:"index"`
	InstrumentType  int
	HeadID          string
	Beams           int
	Cells           int
	Blanking        float64
	CellSize        float64
	CoordSystemCode int
	CoordSystem     string
}

func (PnoriRecordModel) TableName() string { return "pnori_records" }

// PnorsRecordModel backs PNORS/S1/S2/S3/S4.
type PnorsRecordModel struct {
	ID         uint `gorm:"primarykey"`
	ReceivedAt time.Time `gorm:"index"`
	Variant    string    `gorm:"index"`
	Date       string
	Time       string
	ErrorCode  string
	Status     string

	Battery        float64
	BatteryValid   bool
	SoundSpeed     float64
	SoundSpeedValid bool
	Heading        float64
	HeadingValid   bool
	HeadingSD      float64
	HeadingSDValid bool
	Pitch          float64
	PitchValid     bool
	PitchSD        float64
	PitchSDValid   bool
	Roll           float64
	RollValid      bool
	RollSD         float64
	RollSDValid    bool
	Pressure       float64
	PressureValid  bool
	PressureSD     float64
	PressureSDValid bool
	Temperature     float64
	TemperatureValid bool
	AnalogInput1     float64
	AnalogInput1Valid bool
	AnalogInput2      float64
	AnalogInput2Valid bool
}

func (PnorsRecordModel) TableName() string { return "pnors_records" }

// PnorcRecordModel backs the per-cell PNORC/C1/C2 velocity family.
type PnorcRecordModel struct {
	ID         uint `gorm:"primarykey"`
	ReceivedAt time.Time `gorm:"index"`
	Variant    string    `gorm:"index"`
	Date       string
	Time       string
	CellIndex  int
	CellIndexWarning bool

	Velocity1 float64
	Velocity1Valid bool
	Velocity2 float64
	Velocity2Valid bool
	Velocity3 float64
	Velocity3Valid bool
	Velocity4 float64
	Velocity4Valid bool
	Amplitude1 float64
	Amplitude1Valid bool
	Amplitude2 float64
	Amplitude2Valid bool
	Amplitude3 float64
	Amplitude3Valid bool
	Amplitude4 float64
	Amplitude4Valid bool
	Corr1 float64
	Corr1Valid bool
	Corr2 float64
	Corr2Valid bool
	Corr3 float64
	Corr3Valid bool
	Corr4 float64
	Corr4Valid bool
}

func (PnorcRecordModel) TableName() string { return "pnorc_records" }

// PnorcAveragedRecordModel backs the cell-averaged PNORC3/PNORC4 variants.
type PnorcAveragedRecordModel struct {
	ID         uint `gorm:"primarykey"`
	ReceivedAt time.Time `gorm:"index"`
	Variant    string    `gorm:"index"`
	Date       string
	Time       string
	CellIndex  int
	CellIndexWarning bool

	Speed      float64
	SpeedValid bool
	Direction      float64
	DirectionValid bool
	Amplitude      float64
	AmplitudeValid bool
}

func (PnorcAveragedRecordModel) TableName() string { return "pnorc_averaged_records" }

// PnorHeaderRecordModel backs PNORH3/PNORH4.
type PnorHeaderRecordModel struct {
	ID         uint `gorm:"primarykey"`
	ReceivedAt time.Time `gorm:"index"`
	Variant    string    `gorm:"index"`
	Date       string
	Time       string
	ErrorCode  int
	Status     string
}

func (PnorHeaderRecordModel) TableName() string { return "pnorh_records" }

// PnoraRecordModel backs PNORA.
type PnoraRecordModel struct {
	ID         uint `gorm:"primarykey"`
	ReceivedAt time.Time `gorm:"index"`
	Date       string
	Time       string

	Pressure float64
	PressureValid bool
	Distance float64
	DistanceValid bool
	Quality float64
	QualityValid bool
	Status   string
	Pitch float64
	PitchValid bool
	Roll float64
	RollValid bool
	FormatCode int
}

func (PnoraRecordModel) TableName() string { return "pnora_records" }

// PnorwRecordModel backs PNORW.
type PnorwRecordModel struct {
	ID         uint `gorm:"primarykey"`
	ReceivedAt time.Time `gorm:"index"`
	Date       string
	Time       string

	Hm0 float64
	Hm0Valid bool
	H3 float64
	H3Valid bool
	H10 float64
	H10Valid bool
	Hmax float64
	HmaxValid bool
	Tm02 float64
	Tm02Valid bool
	Tp float64
	TpValid bool
	Tz float64
	TzValid bool
	PeakDirection float64
	PeakDirectionValid bool
	Spread float64
	SpreadValid bool
	MeanDirection float64
	MeanDirectionValid bool
	UnidirectivityIndex float64
	UnidirectivityIndexValid bool
	MeanPressure float64
	MeanPressureValid bool
	NoDetectCount float64
	NoDetectCountValid bool
	BadDetectCount float64
	BadDetectCountValid bool
	NearSurfaceSpeed float64
	NearSurfaceSpeedValid bool
	NearSurfaceDirection float64
	NearSurfaceDirectionValid bool
	ErrorCode string
}

func (PnorwRecordModel) TableName() string { return "pnorw_records" }

// PnorbWaveBandRecordModel backs the 14-field wave-band PNORB variant.
type PnorbWaveBandRecordModel struct {
	ID         uint `gorm:"primarykey"`
	ReceivedAt time.Time `gorm:"index"`

	FreqLow float64
	FreqLowValid bool
	FreqHigh float64
	FreqHighValid bool
	Hm0 float64
	Hm0Valid bool
	H3 float64
	H3Valid bool
	Tm02 float64
	Tm02Valid bool
	Tp float64
	TpValid bool
	DirTp float64
	DirTpValid bool
	Spread float64
	SpreadValid bool
	MainDirection float64
	MainDirectionValid bool
	MeanPressure float64
	MeanPressureValid bool
	Quality float64
	QualityValid bool
	ErrorCode string
}

func (PnorbWaveBandRecordModel) TableName() string { return "pnorb_wave_band_records" }

// PnorbBottomTrackRecordModel backs the 8-field bottom-tracking PNORB variant (§9(b)).
type PnorbBottomTrackRecordModel struct {
	ID         uint `gorm:"primarykey"`
	ReceivedAt time.Time `gorm:"index"`

	Range1 float64
	Range1Valid bool
	Range2 float64
	Range2Valid bool
	Range3 float64
	Range3Valid bool
	Range4 float64
	Range4Valid bool
	Status string
	Quality float64
	QualityValid bool
}

func (PnorbBottomTrackRecordModel) TableName() string { return "pnorb_bottom_track_records" }

// PnoreRecordModel backs PNORE (per-cell echo intensity, 4 beams).
type PnoreRecordModel struct {
	ID         uint `gorm:"primarykey"`
	ReceivedAt time.Time `gorm:"index"`
	Date       string
	Time       string
	CellIndex  int

	Beam1 float64
	Beam1Valid bool
	Beam2 float64
	Beam2Valid bool
	Beam3 float64
	Beam3Valid bool
	Beam4 float64
	Beam4Valid bool
}

func (PnoreRecordModel) TableName() string { return "pnore_records" }

// PnorfRecordModel backs PNORF. The variable-length coefficient list is stored as a JSON
// array in CoefficientsJSON rather than a normalized child table: §5 explicitly excludes
// a query engine beyond raw/parsed persistence, so a denormalized blob column is the
// simpler fit for data that is always read back whole.
type PnorfRecordModel struct {
	ID         uint `gorm:"primarykey"`
	ReceivedAt time.Time `gorm:"index"`
	Flag       int
	Date       string
	Time       string
	Basis      int
	StartFreq  float64
	StartFreqValid bool
	StepFreq   float64
	StepFreqValid bool
	N          int

	CoefficientsJSON string
}

func (PnorfRecordModel) TableName() string { return "pnorf_records" }

// PnorwdRecordModel backs PNORWD.
type PnorwdRecordModel struct {
	ID         uint `gorm:"primarykey"`
	ReceivedAt time.Time `gorm:"index"`

	FreqBin float64
	FreqBinValid bool
	Direction float64
	DirectionValid bool
	Spread float64
	SpreadValid bool
	Energy float64
	EnergyValid bool
}

func (PnorwdRecordModel) TableName() string { return "pnorwd_records" }

// AllModels lists every model AutoMigrate must create, mirroring
// marmos91-dittofs's models.AllModels() registry pattern.
func AllModels() []any {
	return []any{
		&RawLineModel{},
		&ParseErrorModel{},
		&PnoriRecordModel{},
		&PnorsRecordModel{},
		&PnorcRecordModel{},
		&PnorcAveragedRecordModel{},
		&PnorHeaderRecordModel{},
		&PnoraRecordModel{},
		&PnorwRecordModel{},
		&PnorbWaveBandRecordModel{},
		&PnorbBottomTrackRecordModel{},
		&PnoreRecordModel{},
		&PnorfRecordModel{},
		&PnorwdRecordModel{},
	}
}
