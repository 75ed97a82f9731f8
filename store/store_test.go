package store

import (
	"path/filepath"
	"testing"
	"time"

	nmea "github.com/aldas/adcp-ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := New(Config{
		Path:       filepath.Join(dir, "test.db"),
		LedgerPath: filepath.Join(dir, "resume.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_WriteRawLineAndFlush(t *testing.T) {
	s := newTestStore(t)

	err := s.WriteRawLine(nmea.RawLine{
		ReceivedAt: time.Now(), Bytes: []byte("$PNORI,4*2C\r\n"),
		Outcome: nmea.OutcomeOK, Prefix: "PNORI", ChecksumValid: true,
	})
	require.NoError(t, err)

	require.NoError(t, s.Flush())

	var count int64
	require.NoError(t, s.db.Model(&RawLineModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.EqualValues(t, 1, s.ResumeCount("raw_lines"))
}

func TestStore_WriteParsedPnoriDispatchesToCorrectTable(t *testing.T) {
	s := newTestStore(t)

	rec := nmea.ParsedRecord{
		Kind:       nmea.KindPnori,
		ReceivedAt: time.Now(),
		Pnori: &nmea.Pnori{
			Variant: "PNORI", InstrumentType: 4, HeadID: "Signature1000",
			Beams: 4, Cells: 20, Blanking: 0.2, CellSize: 1.0,
			CoordSystemCode: 0, CoordSystem: nmea.CoordSystemENU,
		},
	}
	require.NoError(t, s.WriteParsed(rec))
	require.NoError(t, s.Flush())

	var row PnoriRecordModel
	require.NoError(t, s.db.First(&row).Error)
	assert.Equal(t, 20, row.Cells)
	assert.Equal(t, "ENU", row.CoordSystem)
}

func TestStore_WriteParsedPnorsPreservesAbsentNumbers(t *testing.T) {
	s := newTestStore(t)

	rec := nmea.ParsedRecord{
		Kind: nmea.KindPnors,
		Pnors: &nmea.Pnors{
			Variant: "PNORS", Battery: nmea.Of(14.4), Heading: nmea.Absent(),
		},
	}
	require.NoError(t, s.WriteParsed(rec))
	require.NoError(t, s.Flush())

	var row PnorsRecordModel
	require.NoError(t, s.db.First(&row).Error)
	assert.True(t, row.BatteryValid)
	assert.InDelta(t, 14.4, row.Battery, 0.001)
	assert.False(t, row.HeadingValid)
}

func TestStore_WriteParseErrorBuffersUntilFlush(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteParseError(nmea.ParseError{
		ReceivedAt: time.Now(), Kind: nmea.ErrorKindChecksumMismatch,
		ActualChecksum: "XX", Detail: "checksum mismatch",
	}))

	var count int64
	require.NoError(t, s.db.Model(&ParseErrorModel{}).Count(&count).Error)
	assert.Zero(t, count, "row must not be visible before Flush")

	require.NoError(t, s.Flush())
	require.NoError(t, s.db.Model(&ParseErrorModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStore_CloseFlushesRemainingWrites(t *testing.T) {
	dir := t.TempDir()
	s, err := New(Config{Path: filepath.Join(dir, "test.db")})
	require.NoError(t, err)

	require.NoError(t, s.WriteRawLine(nmea.RawLine{ReceivedAt: time.Now(), Outcome: nmea.OutcomeOK}))
	require.NoError(t, s.Close())
}

func TestStore_PnorfStoresCoefficientsAsJSON(t *testing.T) {
	s := newTestStore(t)

	rec := nmea.ParsedRecord{
		Kind: nmea.KindPnorf,
		Pnorf: &nmea.Pnorf{
			Flag: 1, Basis: 0, N: 2,
			Coefficients: []nmea.FourierCoefficient{
				{A1: nmea.Of(1.1), B1: nmea.Of(2.2), A2: nmea.Of(3.3), B2: nmea.Of(4.4)},
				{A1: nmea.Absent(), B1: nmea.Absent(), A2: nmea.Absent(), B2: nmea.Absent()},
			},
		},
	}
	require.NoError(t, s.WriteParsed(rec))
	require.NoError(t, s.Flush())

	var row PnorfRecordModel
	require.NoError(t, s.db.First(&row).Error)
	assert.Contains(t, row.CoefficientsJSON, "1.1")
	assert.Equal(t, 2, row.N)
}
