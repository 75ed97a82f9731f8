package test_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	nmea "github.com/aldas/adcp-ingest"
	"github.com/aldas/adcp-ingest/parser"
	"github.com/stretchr/testify/require"
)

// readFullLine mimics the byte-accumulation loop transport.Port runs internally, small
// enough to inline here so this test can drive MockReaderWriter without reaching into an
// unexported constructor.
func readFullLine(t *testing.T, rw *MockReaderWriter) []byte {
	t.Helper()
	var buf bytes.Buffer
	chunk := make([]byte, 64)
	for {
		n, err := rw.Read(chunk)
		buf.Write(chunk[:n])
		if err != nil && err != io.EOF {
			t.Fatalf("unexpected read error: %v", err)
		}
		if bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			return buf.Bytes()
		}
	}
}

func TestMockReaderWriter_FeedsFragmentedFrameToParser(t *testing.T) {
	raw := LoadBytes(t, "pnors_frame.txt")

	rw := &MockReaderWriter{Reads: []ReadResult{
		{Read: raw[:20]},
		{Read: raw[20:]},
	}}

	line := readFullLine(t, rw)
	frame := bytes.TrimRight(line, "\r\n")

	computed, actual, ok, err := nmea.Validate(frame)
	require.NoError(t, err)
	require.True(t, ok, "computed=%s actual=%s", computed, actual)

	router := parser.NewRouter(parser.Options{})
	prefix, rec, err := router.Route(frame, nil)
	require.NoError(t, err)
	require.Equal(t, "PNORS", prefix)
	rec.ReceivedAt = UTCTime(1700000000)

	expect := nmea.ParsedRecord{
		Kind:       nmea.KindPnors,
		ReceivedAt: UTCTime(1700000000),
		Pnors: &nmea.Pnors{
			Variant:    "PNORS",
			Date:       nmea.Date{Year: 2015, Month: 10, Day: 21},
			Time:       nmea.Time{Hour: 9, Minute: 7, Second: 15},
			ErrorCode:  "00000000",
			Status:     "2A480000",
			Battery:    nmea.Of(14.4),
			SoundSpeed: nmea.Of(1523.0),
			Heading:    nmea.Of(275.9),
			Pitch:        nmea.Of(15.7),
			Roll:         nmea.Of(2.3),
			Pressure:     nmea.Of(0),
			Temperature:  nmea.Of(22.45),
			AnalogInput1: nmea.Of(0),
			AnalogInput2: nmea.Of(0),
		},
	}
	AssertParsedRecord(t, expect, rec, 0.001)
}

func TestMockReaderWriter_SurfacesReadError(t *testing.T) {
	boom := io.ErrClosedPipe
	rw := &MockReaderWriter{Reads: []ReadResult{{Err: boom}}}

	_, err := rw.Read(make([]byte, 8))
	require.ErrorIs(t, err, boom)
	require.NoError(t, rw.Close())
}

func TestUTCTime_NormalizesToUTC(t *testing.T) {
	got := UTCTime(0)
	require.Equal(t, time.UTC, got.Location())
	require.True(t, got.IsZero() == false || got.Unix() == 0)
}
