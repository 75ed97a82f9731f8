package binarydetector

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_CheckLine_StaysASCIIForCleanLine(t *testing.T) {
	d := New(Config{})
	entered := d.CheckLine([]byte("$PNORI,0,ABC,4,20,1.0,2.0,0*00\r\n"), time.Now())
	assert.False(t, entered)
	assert.Equal(t, ModeASCII, d.Mode())
}

func TestDetector_CheckLine_EntersBinaryOnDensity(t *testing.T) {
	d := New(Config{MaxNonNMEAPerLine: 10})
	line := bytes.Repeat([]byte{0x80}, 200)
	entered := d.CheckLine(line, time.Now())
	require.True(t, entered)
	assert.Equal(t, ModeBinary, d.Mode())
}

func TestDetector_CheckLine_NoOpOnceInBinaryMode(t *testing.T) {
	d := New(Config{MaxNonNMEAPerLine: 10})
	d.CheckLine(bytes.Repeat([]byte{0x80}, 200), time.Now())
	entered := d.CheckLine([]byte("$PNORI,0,ABC,4,20,1.0,2.0,0*00\r\n"), time.Now())
	assert.False(t, entered)
	assert.Equal(t, ModeBinary, d.Mode())
}

func TestDetector_FeedBinary_ResyncsOnMarker(t *testing.T) {
	d := New(Config{MaxNonNMEAPerLine: 10, ResyncMinBytes: 45, ResyncMaxNonNMEA: 2})
	garbage := bytes.Repeat([]byte{0x80}, 200)
	d.CheckLine(garbage, time.Now())
	require.Equal(t, ModeBinary, d.Mode())

	tail := "$PNORH4,141112,083149,0,2A4C0000*4A68" + strings.Repeat("X", 11) + "\r\n"
	exit, rotated := d.FeedBinary([]byte(tail), time.Now())
	require.NotNil(t, exit)
	assert.Nil(t, rotated)
	assert.Equal(t, ModeASCII, d.Mode())
	assert.Equal(t, 200, len(exit.Blob.Bytes))
	assert.True(t, strings.HasPrefix(string(exit.ResumeFrom), "$PNORH4,"))
}

func TestDetector_FeedBinary_WaitsForMoreBytesWhenWindowIncomplete(t *testing.T) {
	d := New(Config{MaxNonNMEAPerLine: 10, ResyncMinBytes: 45, ResyncMaxNonNMEA: 2})
	d.CheckLine(bytes.Repeat([]byte{0x80}, 20), time.Now())

	exit, rotated := d.FeedBinary([]byte("$PNOR"), time.Now())
	assert.Nil(t, exit)
	assert.Nil(t, rotated)
	assert.Equal(t, ModeBinary, d.Mode())
}

func TestDetector_FeedBinary_RejectsCandidateWithTooMuchNoise(t *testing.T) {
	d := New(Config{MaxNonNMEAPerLine: 10, ResyncMinBytes: 10, ResyncMaxNonNMEA: 2})
	d.CheckLine(bytes.Repeat([]byte{0x80}, 20), time.Now())

	noisyWindow := "$PNOR" + string([]byte{0x80, 0x81, 0x82}) + "1234567"
	exit, _ := d.FeedBinary([]byte(noisyWindow), time.Now())
	assert.Nil(t, exit)
	assert.Equal(t, ModeBinary, d.Mode())
}

func TestDetector_FeedBinary_RotatesAtCap(t *testing.T) {
	d := New(Config{MaxNonNMEAPerLine: 10, BlobMaxBytes: 50})
	d.CheckLine(bytes.Repeat([]byte{0x80}, 30), time.Now())

	exit, rotated := d.FeedBinary(bytes.Repeat([]byte{0x81}, 40), time.Now())
	assert.Nil(t, exit)
	require.NotNil(t, rotated)
	assert.Equal(t, 50, len(rotated.Bytes))
	assert.Equal(t, ModeBinary, d.Mode())
}

func TestConfig_ApplyDefaults(t *testing.T) {
	c := Config{}
	c.ApplyDefaults()
	assert.Equal(t, defaultMaxNonNMEAPerLine, c.MaxNonNMEAPerLine)
	assert.Equal(t, defaultResyncMinBytes, c.ResyncMinBytes)
	assert.Equal(t, defaultResyncMaxNonNMEA, c.ResyncMaxNonNMEA)
	assert.Equal(t, int64(defaultBlobMaxBytes), c.BlobMaxBytes)
}
