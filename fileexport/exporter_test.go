package fileexport

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	nmea "github.com/aldas/adcp-ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_AppendLineCreatesDailyFile(t *testing.T) {
	dir := t.TempDir()
	e, err := New(Config{OutputDir: dir})
	require.NoError(t, err)
	defer e.Close()

	receivedAt := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	require.NoError(t, e.AppendLine("PNORI", receivedAt, []byte("$PNORI,4*2C")))
	require.NoError(t, e.AppendLine("PNORI", receivedAt, []byte("$PNORI,5*2D")))

	contents, err := os.ReadFile(filepath.Join(dir, "PNORI", "2026-03-05.txt"))
	require.NoError(t, err)
	assert.Equal(t, "$PNORI,4*2C\n$PNORI,5*2D\n", string(contents))
}

func TestExporter_AppendLineRollsOverAtDayBoundary(t *testing.T) {
	dir := t.TempDir()
	e, err := New(Config{OutputDir: dir})
	require.NoError(t, err)
	defer e.Close()

	day1 := time.Date(2026, 3, 5, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 6, 0, 1, 0, 0, time.UTC)
	require.NoError(t, e.AppendLine("PNORS", day1, []byte("a")))
	require.NoError(t, e.AppendLine("PNORS", day2, []byte("b")))

	_, err = os.Stat(filepath.Join(dir, "PNORS", "2026-03-05.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "PNORS", "2026-03-06.txt"))
	assert.NoError(t, err)
}

func TestExporter_WriteBinaryBlobNamesFileByOpenedAt(t *testing.T) {
	dir := t.TempDir()
	e, err := New(Config{OutputDir: dir})
	require.NoError(t, err)
	defer e.Close()

	opened := time.Date(2026, 3, 5, 8, 31, 49, 0, time.UTC)
	blob := nmea.BinaryBlob{OpenedAt: opened, ClosedAt: opened.Add(time.Second), Bytes: []byte{0x80, 0x81, 0x82}}
	require.NoError(t, e.WriteBinaryBlob(blob))

	path := filepath.Join(dir, "errors", "binary", "20260305_083149_bin_001.dat")
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, blob.Bytes, contents)
}

func TestExporter_WriteBinaryBlobDisambiguatesSameSecond(t *testing.T) {
	dir := t.TempDir()
	e, err := New(Config{OutputDir: dir})
	require.NoError(t, err)
	defer e.Close()

	opened := time.Date(2026, 3, 5, 8, 31, 49, 0, time.UTC)
	blob := nmea.BinaryBlob{OpenedAt: opened, Bytes: []byte{0x01}}
	require.NoError(t, e.WriteBinaryBlob(blob))
	require.NoError(t, e.WriteBinaryBlob(blob))

	_, err = os.Stat(filepath.Join(dir, "errors", "binary", "20260305_083149_bin_001.dat"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "errors", "binary", "20260305_083149_bin_002.dat"))
	assert.NoError(t, err)
}

func TestExporter_CloseClosesCachedHandles(t *testing.T) {
	dir := t.TempDir()
	e, err := New(Config{OutputDir: dir})
	require.NoError(t, err)

	require.NoError(t, e.AppendLine("PNORW", time.Now(), []byte("x")))
	require.NoError(t, e.Close())
	assert.Empty(t, e.files)
}
