package fileexport

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	nmea "github.com/aldas/adcp-ingest"
)

// openFile is one cached per-family append-mode file handle, keyed by the day it was
// opened for in Config.Zone. A day boundary crossing swaps the handle out for a freshly
// opened one rather than mutating the path on an open *os.File.
type openFile struct {
	file *os.File
	day  string // YYYY-MM-DD in Config.Zone
}

// Exporter writes successfully parsed sentences to daily per-family text files and
// binary-mode blobs to capped, sequence-numbered files, implementing pipeline.Exporter.
type Exporter struct {
	config Config

	mu    sync.Mutex
	files map[string]*openFile // keyed by prefix

	blobMu  sync.Mutex
	blobSeq map[string]int // keyed by YYYYMMDD_HHMMSS, disambiguates same-second blobs
}

// New builds an Exporter, creating config.OutputDir (and its errors/binary subdirectory)
// if they do not already exist.
func New(config Config) (*Exporter, error) {
	config.ApplyDefaults()
	if err := os.MkdirAll(filepath.Join(config.OutputDir, "errors", "binary"), os.FileMode(config.DirPerm)); err != nil {
		return nil, fmt.Errorf("fileexport: create output dir: %w", err)
	}
	return &Exporter{
		config:  config,
		files:   map[string]*openFile{},
		blobSeq: map[string]int{},
	}, nil
}

func dayKey(t time.Time, zone *time.Location) string {
	return t.In(zone).Format("2006-01-02")
}

// AppendLine appends line (with a trailing newline) to {OutputDir}/{prefix}/{YYYY-MM-DD}.txt,
// where the date is receivedAt's calendar day in Config.Zone. The per-family file handle is
// cached and reopened automatically when the calendar day rolls over.
func (e *Exporter) AppendLine(prefix string, receivedAt time.Time, line []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	day := dayKey(receivedAt, e.config.Zone)
	of, ok := e.files[prefix]
	if !ok || of.day != day {
		if ok {
			_ = of.file.Close()
		}
		dir := filepath.Join(e.config.OutputDir, prefix)
		if err := os.MkdirAll(dir, os.FileMode(e.config.DirPerm)); err != nil {
			return fmt.Errorf("fileexport: create family dir %q: %w", prefix, err)
		}
		path := filepath.Join(dir, day+".txt")
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, os.FileMode(e.config.FilePerm))
		if err != nil {
			return fmt.Errorf("fileexport: open %q: %w", path, err)
		}
		of = &openFile{file: f, day: day}
		e.files[prefix] = of
	}

	if _, err := of.file.Write(line); err != nil {
		return fmt.Errorf("fileexport: write %q: %w", prefix, err)
	}
	if len(line) == 0 || line[len(line)-1] != '\n' {
		if _, err := of.file.Write([]byte("\n")); err != nil {
			return fmt.Errorf("fileexport: write newline %q: %w", prefix, err)
		}
	}
	return nil
}

// WriteBinaryBlob writes blob.Bytes to a new file under {OutputDir}/errors/binary/, named
// {YYYYMMDD}_{HHMMSS}_bin_{NNN}.dat where the timestamp is blob.OpenedAt in Config.Zone and
// NNN disambiguates multiple blobs opened within the same second.
func (e *Exporter) WriteBinaryBlob(blob nmea.BinaryBlob) error {
	e.blobMu.Lock()
	stamp := blob.OpenedAt.In(e.config.Zone).Format("20060102_150405")
	e.blobSeq[stamp]++
	seq := e.blobSeq[stamp]
	e.blobMu.Unlock()

	name := fmt.Sprintf("%s_bin_%03d.dat", stamp, seq)
	path := filepath.Join(e.config.OutputDir, "errors", "binary", name)
	if err := os.WriteFile(path, blob.Bytes, os.FileMode(e.config.FilePerm)); err != nil {
		return fmt.Errorf("fileexport: write blob %q: %w", path, err)
	}
	return nil
}

// Close closes every cached per-family file handle.
func (e *Exporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	var firstErr error
	for prefix, of := range e.files {
		if err := of.file.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("fileexport: close %q: %w", prefix, err)
		}
	}
	e.files = map[string]*openFile{}
	return firstErr
}
