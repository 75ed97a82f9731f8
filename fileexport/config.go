// Package fileexport mirrors successfully parsed sentences and binary-mode blobs to plain
// files alongside the embedded store, per spec §4.10: the store is the durability
// boundary, these files are a human-inspectable convenience export.
package fileexport

import "time"

// Config configures the exporter.
type Config struct {
	// OutputDir is the root directory; per-family logs land in OutputDir/{PREFIX}/, binary
	// blobs in OutputDir/errors/binary/.
	OutputDir string
	// Zone is the timezone used to compute the daily rollover boundary and blob filename
	// timestamps. Defaults to UTC.
	Zone *time.Location
	// DirPerm/FilePerm control created file permissions.
	DirPerm, FilePerm uint32
}

// ApplyDefaults fills zero-valued fields with package defaults.
func (c *Config) ApplyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Zone == nil {
		c.Zone = time.UTC
	}
	if c.DirPerm == 0 {
		c.DirPerm = 0o755
	}
	if c.FilePerm == 0 {
		c.FilePerm = 0o644
	}
}
