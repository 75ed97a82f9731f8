package store

import (
	"fmt"
	"time"
)

// Config configures the embedded store, mirroring marmos91-dittofs's
// controlplane/store.Config shape (path plus a handful of tuning knobs, ApplyDefaults +
// Validate rather than a constructor full of positional args).
type Config struct {
	// Path is the SQLite database file. Use ":memory:" for tests.
	Path string
	// LedgerPath is the bbolt resume-ledger file. Empty disables the ledger.
	LedgerPath string
	// BusyTimeout bounds how long SQLite waits on a write lock held by a concurrent
	// connection before returning SQLITE_BUSY.
	BusyTimeout time.Duration
}

// ApplyDefaults fills zero-valued fields with the package defaults.
func (c *Config) ApplyDefaults() {
	if c.Path == "" {
		c.Path = "adcp-ingest.db"
	}
	if c.BusyTimeout <= 0 {
		c.BusyTimeout = 5 * time.Second
	}
}

// Validate reports whether the config is usable as-is.
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("store: path must not be empty")
	}
	return nil
}

// dsn renders the SQLite DSN with the WAL and busy_timeout pragmas marmos91-dittofs's
// gorm.go applies for a single-writer embedded workload.
func (c *Config) dsn() string {
	if c.Path == ":memory:" {
		return "file::memory:?cache=shared"
	}
	return fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", c.Path, c.BusyTimeout.Milliseconds())
}
