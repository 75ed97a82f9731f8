// Package config holds the recognized options of spec §6, resolved from CLI flags by
// cmd/adcp-ingestd and fanned out to transport, pipeline, binarydetector, store and
// fileexport at startup.
package config

import (
	"fmt"
	"time"
)

// LogLevel is one of the four levels spec §6 names.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Config is the full set of recognized options from spec §6.
type Config struct {
	SerialPort    string
	BaudRate      int
	ReadTimeoutMS int

	OutputDir string

	QueueCapacity    int
	BatchSize        int
	BatchIntervalMS  int
	MaxNonNMEAPerLine int
	BinaryBlobMaxBytes int64

	ReconnectBaseSeconds float64
	ReconnectCapSeconds  float64

	LogLevel LogLevel

	// StrictCellCountBound resolves the §9(a) open question: false (default) accepts cell
	// indices up to the normative bound of 1000, true restores the legacy 128-cell bound
	// some older firmware enforced. See DESIGN.md.
	StrictCellCountBound bool
}

// ApplyDefaults fills zero-valued fields with spec §6's stated defaults.
func (c *Config) ApplyDefaults() {
	if c.BaudRate == 0 {
		c.BaudRate = 9600
	}
	if c.ReadTimeoutMS == 0 {
		c.ReadTimeoutMS = 1000
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.QueueCapacity == 0 {
		c.QueueCapacity = 1000
	}
	if c.BatchSize == 0 {
		c.BatchSize = 100
	}
	if c.BatchIntervalMS == 0 {
		c.BatchIntervalMS = 500
	}
	if c.MaxNonNMEAPerLine == 0 {
		c.MaxNonNMEAPerLine = 10
	}
	if c.BinaryBlobMaxBytes == 0 {
		c.BinaryBlobMaxBytes = 10_485_760
	}
	if c.ReconnectBaseSeconds == 0 {
		c.ReconnectBaseSeconds = 1.0
	}
	if c.ReconnectCapSeconds == 0 {
		c.ReconnectCapSeconds = 60.0
	}
	if c.LogLevel == "" {
		c.LogLevel = LogLevelInfo
	}
}

// Validate reports whether the config is ready to build a Core from.
func (c *Config) Validate() error {
	if c.SerialPort == "" {
		return fmt.Errorf("config: serial_port is required")
	}
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	if c.QueueCapacity <= 0 {
		return fmt.Errorf("config: queue_capacity must be positive")
	}
	return nil
}

// ReadTimeout is ReadTimeoutMS as a time.Duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMS) * time.Millisecond
}

// BatchInterval is BatchIntervalMS as a time.Duration.
func (c *Config) BatchInterval() time.Duration {
	return time.Duration(c.BatchIntervalMS) * time.Millisecond
}

// ReconnectBase/ReconnectCap render the float-seconds options as time.Duration.
func (c *Config) ReconnectBase() time.Duration {
	return time.Duration(c.ReconnectBaseSeconds * float64(time.Second))
}

func (c *Config) ReconnectCap() time.Duration {
	return time.Duration(c.ReconnectCapSeconds * float64(time.Second))
}
