package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_RegistersExpectedFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{
		"serial-port", "baud-rate", "read-timeout-ms", "output-dir", "queue-capacity",
		"batch-size", "batch-interval-ms", "max-non-nmea-per-line", "binary-blob-max-bytes",
		"reconnect-base-s", "reconnect-cap-s", "log-level", "strict-cell-count-bound", "metrics-addr",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "expected flag %q to be registered", name)
	}
}

func TestNewRootCmd_FailsValidationWithoutSerialPort(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--output-dir", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serial_port")
}
