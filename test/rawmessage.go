package test_test

import (
	"testing"

	nmea "github.com/aldas/adcp-ingest"
	"github.com/stretchr/testify/assert"
)

// AssertNumber compares an absent-aware decoded field, tolerating floating-point noise in
// the Value when both are Present; an absent/present mismatch always fails regardless of
// delta, mirroring the teacher's AssertFieldValue split between exact and delta comparison.
func AssertNumber(t *testing.T, expect, actual nmea.Number, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.Equal(t, expect.Present, actual.Present, msgAndArgs...) {
		return
	}
	if expect.Present {
		assert.InDelta(t, expect.Value, actual.Value, delta, msgAndArgs...)
	}
}

// AssertParsedRecord compares two ParsedRecords by Kind and then, within the matching
// variant pointer, by field, using AssertNumber for every Number field so instrument
// rounding noise in fixture data doesn't produce a brittle exact-equality test.
func AssertParsedRecord(t *testing.T, expect, actual nmea.ParsedRecord, delta float64) {
	t.Helper()
	if !assert.Equal(t, expect.Kind, actual.Kind) {
		return
	}
	switch expect.Kind {
	case nmea.KindPnori:
		assertPnori(t, expect.Pnori, actual.Pnori)
	case nmea.KindPnors:
		assertPnors(t, expect.Pnors, actual.Pnors, delta)
	default:
		// Other families are covered directly by their package-level parser tests; this
		// helper only needs to support the pipeline-level fixtures that exercise it.
		assert.Equal(t, expect, actual)
	}
}

func assertPnori(t *testing.T, expect, actual *nmea.Pnori) {
	t.Helper()
	require := assert.New(t)
	if !require.NotNil(actual) || !require.NotNil(expect) {
		return
	}
	assert.Equal(t, *expect, *actual)
}

func assertPnors(t *testing.T, expect, actual *nmea.Pnors, delta float64) {
	t.Helper()
	if expect == nil || actual == nil {
		assert.Equal(t, expect, actual)
		return
	}
	assert.Equal(t, expect.Variant, actual.Variant)
	assert.Equal(t, expect.Date, actual.Date)
	assert.Equal(t, expect.Time, actual.Time)
	AssertNumber(t, expect.Battery, actual.Battery, delta, "Battery")
	AssertNumber(t, expect.SoundSpeed, actual.SoundSpeed, delta, "SoundSpeed")
	AssertNumber(t, expect.Heading, actual.Heading, delta, "Heading")
	AssertNumber(t, expect.Pitch, actual.Pitch, delta, "Pitch")
	AssertNumber(t, expect.Roll, actual.Roll, delta, "Roll")
	AssertNumber(t, expect.Pressure, actual.Pressure, delta, "Pressure")
	AssertNumber(t, expect.Temperature, actual.Temperature, delta, "Temperature")
}
