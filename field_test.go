package nmea_test

import (
	"testing"

	"github.com/aldas/adcp-ingest"
	"github.com/stretchr/testify/assert"
)

func TestDecodeNumber(t *testing.T) {
	var testCases = []struct {
		name    string
		when    string
		expect  nmea.Number
		wantErr bool
	}{
		{name: "ok, present", when: "275.9", expect: nmea.Number{Value: 275.9, Present: true}},
		{name: "ok, invalid marker -9", when: "-9", expect: nmea.Number{}},
		{name: "ok, invalid marker -9.0", when: "-9.0", expect: nmea.Number{}},
		{name: "ok, invalid marker -999", when: "-999", expect: nmea.Number{}},
		{name: "ok, invalid marker -9999", when: "-9999", expect: nmea.Number{}},
		{name: "ok, boundary -9.01 still invalid", when: "-9.01", expect: nmea.Number{}},
		{name: "ok, -8.99 is a real reading", when: "-8.99", expect: nmea.Number{Value: -8.99, Present: true}},
		{name: "nok, empty", when: "", wantErr: true},
		{name: "nok, not numeric", when: "abc", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := nmea.DecodeNumber(tc.when)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, got)
		})
	}
}

func TestDecodeDateMMDDYY(t *testing.T) {
	d, err := nmea.DecodeDateMMDDYY("102115")
	assert.NoError(t, err)
	assert.Equal(t, nmea.Date{Year: 2015, Month: 10, Day: 21}, d)

	_, err = nmea.DecodeDateMMDDYY("139915")
	assert.Error(t, err)
}

func TestDecodeTime(t *testing.T) {
	tm, err := nmea.DecodeTime("090715")
	assert.NoError(t, err)
	assert.Equal(t, nmea.Time{Hour: 9, Minute: 7, Second: 15}, tm)

	_, err = nmea.DecodeTime("256000")
	assert.Error(t, err)
}

func TestDecodeHex(t *testing.T) {
	v, err := nmea.DecodeHex("2a480000", 8)
	assert.NoError(t, err)
	assert.Equal(t, "2A480000", v)

	_, err = nmea.DecodeHex("2a4800", 8)
	assert.Error(t, err)

	_, err = nmea.DecodeHex("zz480000", 8)
	assert.Error(t, err)
}
