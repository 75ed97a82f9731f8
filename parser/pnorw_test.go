package parser_test

import (
	"testing"

	"github.com/aldas/adcp-ingest"
	"github.com/aldas/adcp-ingest/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePNORW(t *testing.T) {
	line := "$PNORW,102115,090715,1.2,1.5,1.8,2.0,5.0,6.0,7.0,180,10,190,0.8,100,3,1,0.5,270,0000*00"
	rec, err := parser.ParsePNORW([]byte(line), nil)
	require.NoError(t, err)
	assert.Equal(t, nmea.KindPnorw, rec.Kind)
	require.NotNil(t, rec.Pnorw)
	assert.Equal(t, nmea.Number{Value: 1.2, Present: true}, rec.Pnorw.Hm0)
	assert.Equal(t, nmea.Number{Value: 180, Present: true}, rec.Pnorw.PeakDirection)
	assert.Equal(t, nmea.Number{Value: 190, Present: true}, rec.Pnorw.MeanDirection)
	assert.Equal(t, nmea.Number{Value: 270, Present: true}, rec.Pnorw.NearSurfaceDirection)
	assert.Equal(t, nmea.Number{Value: 0.5, Present: true}, rec.Pnorw.NearSurfaceSpeed)
	assert.Equal(t, "0000", rec.Pnorw.ErrorCode)
}

func TestParsePNORW_WrongFieldCount(t *testing.T) {
	_, err := parser.ParsePNORW([]byte("$PNORW,102115,090715,1.2*00"), nil)
	assert.ErrorIs(t, err, parser.ErrFieldCount)
}

func TestParsePNORW_DirectionOutOfRange(t *testing.T) {
	line := "$PNORW,102115,090715,1.2,1.5,1.8,2.0,5.0,6.0,7.0,361,10,190,0.8,100,3,1,0.5,270,0000*00"
	_, err := parser.ParsePNORW([]byte(line), nil)
	assert.ErrorIs(t, err, parser.ErrFieldRange)
}
