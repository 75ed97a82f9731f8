package parser_test

import (
	"testing"

	"github.com/aldas/adcp-ingest"
	"github.com/aldas/adcp-ingest/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePNORC(t *testing.T) {
	rec, err := parser.ParsePNORC([]byte("$PNORC,102115,090715,1,12.34,56.78,90.12*1E"), nil)
	require.NoError(t, err)
	assert.Equal(t, nmea.KindPnorc, rec.Kind)
	require.NotNil(t, rec.Pnorc)
	assert.Equal(t, 1, rec.Pnorc.CellIndex)
	assert.Equal(t, nmea.Number{Value: 12.34, Present: true}, rec.Pnorc.Velocity1)
	assert.Equal(t, nmea.Number{Value: 56.78, Present: true}, rec.Pnorc.Velocity2)
	assert.Equal(t, nmea.Number{Value: 90.12, Present: true}, rec.Pnorc.Velocity3)
	assert.False(t, rec.Pnorc.Velocity4.Present)
	assert.False(t, rec.Pnorc.CellIndexWarning)
}

func TestParsePNORC_WrongFieldCount(t *testing.T) {
	_, err := parser.ParsePNORC([]byte("$PNORC,102115,090715,1,12.34*00"), nil)
	assert.ErrorIs(t, err, parser.ErrFieldCount)
}

func TestParsePNORC_CellIndexFloor(t *testing.T) {
	_, err := parser.ParsePNORC([]byte("$PNORC,102115,090715,0,12.34,56.78,90.12*00"), nil)
	assert.ErrorIs(t, err, parser.ErrFieldRange)
}

func TestParsePNORC_CellIndexWarningAgainstLatchedConfig(t *testing.T) {
	cfg := &nmea.Pnori{Cells: 5}
	rec, err := parser.ParsePNORC([]byte("$PNORC,102115,090715,5,12.34,56.78,90.12*00"), cfg)
	require.NoError(t, err)
	assert.False(t, rec.Pnorc.CellIndexWarning)

	rec, err = parser.ParsePNORC([]byte("$PNORC,102115,090715,6,12.34,56.78,90.12*00"), cfg)
	require.NoError(t, err)
	assert.True(t, rec.Pnorc.CellIndexWarning)
}

func TestParsePNORC1_FourComponents(t *testing.T) {
	rec, err := parser.ParsePNORC1([]byte("$PNORC1,102115,090715,1,12.34,56.78,90.12,1.23*00"), nil)
	require.NoError(t, err)
	require.NotNil(t, rec.Pnorc)
	assert.Equal(t, nmea.Number{Value: 1.23, Present: true}, rec.Pnorc.Velocity4)
}

func TestParsePNORC2_Tagged(t *testing.T) {
	rec, err := parser.ParsePNORC2([]byte("$PNORC2,DATE=102115,TIME=090715,CELL=2,V1=1.1,V2=2.2,V3=3.3,AMP1=10,CORR1=95*00"), nil)
	require.NoError(t, err)
	require.NotNil(t, rec.Pnorc)
	assert.Equal(t, 2, rec.Pnorc.CellIndex)
	assert.False(t, rec.Pnorc.Velocity4.Present)
	assert.Equal(t, nmea.Number{Value: 10, Present: true}, rec.Pnorc.Amplitude1)
	assert.Equal(t, nmea.Number{Value: 95, Present: true}, rec.Pnorc.Corr1)
}

func TestParsePNORC2_MissingRequiredTag(t *testing.T) {
	_, err := parser.ParsePNORC2([]byte("$PNORC2,DATE=102115,TIME=090715,CELL=2,V1=1.1,V2=2.2*00"), nil)
	assert.ErrorIs(t, err, parser.ErrMissingTag)
}

func TestParsePNORC3_CellAveraged(t *testing.T) {
	rec, err := parser.ParsePNORC3([]byte("$PNORC3,102115,090715,3,45.6,180.0,30.0*00"), nil)
	require.NoError(t, err)
	assert.Equal(t, nmea.KindPnorcAveraged, rec.Kind)
	require.NotNil(t, rec.PnorcAveraged)
	assert.Equal(t, nmea.Number{Value: 45.6, Present: true}, rec.PnorcAveraged.Speed)
	assert.Equal(t, nmea.Number{Value: 180.0, Present: true}, rec.PnorcAveraged.Direction)
}

func TestParsePNORC3_DirectionOutOfRange(t *testing.T) {
	_, err := parser.ParsePNORC3([]byte("$PNORC3,102115,090715,3,45.6,360.0,30.0*00"), nil)
	assert.ErrorIs(t, err, parser.ErrFieldRange)
}

func TestParsePNORC4_SameShapeAsPNORC3(t *testing.T) {
	rec, err := parser.ParsePNORC4([]byte("$PNORC4,102115,090715,3,45.6,180.0,30.0*00"), nil)
	require.NoError(t, err)
	assert.Equal(t, nmea.InstrumentVariant("PNORC4"), rec.PnorcAveraged.Variant)
}
