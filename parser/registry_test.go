package parser_test

import (
	"testing"

	"github.com/aldas/adcp-ingest"
	"github.com/aldas/adcp-ingest/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter_AllPrefixesRegistered(t *testing.T) {
	router := parser.NewRouter(parser.Options{})

	samples := map[string]string{
		"PNORI":  "$PNORI,0,ABC,4,20,1.0,2.0,0*00",
		"PNORI1": "$PNORI1,0,ABC,4,20,1.0,2.0,0*00",
		"PNORI2": "$PNORI2,0,ABC,4,20,1.0,2.0,0*00",
		"PNORS":  "$PNORS,102115,090715,00000000,00000000,12.0,1500,275.9,1.0,2.0,100,22.45,0.1,0.2*00",
		"PNORS4": "$PNORS4,102115,090715,275.9,100,22.45*00",
		"PNORC":  "$PNORC,102115,090715,1,12.34,56.78,90.12*00",
		"PNORC3": "$PNORC3,102115,090715,3,45.6,180.0,30.0*00",
		"PNORH4": "$PNORH4,151021,090715,0,00000000*00",
		"PNORA":  "$PNORA,102115,090715,10.5,3.2,90,1F,1.2,-2.3*00",
		"PNORW":  "$PNORW,102115,090715,1.2,1.5,1.8,2.0,5.0,6.0,7.0,180,10,190,0.8,100,3,1,0.5,270,0000*00",
		"PNORB":  "$PNORB,102115,090715,1.0,2.0,3.0,4.0,1F,95*00",
		"PNORE":  "$PNORE,102115,090715,3,50,52,48,51*00",
		"PNORF":  "$PNORF,1,102115,090715,0,0.01,0.005,0*00",
		"PNORWD": "$PNORWD,0.05,180.0,15.0,0.002*00",
	}

	for wantPrefix, line := range samples {
		matched, rec, err := router.Route([]byte(line), nil)
		require.NoError(t, err, line)
		assert.Equal(t, wantPrefix, matched, line)
		assert.NotEmpty(t, rec.Kind, line)
	}
}

func TestNewRouter_UnknownPrefix(t *testing.T) {
	router := parser.NewRouter(parser.Options{})
	_, _, err := router.Route([]byte("$GPGGA,1*00"), nil)
	assert.ErrorIs(t, err, nmea.ErrUnknownPrefix)
}
