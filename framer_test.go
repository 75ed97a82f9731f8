package nmea_test

import (
	"bytes"
	"testing"

	"github.com/aldas/adcp-ingest"
	"github.com/stretchr/testify/assert"
)

func TestFramer_Feed(t *testing.T) {
	f := nmea.NewFramer()

	frames, errs := f.Feed([]byte("garbage before $PNORI,4,X,4,20,0.20,1.00,0*2E\r\n$PNORS,1*00"))
	assert.Empty(t, errs)
	// second frame was not terminated with CR/LF yet, framer still completes on '*hh'
	assert.Len(t, frames, 2)
	assert.Equal(t, "$PNORI,4,X,4,20,0.20,1.00,0*2E", string(frames[0].Bytes))
	assert.Equal(t, "$PNORS,1*00", string(frames[1].Bytes))

	// nothing is left buffered for a later call
	frames, errs = f.Feed(nil)
	assert.Empty(t, errs)
	assert.Empty(t, frames)
}

func TestFramer_CompletesWithoutTerminator(t *testing.T) {
	f := nmea.NewFramer()
	frames, errs := f.Feed([]byte("$PNORS,1*00"))
	assert.Empty(t, errs)
	assert.Len(t, frames, 1)
	assert.Equal(t, "$PNORS,1*00", string(frames[0].Bytes))
}

func TestFramer_Oversized(t *testing.T) {
	f := nmea.NewFramer()

	exact := append([]byte{'$'}, bytes.Repeat([]byte("A"), nmea.MaxFrameSize-4)...)
	exact = append(exact, '*', '0', '0')
	frames, errs := f.Feed(exact)
	assert.Empty(t, errs)
	assert.Len(t, frames, 1)
	assert.Len(t, frames[0].Bytes, nmea.MaxFrameSize)

	tooLong := append([]byte{'$'}, bytes.Repeat([]byte("A"), nmea.MaxFrameSize+10)...)
	tooLong = append(tooLong, '*', '0', '0')
	frames, errs = f.Feed(tooLong)
	assert.Empty(t, frames)
	assert.Len(t, errs, 1)
}

func TestFramer_ResyncAfterGarbage(t *testing.T) {
	f := nmea.NewFramer()
	frames, _ := f.Feed([]byte{0x80, 0x81, 0x82})
	assert.Empty(t, frames)

	frames, errs := f.Feed([]byte("$PNORH4,141112,083149,0,2A4C0000*4A\r\n"))
	assert.Empty(t, errs)
	assert.Len(t, frames, 1)
}
