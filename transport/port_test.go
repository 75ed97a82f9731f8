package transport

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDevice feeds Read calls from a fixed chunk list, reporting io.EOF (not n=0, err=nil)
// when idle, matching what tarm/serial returns on a read-timeout per the teacher's own
// read-loop comments.
type fakeDevice struct {
	chunks [][]byte
	idx    int
	closed bool
}

func (f *fakeDevice) Read(p []byte) (int, error) {
	if f.idx >= len(f.chunks) {
		return 0, io.EOF
	}
	c := f.chunks[f.idx]
	f.idx++
	n := copy(p, c)
	return n, nil
}

func (f *fakeDevice) Write(p []byte) (int, error) { return len(p), nil }
func (f *fakeDevice) Close() error                { f.closed = true; return nil }

func TestPort_ReadLine_AssemblesAcrossChunks(t *testing.T) {
	dev := &fakeDevice{chunks: [][]byte{[]byte("$PNORI,0,"), []byte("ABC,4*1E\n")}}
	p := newPort(dev, Config{MaxLineSize: 64})

	line, err := p.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "$PNORI,0,ABC,4*1E\n", string(line))
}

func TestPort_ReadLine_ContextCancelled(t *testing.T) {
	dev := &fakeDevice{}
	p := newPort(dev, Config{MaxLineSize: 64})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ReadLine(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPort_ReadLine_LineTooLong(t *testing.T) {
	dev := &fakeDevice{chunks: [][]byte{[]byte("0123456789")}}
	p := newPort(dev, Config{MaxLineSize: 4})

	_, err := p.ReadLine(context.Background())
	assert.ErrorIs(t, err, ErrLineTooLong)
}

func TestPort_ReadLine_ClosedPort(t *testing.T) {
	dev := &fakeDevice{}
	p := newPort(dev, Config{MaxLineSize: 64})
	require.NoError(t, p.Close())

	_, err := p.ReadLine(context.Background())
	assert.ErrorIs(t, err, ErrPortClosed)
	assert.True(t, dev.closed)
}

type fatalDevice struct{}

func (fatalDevice) Read(p []byte) (int, error)  { return 0, errors.New("boom") }
func (fatalDevice) Write(p []byte) (int, error) { return 0, nil }
func (fatalDevice) Close() error                { return nil }

func TestPort_ReadLine_FatalErrorPropagates(t *testing.T) {
	p := newPort(fatalDevice{}, Config{MaxLineSize: 64})
	_, err := p.ReadLine(context.Background())
	assert.Error(t, err)
}

func TestBackoff(t *testing.T) {
	base := 500 * time.Millisecond
	cap := 30 * time.Second
	assert.Equal(t, base, Backoff(0, base, cap))
	assert.Equal(t, 2*base, Backoff(1, base, cap))
	assert.Equal(t, 4*base, Backoff(2, base, cap))
	assert.Equal(t, cap, Backoff(100, base, cap))
}

func TestConfig_ApplyDefaults(t *testing.T) {
	c := Config{}
	c.ApplyDefaults()
	assert.Equal(t, 115200, c.BaudRate)
	assert.Equal(t, 100*time.Millisecond, c.ReadTimeout)
	assert.Equal(t, 4096, c.MaxLineSize)
	assert.Equal(t, 500*time.Millisecond, c.ReconnectBaseDelay)
	assert.Equal(t, 30*time.Second, c.ReconnectMaxDelay)
}
