package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aldas/adcp-ingest/internal/utils"
	"github.com/tarm/serial"
)

// ErrLineTooLong is returned by ReadLine when a line exceeds Config.MaxLineSize without a
// terminator; the accumulation buffer is reset so reading can continue.
var ErrLineTooLong = errors.New("transport: line exceeds max size")

// ErrPortClosed is returned by ReadLine/Write after Close has been called.
var ErrPortClosed = errors.New("transport: port closed")

// Port reads newline-delimited lines off a serial connection to the instrument. It
// mirrors the teacher library's actisense device wrappers: a byte-accumulating read loop
// (readBuffer/readIndex) bounded by a per-Read deadline so context cancellation is
// noticed promptly, per §4.5.
type Port struct {
	device io.ReadWriteCloser
	config Config

	readBuffer []byte
	readIndex  int
	closed     bool
}

// Open opens the named serial device with Config's baud rate and read timeout.
func Open(name string, config Config) (*Port, error) {
	config.ApplyDefaults()
	dev, err := serial.OpenPort(&serial.Config{
		Name: name,
		Baud: config.BaudRate,
		// ReadTimeout bounds how long a single Read call blocks; it must stay short so
		// ReadLine's ctx.Done() check runs often enough to cancel promptly.
		ReadTimeout: config.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: open %s: %w", name, err)
	}
	return newPort(dev, config), nil
}

func newPort(dev io.ReadWriteCloser, config Config) *Port {
	return &Port{
		device:     dev,
		config:     config,
		readBuffer: make([]byte, config.MaxLineSize),
	}
}

// Close closes the underlying device. Safe to call more than once.
func (p *Port) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.device.Close()
}

// ReadLine blocks until a full newline-terminated line has been read, ctx is cancelled, or
// a fatal transport error occurs. The returned slice includes the trailing newline and is
// a fresh copy that the caller may keep.
func (p *Port) ReadLine(ctx context.Context) ([]byte, error) {
	if p.closed {
		return nil, ErrPortClosed
	}
	buf := make([]byte, 256)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		n, err := p.device.Read(buf)
		// Per the read-loop convention used throughout the teacher library: a deadline
		// timeout or EOF on an idle line is not fatal, it just means "no data yet".
		if err != nil && !(errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, io.EOF)) {
			return nil, fmt.Errorf("transport: fatal read error: %w", err)
		}
		if n == 0 {
			continue
		}

		if p.config.DebugLogRawMessageBytes && p.config.LogFunc != nil {
			p.config.LogFunc("# DEBUG transport read: %s\n", utils.FormatSpaces(buf[0:n]))
		}

		for i := 0; i < n; i++ {
			if p.readIndex >= len(p.readBuffer) {
				p.readIndex = 0
				return nil, ErrLineTooLong
			}
			p.readBuffer[p.readIndex] = buf[i]
			p.readIndex++
			if buf[i] == '\n' {
				line := make([]byte, p.readIndex)
				copy(line, p.readBuffer[0:p.readIndex])
				p.readIndex = 0
				return line, nil
			}
		}
	}
}
