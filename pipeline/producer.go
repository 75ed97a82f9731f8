package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	nmea "github.com/aldas/adcp-ingest"
	"github.com/aldas/adcp-ingest/transport"
)

// ProducerConfig configures a Producer.
type ProducerConfig struct {
	// ReconnectBaseDelay and ReconnectMaxDelay bound the backoff applied between reopen
	// attempts after a fatal transport error: min(base*2^attempt, cap), per §4.5.
	ReconnectBaseDelay time.Duration
	ReconnectMaxDelay  time.Duration

	LogFunc func(format string, a ...any)
}

func (c *ProducerConfig) applyDefaults() {
	if c.ReconnectBaseDelay <= 0 {
		c.ReconnectBaseDelay = time.Second
	}
	if c.ReconnectMaxDelay <= 0 {
		c.ReconnectMaxDelay = 60 * time.Second
	}
	if c.LogFunc == nil {
		c.LogFunc = func(format string, a ...any) {}
	}
}

// Opener (re)establishes the transport connection. It is injected so tests can supply a
// fake LineReader without touching a real serial port; production wiring passes a closure
// over transport.Open.
type Opener func() (nmea.LineReader, error)

// Producer is the single task that owns the serial handle exclusively (§3 "Ownership").
// Its loop: read a line, stamp the receive time, push into the Queue. On a fatal
// transport error it closes the current device and reopens with exponential backoff,
// never giving up — the core is supervised, not self-terminating, per §4.5.
type Producer struct {
	open   Opener
	queue  *Queue
	config ProducerConfig

	heartbeat atomic.Int64 // unix nanos of last successful read or reconnect
}

// NewProducer constructs a Producer. open is called on start and again after every
// disconnect to (re)acquire the transport.
func NewProducer(open Opener, queue *Queue, config ProducerConfig) *Producer {
	config.applyDefaults()
	return &Producer{open: open, queue: queue, config: config}
}

// Heartbeat returns the unix-nanosecond timestamp of the last successful read or
// reconnect, 0 if none has happened yet.
func (p *Producer) Heartbeat() int64 {
	return p.heartbeat.Load()
}

func (p *Producer) markAlive() {
	p.heartbeat.Store(time.Now().UnixNano())
}

// Run drives the read loop until ctx is cancelled. On cancellation it finishes the
// current read/push and returns, per §5's cancellation contract.
func (p *Producer) Run(ctx context.Context) error {
	attempt := 0
	device, err := p.openWithRetry(ctx, &attempt)
	if err != nil {
		return err // only returns non-nil if ctx was cancelled while reconnecting
	}
	// Close whichever device is current on return, including one reopened after an error.
	defer func() {
		if device != nil {
			device.Close()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := device.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			p.config.LogFunc("# producer: transport error: %v\n", err)
			device.Close()
			device, err = p.openWithRetry(ctx, &attempt)
			if err != nil {
				return err
			}
			continue
		}
		attempt = 0 // any successful read resets the backoff attempt counter, per §4.5

		dropped := p.queue.Push(Item{ReceivedAt: time.Now(), Bytes: line})
		if dropped {
			p.config.LogFunc("# producer: queue full, dropped oldest frame\n")
		}
		p.markAlive()
	}
}

// openWithRetry calls Open, retrying with exponential backoff on failure until it
// succeeds or ctx is cancelled. *attempt is the backoff exponent; it carries over between
// reconnects and Run resets it to 0 after every successful read.
func (p *Producer) openWithRetry(ctx context.Context, attempt *int) (nmea.LineReader, error) {
	for {
		device, err := p.open()
		if err == nil {
			p.markAlive()
			return device, nil
		}
		p.config.LogFunc("# producer: open failed: %v\n", err)

		delay := transport.Backoff(*attempt, p.config.ReconnectBaseDelay, p.config.ReconnectMaxDelay)
		*attempt++
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("producer: cancelled while reconnecting: %w", ctx.Err())
		case <-time.After(delay):
		}
	}
}
