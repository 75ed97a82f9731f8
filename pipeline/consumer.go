package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	nmea "github.com/aldas/adcp-ingest"
	"github.com/aldas/adcp-ingest/binarydetector"
	"github.com/aldas/adcp-ingest/parser"
)

// Store is implemented by the store package: a single durable sink for raw lines, parsed
// records and parse errors, batching at its own discretion (§4.9). The consumer exclusively
// owns it (§3 "Ownership").
type Store interface {
	WriteRawLine(nmea.RawLine) error
	WriteParsed(nmea.ParsedRecord) error
	WriteParseError(nmea.ParseError) error
	Flush() error
	Close() error
}

// Exporter is implemented by the fileexport package: the per-family daily text log plus
// the binary blob writer (§4.10).
type Exporter interface {
	AppendLine(prefix string, receivedAt time.Time, line []byte) error
	WriteBinaryBlob(blob nmea.BinaryBlob) error
	Close() error
}

// ConsumerConfig configures a Consumer.
type ConsumerConfig struct {
	PopTimeout      time.Duration
	PopPollInterval time.Duration
	BatchSize       int
	BatchInterval   time.Duration
	DrainTimeout    time.Duration

	LogFunc func(format string, a ...any)
}

func (c *ConsumerConfig) applyDefaults() {
	if c.PopTimeout <= 0 {
		c.PopTimeout = 500 * time.Millisecond
	}
	if c.PopPollInterval <= 0 {
		c.PopPollInterval = 10 * time.Millisecond
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.BatchInterval <= 0 {
		c.BatchInterval = 500 * time.Millisecond
	}
	if c.DrainTimeout <= 0 {
		c.DrainTimeout = 2 * time.Second
	}
	if c.LogFunc == nil {
		c.LogFunc = func(format string, a ...any) {}
	}
}

// Consumer is the single task that owns the store connection and file-exporter handles
// exclusively (§3 "Ownership"). Its loop: pop an item, run it through the binary-mode
// detector, and on the ASCII path frame/route/parse it, persisting the outcome to both
// Store and Exporter. Commits batch at N items or T elapsed, whichever first (§4.9).
type Consumer struct {
	queue    *Queue
	router   *nmea.Router
	store    Store
	exporter Exporter
	detector *binarydetector.Detector
	config   ConsumerConfig

	framer *nmea.Framer

	latchedConfig atomic.Pointer[nmea.Pnori]
	heartbeat     atomic.Int64

	pendingSince time.Time
	pendingCount int
}

// NewConsumer constructs a Consumer.
func NewConsumer(queue *Queue, router *nmea.Router, store Store, exporter Exporter, detectorCfg binarydetector.Config, config ConsumerConfig) *Consumer {
	config.applyDefaults()
	return &Consumer{
		queue:    queue,
		router:   router,
		store:    store,
		exporter: exporter,
		detector: binarydetector.New(detectorCfg),
		config:   config,
		framer:   nmea.NewFramer(),
	}
}

// Heartbeat returns the unix-nanosecond timestamp of the last processed item.
func (c *Consumer) Heartbeat() int64 {
	return c.heartbeat.Load()
}

// Mode reports whether the consumer is currently in ASCII or binary capture mode.
func (c *Consumer) Mode() binarydetector.Mode {
	return c.detector.Mode()
}

// LatchedConfig returns a read-only snapshot of the most recently observed instrument
// configuration, nil if none has been seen yet.
func (c *Consumer) LatchedConfig() *nmea.Pnori {
	return c.latchedConfig.Load()
}

// Run drives the consumer loop until ctx is cancelled, then drains the queue (up to
// DrainTimeout), flushes the pending batch, closes the exporter and store, and returns.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.shutdown()

	for {
		select {
		case <-ctx.Done():
			return c.drainAndFlush()
		default:
		}

		item, ok := c.queue.PopWait(c.config.PopTimeout, c.config.PopPollInterval)
		if !ok {
			c.maybeFlushOnInterval()
			continue
		}
		c.process(item)
		c.heartbeat.Store(time.Now().UnixNano())
		c.maybeFlushOnSize()
		c.maybeFlushOnInterval()
	}
}

func (c *Consumer) drainAndFlush() error {
	deadline := time.Now().Add(c.config.DrainTimeout)
	for time.Now().Before(deadline) {
		item, ok := c.queue.Pop()
		if !ok {
			break
		}
		c.process(item)
	}
	return c.store.Flush()
}

func (c *Consumer) shutdown() {
	_ = c.exporter.Close()
	_ = c.store.Close()
}

func (c *Consumer) maybeFlushOnSize() {
	if c.pendingCount == 0 {
		return
	}
	if c.pendingCount >= c.config.BatchSize {
		c.flush()
	}
}

func (c *Consumer) maybeFlushOnInterval() {
	if c.pendingCount == 0 {
		return
	}
	if time.Since(c.pendingSince) >= c.config.BatchInterval {
		c.flush()
	}
}

func (c *Consumer) flush() {
	if err := c.store.Flush(); err != nil {
		c.config.LogFunc("# consumer: store flush failed, retrying once: %v\n", err)
		if err := c.store.Flush(); err != nil {
			c.config.LogFunc("# consumer: store flush failed again, fatal event: %v\n", err)
		}
	}
	c.pendingCount = 0
}

func (c *Consumer) beginBatchIfNeeded() {
	if c.pendingCount == 0 {
		c.pendingSince = time.Now()
	}
	c.pendingCount++
}

// process handles one queue item end to end: binary-mode check, framing, routing,
// persistence.
func (c *Consumer) process(item Item) {
	if c.detector.Mode() == binarydetector.ModeBinary {
		c.processBinary(item)
		return
	}

	if c.detector.CheckLine(item.Bytes, item.ReceivedAt) {
		c.writeRaw(nmea.RawLine{
			ReceivedAt: item.ReceivedAt,
			Bytes:      append([]byte(nil), item.Bytes...),
			Outcome:    nmea.OutcomeBinary,
			Prefix:     string(nmea.ErrorKindBinaryModeEntry),
		})
		return
	}

	frames, frameErrs := c.framer.Feed(item.Bytes)
	for _, fe := range frameErrs {
		c.writeParseError(item.ReceivedAt, fe.Bytes, nmea.ErrorKindOversized, fe.Err.Error())
	}
	for _, frame := range frames {
		c.processFrame(item.ReceivedAt, frame.Bytes)
	}
}

func (c *Consumer) processBinary(item Item) {
	exit, rotated := c.detector.FeedBinary(item.Bytes, item.ReceivedAt)
	if rotated != nil {
		if err := c.exporter.WriteBinaryBlob(*rotated); err != nil {
			c.config.LogFunc("# consumer: binary blob rotation write failed: %v\n", err)
		}
	}
	if exit == nil {
		return
	}
	if err := c.exporter.WriteBinaryBlob(exit.Blob); err != nil {
		c.config.LogFunc("# consumer: binary blob write failed: %v\n", err)
	}
	c.writeRaw(nmea.RawLine{
		ReceivedAt:   item.ReceivedAt,
		Outcome:      nmea.OutcomeBinary,
		Prefix:       string(nmea.ErrorKindBinaryModeExit),
		ErrorMessage: blobSizeMessage(len(exit.Blob.Bytes)),
	})

	// Resume normal framing with the bytes located at the resync point: they belong to
	// the next ASCII frame(s) and must not be silently dropped.
	c.framer.Reset()
	resumed := Item{ReceivedAt: item.ReceivedAt, Bytes: exit.ResumeFrom}
	c.process(resumed)
}

func (c *Consumer) processFrame(receivedAt time.Time, frame []byte) {
	computed, actual, ok, err := nmea.Validate(frame)
	if err != nil {
		kind := nmea.ErrorKindChecksumMissing
		if errors.Is(err, nmea.ErrChecksumMalformed) {
			kind = nmea.ErrorKindChecksumMalformed
		}
		c.writeRawAndError(receivedAt, frame, "", false, kind, nmea.Prefix(frame), "", "", err.Error())
		return
	}
	if !ok {
		c.writeRawAndError(receivedAt, frame, nmea.Prefix(frame), false, nmea.ErrorKindChecksumMismatch,
			nmea.Prefix(frame), computed, actual, "checksum mismatch")
		return
	}

	prefix, rec, err := c.router.Route(frame, c.latchedConfig.Load())
	if err != nil {
		c.writeRawAndError(receivedAt, frame, prefix, true, classifyParseError(err), prefix, "", "", err.Error())
		return
	}

	rec.ReceivedAt = receivedAt
	c.writeRaw(nmea.RawLine{
		ReceivedAt:    receivedAt,
		Bytes:         append([]byte(nil), frame...),
		Outcome:       nmea.OutcomeOK,
		Prefix:        prefix,
		ChecksumValid: true,
	})
	if err := c.store.WriteParsed(rec); err != nil {
		c.config.LogFunc("# consumer: store write failed: %v\n", err)
	}
	if err := c.exporter.AppendLine(prefix, receivedAt, frame); err != nil {
		c.config.LogFunc("# consumer: file export failed: %v\n", err)
	}
	if rec.Kind == nmea.KindPnori && rec.Pnori != nil {
		c.latchedConfig.Store(rec.Pnori)
	}
	c.beginBatchIfNeeded()
}

func (c *Consumer) writeRaw(line nmea.RawLine) {
	if err := c.store.WriteRawLine(line); err != nil {
		c.config.LogFunc("# consumer: store write failed: %v\n", err)
	}
	c.beginBatchIfNeeded()
}

func (c *Consumer) writeRawAndError(receivedAt time.Time, frame []byte, prefix string, checksumValid bool, kind nmea.ErrorKind, attemptedPrefix, expected, actual, detail string) {
	c.writeRaw(nmea.RawLine{
		ReceivedAt:    receivedAt,
		Bytes:         append([]byte(nil), frame...),
		Outcome:       nmea.OutcomeFail,
		Prefix:        prefix,
		ChecksumValid: checksumValid,
		ErrorMessage:  detail,
	})
	if err := c.store.WriteParseError(nmea.ParseError{
		ReceivedAt:       receivedAt,
		Bytes:            append([]byte(nil), frame...),
		Kind:             kind,
		AttemptedPrefix:  attemptedPrefix,
		ExpectedChecksum: expected,
		ActualChecksum:   actual,
		Detail:           detail,
	}); err != nil {
		c.config.LogFunc("# consumer: store write failed: %v\n", err)
	}
}

func (c *Consumer) writeParseError(receivedAt time.Time, frame []byte, kind nmea.ErrorKind, detail string) {
	if err := c.store.WriteParseError(nmea.ParseError{
		ReceivedAt: receivedAt,
		Bytes:      append([]byte(nil), frame...),
		Kind:       kind,
		Detail:     detail,
	}); err != nil {
		c.config.LogFunc("# consumer: store write failed: %v\n", err)
	}
	c.beginBatchIfNeeded()
}

func blobSizeMessage(n int) string {
	return fmt.Sprintf("binary blob closed, %d bytes", n)
}

// classifyParseError maps a parser/router error into the parse_errors.error_kind taxonomy
// of §7, inspecting the sentinel chain rather than string-matching messages.
func classifyParseError(err error) nmea.ErrorKind {
	switch {
	case errors.Is(err, nmea.ErrUnknownPrefix):
		return nmea.ErrorKindUnknownPrefix
	case errors.Is(err, parser.ErrFieldCount):
		return nmea.ErrorKindFieldCount
	case errors.Is(err, parser.ErrMissingTag):
		return nmea.ErrorKindMissingTag
	case errors.Is(err, parser.ErrFieldRange):
		return nmea.ErrorKindFieldRange
	case errors.Is(err, nmea.ErrFieldEmpty), errors.Is(err, nmea.ErrFieldNotNumeric),
		errors.Is(err, nmea.ErrFieldBadDate), errors.Is(err, nmea.ErrFieldBadTime),
		errors.Is(err, nmea.ErrFieldBadHex):
		return nmea.ErrorKindFieldFormat
	default:
		return nmea.ErrorKindFieldFormat
	}
}
