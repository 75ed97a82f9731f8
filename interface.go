package nmea

import "context"

// LineReader is implemented by the serial transport: it returns at most one raw line (or
// a framed chunk, for the binary-mode path) per call, or a timeout/fatal error.
type LineReader interface {
	ReadLine(ctx context.Context) ([]byte, error)
	Close() error
}

// ParserFunc parses an already checksum-validated frame into a ParsedRecord. cfg is the
// consumer's latched instrument configuration snapshot (nil if none has been seen yet);
// parsers consult it read-only for cross-sentence checks such as cell-index bounds.
type ParserFunc func(frame []byte, cfg *Pnori) (ParsedRecord, error)
