package nmea

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPrefix is returned by Router.Route when no parser is registered for the
// frame's prefix.
var ErrUnknownPrefix = errors.New("nmea: unknown sentence prefix")

// Router dispatches a checksum-validated frame to the ParserFunc registered for its
// prefix. It holds no state beyond the dispatch table built at construction: a pure
// lookup, matching §4.4.
type Router struct {
	parsers map[string]ParserFunc
	// prefixesByLength is every registered prefix, longest first, so that e.g. "PNORI2"
	// is tried before "PNORI" when matching the token between '$' and the first ','.
	prefixesByLength []string
}

// NewRouter builds a Router from prefix -> ParserFunc entries. The table is immutable
// after construction.
func NewRouter(entries map[string]ParserFunc) *Router {
	r := &Router{parsers: make(map[string]ParserFunc, len(entries))}
	for prefix, fn := range entries {
		r.parsers[prefix] = fn
		r.prefixesByLength = append(r.prefixesByLength, prefix)
	}
	// simple insertion sort by descending length; table is small (21 entries) and built once
	for i := 1; i < len(r.prefixesByLength); i++ {
		for j := i; j > 0 && len(r.prefixesByLength[j]) > len(r.prefixesByLength[j-1]); j-- {
			r.prefixesByLength[j], r.prefixesByLength[j-1] = r.prefixesByLength[j-1], r.prefixesByLength[j]
		}
	}
	return r
}

// Prefix extracts the case-sensitive token between '$' and the first ',' (or '*' if the
// sentence has no fields) in frame.
func Prefix(frame []byte) string {
	if len(frame) == 0 || frame[0] != '$' {
		return ""
	}
	for i := 1; i < len(frame); i++ {
		if frame[i] == ',' || frame[i] == '*' {
			return string(frame[1:i])
		}
	}
	return string(frame[1:])
}

// Route resolves frame's prefix against the longest matching registered prefix and
// invokes its ParserFunc. Returns ErrUnknownPrefix if nothing matches.
func (r *Router) Route(frame []byte, cfg *Pnori) (string, ParsedRecord, error) {
	token := Prefix(frame)
	for _, candidate := range r.prefixesByLength {
		if strings.HasPrefix(token, candidate) {
			rec, err := r.parsers[candidate](frame, cfg)
			return candidate, rec, err
		}
	}
	return token, ParsedRecord{}, fmt.Errorf("%w: %q", ErrUnknownPrefix, token)
}
