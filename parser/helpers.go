// Package parser implements the 21 NMEA-0183 sentence variants emitted by the
// instrument, one file per family, mirroring the one-file-per-device-variant layout the
// teacher library uses for its Actisense device implementations. Each exported Parse*
// function is a pure function: bytes in, ParsedRecord or error out, never touching I/O.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aldas/adcp-ingest"
)

// ErrFieldCount is wrapped into a descriptive error when a positional sentence does not
// carry the exact number of fields its variant requires.
var ErrFieldCount = errors.New("parser: unexpected field count")

// ErrMissingTag is wrapped when a tagged sentence is missing one of its required keys.
var ErrMissingTag = errors.New("parser: missing required tag")

// ErrFieldRange is wrapped when a decoded field is out of its documented valid range.
var ErrFieldRange = errors.New("parser: field out of range")

// fields splits a checksum-validated frame into its comma-separated field tokens,
// stripping the leading `$PREFIX` token and the trailing `*hh` checksum.
func fields(frame []byte) []string {
	body := frame
	if len(body) > 0 && body[0] == '$' {
		body = body[1:]
	}
	if star := strings.IndexByte(string(body), '*'); star != -1 {
		body = body[:star]
	}
	parts := strings.Split(string(body), ",")
	if len(parts) <= 1 {
		return nil
	}
	return parts[1:] // drop the prefix token itself
}

// requireFieldCount returns ErrFieldCount if got != want.
func requireFieldCount(prefix string, got []string, want int) error {
	if len(got) != want {
		return fmt.Errorf("%w: %s wants %d fields, got %d", ErrFieldCount, prefix, want, len(got))
	}
	return nil
}

// tags splits a tagged sentence's fields into a KEY=VALUE map. Order independence is the
// point: callers look keys up by name, never by position.
func tags(frame []byte) map[string]string {
	parts := fields(frame)
	out := make(map[string]string, len(parts))
	for _, p := range parts {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		out[kv[0]] = kv[1]
	}
	return out
}

// requireTags returns ErrMissingTag naming the first required key absent from m.
func requireTags(prefix string, m map[string]string, required ...string) error {
	for _, k := range required {
		if _, ok := m[k]; !ok {
			return fmt.Errorf("%w: %s requires tag %q", ErrMissingTag, prefix, k)
		}
	}
	return nil
}

// number decodes field i of fs as a Number, wrapping any format error with field context.
func number(prefix string, fs []string, i int) (nmea.Number, error) {
	n, err := nmea.DecodeNumber(fs[i])
	if err != nil {
		return nmea.Number{}, fmt.Errorf("%s field %d: %w", prefix, i, err)
	}
	return n, nil
}

// inRange validates a present Number against [lo, hi], inclusive on both ends. An absent
// Number always passes: an invalid marker must never fail the sentence (§4.3).
func inRange(n nmea.Number, lo, hi float64) bool {
	if !n.Present {
		return true
	}
	return n.Value >= lo && n.Value <= hi
}

// inRangeExclusiveHi validates a present Number against [lo, hi).
func inRangeExclusiveHi(n nmea.Number, lo, hi float64) bool {
	if !n.Present {
		return true
	}
	return n.Value >= lo && n.Value < hi
}
