package nmea

import (
	"errors"
	"fmt"
)

// Errors returned while validating a frame's checksum. These are distinct from the
// ErrorKind values written to parse_errors: they are the low-level signals the framer
// and checksum verifier use before a parser ever sees the frame.
var (
	// ErrChecksumMissing indicates the frame has no `*` terminator.
	ErrChecksumMissing = errors.New("nmea: checksum missing, no '*' in frame")
	// ErrChecksumMalformed indicates `*` is followed by fewer than 2 characters.
	ErrChecksumMalformed = errors.New("nmea: checksum malformed, '*' not followed by 2 chars")
)

const hexDigits = "0123456789ABCDEF"

// Checksum computes the NMEA-0183 checksum: the 8-bit XOR of every byte strictly between
// `$` and `*`, rendered as two uppercase hex characters. frame must start with `$`.
func Checksum(frame []byte) (string, error) {
	if len(frame) == 0 || frame[0] != '$' {
		return "", errors.New("nmea: frame does not start with '$'")
	}
	var sum byte
	for _, b := range frame[1:] {
		if b == '*' {
			return string([]byte{hexDigits[sum>>4], hexDigits[sum&0x0f]}), nil
		}
		sum ^= b
	}
	return "", ErrChecksumMissing
}

// statedChecksum extracts the two characters following `*` in frame and returns them uppercased.
// It only checks that two characters are present, not that they are hex digits: a
// non-hex stated value can never equal the computed checksum (which is always hex), so
// it surfaces as a CHECKSUM_MISMATCH rather than a separate malformed case.
func statedChecksum(frame []byte, starIndex int) (string, error) {
	if starIndex < 0 || starIndex+2 >= len(frame) {
		return "", ErrChecksumMalformed
	}
	hi, lo := frame[starIndex+1], frame[starIndex+2]
	return string([]byte{upperHex(hi), upperHex(lo)}), nil
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func upperHex(b byte) byte {
	if b >= 'a' && b <= 'f' {
		return b - ('a' - 'A')
	}
	return b
}

// Validate reports whether the computed checksum of frame matches the stated one,
// case-insensitively, and returns both for diagnostic purposes.
func Validate(frame []byte) (computed string, actual string, ok bool, err error) {
	starIndex := indexByte(frame, '*')
	if starIndex == -1 {
		return "", "", false, ErrChecksumMissing
	}
	actual, err = statedChecksum(frame, starIndex)
	if err != nil {
		return "", "", false, err
	}
	var sum byte
	for _, b := range frame[1:starIndex] {
		sum ^= b
	}
	computed = string([]byte{hexDigits[sum>>4], hexDigits[sum&0x0f]})
	return computed, actual, computed == actual, nil
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

// Serialize renders prefix and comma-joined fields into a complete `$PREFIX,...*HH` frame
// without a line terminator, computing and appending the checksum.
func Serialize(prefix string, fields []string) ([]byte, error) {
	buf := make([]byte, 0, 64)
	buf = append(buf, '$')
	buf = append(buf, prefix...)
	for _, f := range fields {
		buf = append(buf, ',')
		buf = append(buf, f...)
	}
	var sum byte
	for _, b := range buf[1:] {
		sum ^= b
	}
	buf = append(buf, '*', hexDigits[sum>>4], hexDigits[sum&0x0f])
	return buf, nil
}

// errFrameTooLarge is returned by the Framer when an in-progress frame exceeds MaxFrameSize.
var errFrameTooLarge = fmt.Errorf("nmea: frame exceeds max size of %d bytes", MaxFrameSize)
