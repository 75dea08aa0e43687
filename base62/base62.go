// Package base62 provides a URL-safe Base62 encoding for unsigned 64-bit
// integers and for arbitrary byte slices.
package base62

import (
	"errors"
	"strings"
)

// The character set for Base62 encoding: digits, then uppercase, then lowercase.
const charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	// base is the radix of the encoding
	base = 62

	// maxDigits is the width of the largest encoded uint64 and of every
	// non-final block in an encoded byte string
	maxDigits = 11

	// blockSize is the number of input bytes carried by one block
	blockSize = 8

	// topPlace is 62^10, the largest place value that fits in a uint64
	topPlace uint64 = 839299365868340224

	invalid = 0xFF
)

var (
	ErrEmptyInput          = errors.New("base62: empty input")
	ErrInvalidChar         = errors.New("base62: invalid character in input")
	ErrOverflow            = errors.New("base62: value overflows uint64")
	ErrMalformedTerminator = errors.New("base62: malformed terminator")

	// charToIndex maps every byte to its digit value, or invalid
	charToIndex [256]byte
)

func init() {
	for i := range charToIndex {
		charToIndex[i] = invalid
	}
	for i := 0; i < len(charset); i++ {
		charToIndex[charset[i]] = byte(i)
	}
}

// digit returns the value of the symbol c.
func digit(c byte) (uint64, bool) {
	v := charToIndex[c]
	return uint64(v), v != invalid
}

// readUintBE interprets up to 8 bytes as a big-endian unsigned integer.
func readUintBE(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// appendUintBE appends the low n bytes of v to dst in big-endian order.
func appendUintBE(dst []byte, v uint64, n int) []byte {
	for i := 0; i < n; i++ {
		dst = append(dst, byte(v>>(uint(n-1-i)*8)))
	}
	return dst
}

// padLeft writes s to sb, left-padded with the zero symbol to width.
func padLeft(sb *strings.Builder, s []byte, width int) {
	for i := len(s); i < width; i++ {
		sb.WriteByte(charset[0])
	}
	sb.Write(s)
}
