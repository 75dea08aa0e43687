package base62

import (
	"fmt"
	"strings"
)

// EncodeBytes converts a byte slice to a Base62 encoded string.
//
// The input is split into 8-byte big-endian blocks. Every block but the
// last is written as exactly 11 symbols; the last is written unpadded and
// followed by one symbol giving its length in bytes (0-8).
func EncodeBytes(data []byte) string {
	if len(data) == 0 {
		return string([]byte{charset[0], charset[0]})
	}

	var output strings.Builder
	output.Grow(MaxEncodedLen(len(data)))

	var buf [maxDigits]byte
	for offset := 0; offset < len(data); offset += blockSize {
		remaining := len(data) - offset
		if remaining > blockSize {
			block := readUintBE(data[offset : offset+blockSize])
			padLeft(&output, AppendUint64(buf[:0], block), maxDigits)
			continue
		}

		block := readUintBE(data[offset:])
		output.Write(AppendUint64(buf[:0], block))
		output.WriteByte(charset[remaining])
	}

	return output.String()
}

// DecodeBytes converts a string produced by EncodeBytes back to the
// original byte slice.
func DecodeBytes(encoded string) ([]byte, error) {
	if len(encoded) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 symbols, got %d", ErrEmptyInput, len(encoded))
	}

	contentLength := len(encoded) - 1
	lastBlockSize, err := DecodeUint64(encoded[contentLength:])
	if err != nil {
		return nil, fmt.Errorf("terminator: %w", err)
	}
	if lastBlockSize > blockSize {
		return nil, fmt.Errorf("%w: %q decodes to %d", ErrMalformedTerminator, encoded[contentLength], lastBlockSize)
	}

	result := make([]byte, 0, (contentLength/maxDigits+1)*blockSize)
	for offset := 0; offset < contentLength; offset += maxDigits {
		remaining := contentLength - offset
		if remaining <= maxDigits {
			block, err := DecodeUint64(encoded[offset:contentLength])
			if err != nil {
				return nil, fmt.Errorf("block at offset %d: %w", offset, err)
			}
			result = appendUintBE(result, block, int(lastBlockSize))
			continue
		}

		block, err := DecodeUint64(encoded[offset : offset+maxDigits])
		if err != nil {
			return nil, fmt.Errorf("block at offset %d: %w", offset, err)
		}
		result = appendUintBE(result, block, blockSize)
	}

	return result, nil
}

// MaxEncodedLen returns the maximum length of EncodeBytes output for an
// input of n bytes.
func MaxEncodedLen(n int) int {
	if n <= 0 {
		return 2
	}
	blocks := (n + blockSize - 1) / blockSize
	return blocks*maxDigits + 1
}

// Valid reports whether s is a well-formed encoded byte string.
func Valid(s string) bool {
	_, err := DecodeBytes(s)
	return err == nil
}
