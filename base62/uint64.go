package base62

import (
	"fmt"
	"math/bits"
)

// EncodeUint64 converts v to its shortest Base62 representation.
// Zero encodes as "0"; any other value has no leading zero symbol.
func EncodeUint64(v uint64) string {
	var buf [maxDigits]byte
	return string(AppendUint64(buf[:0], v))
}

// AppendUint64 appends the Base62 representation of v to dst and returns
// the extended slice.
func AppendUint64(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, charset[0])
	}

	started := false
	for place := topPlace; place > 0; place /= base {
		q := v / place
		if q != 0 {
			started = true
		}
		if started {
			dst = append(dst, charset[q])
		}
		v -= q * place
	}
	return dst
}

// DecodeUint64 converts a Base62 string back to the integer it encodes.
func DecodeUint64(s string) (uint64, error) {
	if len(s) == 0 {
		return 0, ErrEmptyInput
	}

	var acc uint64
	for i := 0; i < len(s); i++ {
		d, ok := digit(s[i])
		if !ok {
			return 0, fmt.Errorf("%w: %q at offset %d", ErrInvalidChar, s[i], i)
		}

		hi, lo := bits.Mul64(acc, base)
		if hi != 0 {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		sum, carry := bits.Add64(lo, d, 0)
		if carry != 0 {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		acc = sum
	}
	return acc, nil
}
