// Package bitpack packs ordered lists of small non-negative integers into the
// fewest bytes the widest value allows, and unpacks them again.
//
// Every value in a packed payload uses the same bit width, chosen from the
// largest value in the list. Values are written most-significant-bit first
// into one continuous bitstream; the last byte is zero-filled on its low end.
//
// A decoded group equal to zero is treated as padding and dropped. Zero can
// therefore never round-trip as data: encode real identifiers starting at 1.
package bitpack

import (
	"math/bits"

	"github.com/xiv-cac/cac/internal/cacerr"
)

const (
	// MaxWidth is the widest group the packer emits or the unpacker reads.
	// It keeps the 64-bit accumulator from overflowing (7 buffered bits plus
	// one group always fit).
	MaxWidth = 32

	// MaxIdentifier is the largest value Encode accepts.
	MaxIdentifier int64 = 1<<MaxWidth - 1
)

// Width returns the number of bits needed to represent every value in
// [0, maxID], with a floor of 1.
func Width(maxID int) int {
	if maxID <= 0 {
		return 1
	}
	return bits.Len(uint(maxID))
}

// Encode packs ids into bytes and returns the payload with the bit width used.
//
// An empty list yields an empty payload and width 0; callers decide how to
// represent that case. Negative values or values above MaxIdentifier fail
// with an INVALID_IDENTIFIER error and nothing is returned.
func Encode(ids []int) ([]byte, int, error) {
	if len(ids) == 0 {
		return []byte{}, 0, nil
	}

	maxID := 0
	for i, id := range ids {
		if id < 0 || int64(id) > MaxIdentifier {
			return nil, 0, cacerr.New(cacerr.CodeInvalidIdentifier, id,
				"identifier at index %d must be in [0, %d]", i, MaxIdentifier)
		}
		if id > maxID {
			maxID = id
		}
	}
	width := Width(maxID)

	out := make([]byte, 0, (len(ids)*width+7)/8)
	var acc uint64
	var n int // buffered bits in acc
	for _, id := range ids {
		acc = acc<<width | uint64(id)
		n += width
		for n >= 8 {
			n -= 8
			out = append(out, byte(acc>>n))
		}
		acc &= 1<<n - 1
	}
	if n > 0 {
		out = append(out, byte(acc<<(8-n)))
	}

	return out, width, nil
}

// Decode unpacks width-bit groups from payload.
//
// Trailing bits shorter than one group are discarded, and groups equal to
// zero are dropped. Widths outside [1, MaxWidth] yield an empty list; the
// envelope layer rejects them before they get here.
func Decode(payload []byte, width int) []int {
	ids := []int{}
	if width < 1 || width > MaxWidth {
		return ids
	}

	mask := uint64(1)<<width - 1
	var acc uint64
	var n int
	for _, b := range payload {
		acc = acc<<8 | uint64(b)
		n += 8
		for n >= width {
			n -= width
			if v := int(acc >> n & mask); v > 0 {
				ids = append(ids, v)
			}
		}
		acc &= 1<<n - 1
	}

	return ids
}
