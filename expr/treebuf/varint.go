package treebuf

// Varint scheme shared by inline fields and trailing length fields.
//
// Values are split into 7-bit chunks, least significant first. The first
// (least significant) chunk is written with the high bit clear; every later
// chunk has the high bit set. Because the terminating chunk sits leftmost,
// a value is decodable from the END of a slice: read bytes right to left,
// accumulating, until a byte with the high bit clear is consumed.
//
// The encoding is canonical: a most-significant chunk is never zero, so each
// value has exactly one byte representation.

// maxVarintLen is the longest encoding of a uint64 (ceil(64/7) chunks).
const maxVarintLen = 10

// appendUvarint appends the reverse-decodable varint encoding of v to dst.
func appendUvarint(dst []byte, v uint64) []byte {
	dst = append(dst, byte(v&0x7f))
	v >>= 7
	for v > 0 {
		dst = append(dst, byte(v&0x7f)|0x80)
		v >>= 7
	}
	return dst
}

// uvarintLen returns the encoded size of v in bytes.
func uvarintLen(v uint64) int {
	n := 1
	for v >>= 7; v > 0; v >>= 7 {
		n++
	}
	return n
}

// consumeUvarint decodes one varint from the end of b. It returns the value,
// the number of bytes consumed, and ok = false when b is exhausted before a
// terminating chunk, the value overflows 64 bits, or the encoding is not
// canonical (a most-significant chunk of zero).
func consumeUvarint(b []byte) (v uint64, n int, ok bool) {
	for i := len(b) - 1; i >= 0; i-- {
		c := b[i]
		if n == 0 && c == 0x80 {
			// Non-canonical: leading zero chunk.
			return 0, 0, false
		}
		if v>>(64-7) != 0 {
			// Next shift would drop significant bits.
			return 0, 0, false
		}
		v = v<<7 | uint64(c&0x7f)
		n++
		if c&0x80 == 0 {
			return v, n, true
		}
	}
	return 0, 0, false
}
