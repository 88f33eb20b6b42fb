// Package buf provides overflow-safe bounds arithmetic for binary decoders.
//
// Decoders work with lengths read straight out of untrusted bytes; every
// offset computation must be checked before it is used to index a slice.
// These helpers centralize the checks so decode paths stay readable.
package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would
// overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// FitsInt reports whether the unsigned 64-bit value v is representable as a
// non-negative int on this platform. Length fields are decoded as uint64 and
// must pass this check before any slice arithmetic.
func FitsInt(v uint64) bool {
	return v <= uint64(math.MaxInt)
}

// CheckSpan validates that [start, end) is a well-formed window into a buffer
// of bufLen bytes.
func CheckSpan(bufLen, start, end int) bool {
	return 0 <= start && start <= end && end <= bufLen
}
