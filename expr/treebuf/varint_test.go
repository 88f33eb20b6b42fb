package treebuf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_UvarintRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 2, 3, 10, 42, 63, 64, 65, 100, 127, 128, 129, 255, 256, 300,
		16383, 16384, 1 << 20, 1 << 31, 1<<63 - 1, math.MaxUint64,
	}
	for _, v := range values {
		b := appendUvarint(nil, v)
		require.Len(t, b, uvarintLen(v), "encoded size for %d", v)

		got, n, ok := consumeUvarint(b)
		require.True(t, ok, "decode of %d", v)
		require.Equal(t, v, got)
		require.Equal(t, len(b), n)
	}
}

// Values append sequentially and decode in reverse, which is how fields and
// lengths stack inside a node.
func Test_UvarintSequentialReverse(t *testing.T) {
	values := []uint64{0, 300, 127, 128, math.MaxUint64, 7}
	var b []byte
	for _, v := range values {
		b = appendUvarint(b, v)
	}
	for i := len(values) - 1; i >= 0; i-- {
		v, n, ok := consumeUvarint(b)
		require.True(t, ok)
		require.Equal(t, values[i], v)
		b = b[:len(b)-n]
	}
	require.Empty(t, b)
}

func Test_UvarintKnownBytes(t *testing.T) {
	require.Equal(t, []byte{0x00}, appendUvarint(nil, 0))
	require.Equal(t, []byte{0x00, 0x81}, appendUvarint(nil, 128))
	require.Equal(t, []byte{0x2c, 0x82}, appendUvarint(nil, 300))
}

func Test_UvarintRejectsMalformed(t *testing.T) {
	// Empty input.
	_, _, ok := consumeUvarint(nil)
	require.False(t, ok)

	// All-continuation input never terminates.
	_, _, ok = consumeUvarint([]byte{0x81, 0x81, 0x81})
	require.False(t, ok)

	// Non-canonical leading zero chunk.
	_, _, ok = consumeUvarint([]byte{0x05, 0x80})
	require.False(t, ok)

	// More than 64 bits of payload.
	over := make([]byte, 11)
	over[0] = 0x01
	for i := 1; i < 11; i++ {
		over[i] = 0x81
	}
	_, _, ok = consumeUvarint(over)
	require.False(t, ok)
}
