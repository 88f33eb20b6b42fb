package exprio

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BoyeGuillaume/hyperion/expr"
	"github.com/BoyeGuillaume/hyperion/expr/treebuf"
	"github.com/BoyeGuillaume/hyperion/internal/testutil"
)

func fixture(t *testing.T) expr.AnyExpr {
	t.Helper()
	x := expr.Var(expr.Internal(7))
	e, err := expr.Forall(expr.Internal(7), expr.Bool(), expr.Implies(x, expr.Equal(x, x))).Encode()
	require.NoError(t, err)
	return e
}

func Test_WriteReadFile(t *testing.T) {
	e := fixture(t)
	path := filepath.Join(t.TempDir(), "forall.hyxp")

	require.NoError(t, Write(path, e))

	got, err := Read(path)
	require.NoError(t, err)
	require.True(t, e.Equal(got))
}

func Test_RoundTripZstd(t *testing.T) {
	r := rand.New(rand.NewSource(0x494f))
	for i := 0; i < 50; i++ {
		e := testutil.MustEncode(t, testutil.RandomBuilder(r, 7))

		var plain, packed bytes.Buffer
		require.NoError(t, WriteTo(&plain, e))
		require.NoError(t, WriteTo(&packed, e, WithZstd()))

		for _, buf := range []*bytes.Buffer{&plain, &packed} {
			got, err := ReadFrom(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			require.True(t, e.Equal(got), "iteration %d", i)
		}
	}
}

func Test_HeaderRejection(t *testing.T) {
	e := fixture(t)
	var buf bytes.Buffer
	require.NoError(t, WriteTo(&buf, e))
	good := buf.Bytes()

	tests := []struct {
		name   string
		mangle func([]byte) []byte
		want   error
	}{
		{"bad magic", func(b []byte) []byte { return testutil.Flipped(b, 0, 0xff) }, ErrBadMagic},
		{"truncated header", func(b []byte) []byte { return b[:5] }, ErrBadMagic},
		{"format version", func(b []byte) []byte { return testutil.Flipped(b, 4, 0x80) }, ErrVersion},
		{"tag-set version", func(b []byte) []byte { return testutil.Flipped(b, 5, 0x80) }, ErrTagSet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFrom(bytes.NewReader(tt.mangle(good)))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func Test_CorruptPayloadSurfacesCodecError(t *testing.T) {
	e := fixture(t)
	var buf bytes.Buffer
	require.NoError(t, WriteTo(&buf, e))

	// Flip a payload byte to an unassigned tag; the codec rejects it.
	mangled := testutil.Flipped(buf.Bytes(), buf.Len()-2, 0xee)
	_, err := ReadFrom(bytes.NewReader(mangled))
	require.Error(t, err)
	require.True(t, errors.Is(err, treebuf.ErrCorrupt) || errors.Is(err, treebuf.ErrBadNode))
}

func Test_OpenMapped(t *testing.T) {
	e := fixture(t)
	path := filepath.Join(t.TempDir(), "mapped.hyxp")
	require.NoError(t, Write(path, e))

	m, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, e.Size(), m.Size())

	ref, err := m.Ref()
	require.NoError(t, err)
	require.True(t, e.EqualRef(ref))
	require.Equal(t, e.AsRef().Type(), ref.Type())

	// Detaching before Close keeps the tree usable afterwards.
	owned := ref.ToOwned()

	require.NoError(t, m.Close())
	require.True(t, e.Equal(owned))

	_, err = m.Ref()
	require.ErrorIs(t, err, ErrClosed)
	require.Equal(t, 0, m.Size())

	// Close is idempotent.
	require.NoError(t, m.Close())
}

func Test_OpenRejectsCompressed(t *testing.T) {
	e := fixture(t)
	path := filepath.Join(t.TempDir(), "packed.hyxp")
	require.NoError(t, Write(path, e, WithZstd()))

	_, err := Open(path)
	require.ErrorIs(t, err, ErrCompressed)

	// The compressed file still reads fine through the stream path.
	got, err := Read(path)
	require.NoError(t, err)
	require.True(t, e.Equal(got))
}

func Test_OpenRejectsBadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.hyxp")
	require.NoError(t, os.WriteFile(path, []byte("not a header at all"), 0o644))

	_, err := Open(path)
	require.ErrorIs(t, err, ErrBadMagic)
}
