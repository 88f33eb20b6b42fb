// Package testutil provides shared fixtures for expression tests: a
// deterministic random tree generator and small corruption helpers.
package testutil

import (
	"math/rand"
	"testing"

	"github.com/BoyeGuillaume/hyperion/expr"
	"github.com/BoyeGuillaume/hyperion/expr/variant"
)

// leafTags are the nullary constructors the generator draws from.
var leafTags = []variant.Tag{
	variant.Bool, variant.Omega, variant.Never, variant.True, variant.False,
}

// innerTags are the constructors with children.
var innerTags = []variant.Tag{
	variant.Powerset, variant.TupleType, variant.Lambda, variant.Call,
	variant.If, variant.Tuple, variant.Not, variant.And, variant.Or,
	variant.Implies, variant.Iff, variant.Equal, variant.Forall, variant.Exists,
}

// RandomBuilder generates a shape-valid expression tree of height at most
// maxDepth, driven by r so callers get reproducible trees from a fixed seed.
func RandomBuilder(r *rand.Rand, maxDepth int) expr.Builder {
	if maxDepth <= 1 || r.Intn(4) == 0 {
		if r.Intn(3) == 0 {
			return expr.Var(randomVariable(r))
		}
		return mustNode(leafTags[r.Intn(len(leafTags))], nil)
	}

	tag := innerTags[r.Intn(len(innerTags))]
	kids := make([]expr.Builder, variant.Arity(tag))
	for i := range kids {
		kids[i] = RandomBuilder(r, maxDepth-1)
	}
	var fields []uint64
	if variant.NumFields(tag) > 0 {
		fields = []uint64{uint64(randomVariable(r).Raw())}
	}
	return mustNode(tag, fields, kids...)
}

func randomVariable(r *rand.Rand) expr.Variable {
	id := uint32(r.Intn(1 << 16))
	if r.Intn(2) == 0 {
		return expr.Internal(id)
	}
	return expr.External(id)
}

func mustNode(tag variant.Tag, fields []uint64, kids ...expr.Builder) expr.Builder {
	b, err := expr.NewNode(tag, fields, kids...)
	if err != nil {
		panic(err) // generator only produces shape-valid nodes
	}
	return b
}

// MustEncode encodes b, failing the test on error.
func MustEncode(t testing.TB, b expr.Builder) expr.AnyExpr {
	t.Helper()
	e, err := b.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return e
}

// Flipped returns a copy of data with the byte at i xor'd against mask.
func Flipped(data []byte, i int, mask byte) []byte {
	out := append([]byte(nil), data...)
	out[i] ^= mask
	return out
}
