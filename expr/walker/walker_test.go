package walker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BoyeGuillaume/hyperion/expr"
	"github.com/BoyeGuillaume/hyperion/expr/variant"
)

// fixture builds Implies(And(True, False), Not(Var(%2))).
func fixture(t *testing.T) expr.AnyExpr {
	t.Helper()
	e, err := expr.Implies(
		expr.And(expr.True(), expr.False()),
		expr.Not(expr.Var(expr.External(2))),
	).Encode()
	require.NoError(t, err)
	return e
}

func Test_WalkPreOrder(t *testing.T) {
	e := fixture(t)

	var order []variant.Tag
	Walk(e.AsRef(), func(ref expr.AnyExprRef, _ int) bool {
		order = append(order, ref.Type())
		return true
	})
	require.Equal(t, []variant.Tag{
		variant.Implies, variant.And, variant.True, variant.False,
		variant.Not, variant.Variable,
	}, order)
}

func Test_WalkPrunes(t *testing.T) {
	e := fixture(t)

	var order []variant.Tag
	Walk(e.AsRef(), func(ref expr.AnyExprRef, _ int) bool {
		order = append(order, ref.Type())
		return ref.Type() != variant.And // skip And's children
	})
	require.Equal(t, []variant.Tag{
		variant.Implies, variant.And, variant.Not, variant.Variable,
	}, order)
}

func Test_WalkPostOrder(t *testing.T) {
	e := fixture(t)

	var order []variant.Tag
	WalkPost(e.AsRef(), func(ref expr.AnyExprRef, _ int) bool {
		order = append(order, ref.Type())
		return true
	})
	require.Equal(t, []variant.Tag{
		variant.True, variant.False, variant.And,
		variant.Variable, variant.Not, variant.Implies,
	}, order)
}

func Test_CountAndDepth(t *testing.T) {
	e := fixture(t)
	require.Equal(t, 6, Count(e.AsRef()))
	require.Equal(t, 3, Depth(e.AsRef()))

	leaf, err := expr.True().Encode()
	require.NoError(t, err)
	require.Equal(t, 1, Count(leaf.AsRef()))
	require.Equal(t, 1, Depth(leaf.AsRef()))
}

func Test_ContainsTag(t *testing.T) {
	e := fixture(t)
	require.True(t, ContainsTag(e.AsRef(), variant.False))
	require.True(t, ContainsTag(e.AsRef(), variant.Implies))
	require.False(t, ContainsTag(e.AsRef(), variant.Forall))
}

func Test_Variables(t *testing.T) {
	x, y := expr.Internal(1), expr.External(2)
	e, err := expr.Forall(x, expr.Bool(), expr.Equal(expr.Var(x), expr.Var(y))).Encode()
	require.NoError(t, err)

	require.Equal(t, []expr.Variable{x, y}, Variables(e.AsRef()))
}

// Deep chains must not exhaust the call stack.
func Test_WalkDeepChain(t *testing.T) {
	const depth = 100_000
	b := expr.True()
	for i := 0; i < depth; i++ {
		b = expr.Not(b)
	}
	e, err := b.Encode()
	require.NoError(t, err)

	require.Equal(t, depth+1, Count(e.AsRef()))
	require.Equal(t, depth+1, Depth(e.AsRef()))
}
