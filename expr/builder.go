package expr

import (
	"fmt"
	"math"

	"github.com/BoyeGuillaume/hyperion/expr/treebuf"
	"github.com/BoyeGuillaume/hyperion/expr/variant"
)

// Builder is a structural expression tree under construction. Builders are
// values: composing them allocates only the child slices, and nothing is
// encoded until Encode is called. A Builder child may also be a borrowed,
// already-encoded subtree (see Ref), which Encode splices in verbatim.
//
// The zero Builder is invalid; use the typed constructors or NewNode.
type Builder struct {
	tag  variant.Tag
	vr   Variable
	kids []Builder
	ref  AnyExprRef
	kind builderKind
}

type builderKind uint8

const (
	builderInvalid builderKind = iota
	builderStructural
	builderExternal
)

// NewNode constructs a node of the given tag, enforcing its shape: the
// number of inline fields and children must match the tag exactly, children
// must themselves be valid builders, and field values must fit the 32-bit
// inline payload. Violations fail immediately with an error wrapping
// ErrShape.
//
// The typed constructors below cover every tag; NewNode exists for callers
// that drive construction from data, such as syntax front ends.
func NewNode(tag variant.Tag, fields []uint64, kids ...Builder) (Builder, error) {
	if !variant.Valid(tag) {
		return Builder{}, fmt.Errorf("%w: invalid tag byte 0x%02x", ErrShape, uint8(tag))
	}
	if len(fields) != variant.NumFields(tag) {
		return Builder{}, fmt.Errorf("%w: %s takes %d inline fields, got %d",
			ErrShape, tag, variant.NumFields(tag), len(fields))
	}
	if len(kids) != variant.Arity(tag) {
		return Builder{}, fmt.Errorf("%w: %s takes %d children, got %d",
			ErrShape, tag, variant.Arity(tag), len(kids))
	}
	for i, k := range kids {
		if k.kind == builderInvalid {
			return Builder{}, fmt.Errorf("%w: child %d of %s is a zero-value builder", ErrShape, i, tag)
		}
	}
	b := Builder{tag: tag, kind: builderStructural}
	if len(fields) == 1 {
		if fields[0] > math.MaxUint32 {
			return Builder{}, fmt.Errorf("%w: inline field %d exceeds 32 bits", ErrShape, fields[0])
		}
		b.vr = VariableFromRaw(uint32(fields[0]))
	}
	if len(kids) > 0 {
		b.kids = append([]Builder(nil), kids...)
	}
	return b, nil
}

// Ref wraps a borrowed, already-encoded subtree as a builder leaf. Encoding
// copies the referenced bytes verbatim instead of re-deriving them, which is
// sound because an encoded subtree is already in canonical form. The
// referenced buffer must stay alive until Encode has run. A zero ref yields
// an invalid builder, which Encode rejects.
func Ref(r AnyExprRef) Builder {
	if r.IsZero() {
		return Builder{}
	}
	return Builder{ref: r, kind: builderExternal}
}

func node0(tag variant.Tag) Builder {
	return Builder{tag: tag, kind: builderStructural}
}

func node1(tag variant.Tag, a Builder) Builder {
	return Builder{tag: tag, kind: builderStructural, kids: []Builder{a}}
}

func node2(tag variant.Tag, a, b Builder) Builder {
	return Builder{tag: tag, kind: builderStructural, kids: []Builder{a, b}}
}

// Bool constructs the boolean type.
func Bool() Builder { return node0(variant.Bool) }

// Omega constructs the universe type.
func Omega() Builder { return node0(variant.Omega) }

// Never constructs the uninhabited type.
func Never() Builder { return node0(variant.Never) }

// Powerset constructs the powerset type P(inner).
func Powerset(inner Builder) Builder { return node1(variant.Powerset, inner) }

// TupleType constructs the product type of two types.
func TupleType(first, second Builder) Builder { return node2(variant.TupleType, first, second) }

// Var constructs a variable occurrence.
func Var(v Variable) Builder {
	return Builder{tag: variant.Variable, vr: v, kind: builderStructural}
}

// Lambda constructs the abstraction of body over arg.
func Lambda(arg, body Builder) Builder { return node2(variant.Lambda, arg, body) }

// Call constructs the application fn(arg).
func Call(fn, arg Builder) Builder { return node2(variant.Call, fn, arg) }

// If constructs a conditional term.
func If(cond, then, els Builder) Builder {
	return Builder{tag: variant.If, kind: builderStructural, kids: []Builder{cond, then, els}}
}

// Tuple constructs the pair of two terms.
func Tuple(first, second Builder) Builder { return node2(variant.Tuple, first, second) }

// True constructs the true proposition.
func True() Builder { return node0(variant.True) }

// False constructs the false proposition.
func False() Builder { return node0(variant.False) }

// Not constructs the negation of p.
func Not(p Builder) Builder { return node1(variant.Not, p) }

// And constructs the conjunction of two propositions.
func And(l, r Builder) Builder { return node2(variant.And, l, r) }

// Or constructs the disjunction of two propositions.
func Or(l, r Builder) Builder { return node2(variant.Or, l, r) }

// Implies constructs the implication l => r.
func Implies(l, r Builder) Builder { return node2(variant.Implies, l, r) }

// Iff constructs the equivalence l <=> r.
func Iff(l, r Builder) Builder { return node2(variant.Iff, l, r) }

// Equal constructs the equality of two terms.
func Equal(l, r Builder) Builder { return node2(variant.Equal, l, r) }

// Forall constructs the universal quantification of body, binding v at the
// given type.
func Forall(v Variable, dtype, body Builder) Builder {
	return Builder{tag: variant.Forall, vr: v, kind: builderStructural, kids: []Builder{dtype, body}}
}

// Exists constructs the existential quantification of body, binding v at
// the given type.
func Exists(v Variable, dtype, body Builder) Builder {
	return Builder{tag: variant.Exists, vr: v, kind: builderStructural, kids: []Builder{dtype, body}}
}

// Encode runs the codec bottom-up over the builder tree and returns the
// owned, canonical encoding. Traversal uses an explicit stack, so tree depth
// is bounded only by heap. Encoding a tree containing a zero-value Builder
// fails with ErrShape.
func (b Builder) Encode() (AnyExpr, error) {
	enc := treebuf.NewEncoder()
	if err := encodeInto(enc, &b); err != nil {
		return AnyExpr{}, err
	}
	return FromEncoder(enc), nil
}

// encodeFrame is one step of the iterative post-order encode: an enter step
// schedules the node's children, an exit step finishes the node over the
// bytes they produced.
type encodeFrame struct {
	node *Builder
	mark int
	exit bool
}

// encodeStackCapacity pre-sizes the traversal stack for typical depths.
const encodeStackCapacity = 32

func encodeInto(enc *treebuf.Encoder, root *Builder) error {
	stack := make([]encodeFrame, 1, encodeStackCapacity)
	stack[0] = encodeFrame{node: root}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			var err error
			if variant.NumFields(f.node.tag) > 0 {
				err = enc.FinishNode(f.node.tag, f.mark, uint64(f.node.vr.Raw()))
			} else {
				err = enc.FinishNode(f.node.tag, f.mark)
			}
			if err != nil {
				return err
			}
			continue
		}

		switch f.node.kind {
		case builderExternal:
			enc.Splice(f.node.ref.data)
		case builderStructural:
			// Children before parent: revisit this node once they are done.
			stack = append(stack, encodeFrame{node: f.node, mark: enc.Len(), exit: true})
			for i := len(f.node.kids) - 1; i >= 0; i-- {
				stack = append(stack, encodeFrame{node: &f.node.kids[i]})
			}
		default:
			return fmt.Errorf("%w: encode of zero-value builder", ErrShape)
		}
	}
	return nil
}
