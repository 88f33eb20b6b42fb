package expr

import (
	"bytes"
	"fmt"

	"github.com/BoyeGuillaume/hyperion/expr/treebuf"
	"github.com/BoyeGuillaume/hyperion/expr/variant"
)

// AnyExpr owns one finalized encoded buffer. It is immutable after
// construction and safe for concurrent readers; equality is exact byte
// equality between buffers.
type AnyExpr struct {
	data []byte
}

// FromBytes validates b as a complete encoded tree and returns an owned
// AnyExpr over a private copy of it. This is the trusted entry point for
// bytes of unknown provenance (files, wires, foreign buffers).
func FromBytes(b []byte) (AnyExpr, error) {
	if err := treebuf.Validate(b); err != nil {
		return AnyExpr{}, err
	}
	owned := make([]byte, len(b))
	copy(owned, b)
	return AnyExpr{data: owned}, nil
}

// FromEncoder adopts an encoder's buffer as an owned expression without
// copying or re-validating it. The encoder must hold exactly one finished
// tree and must not be touched afterwards. This is the finalization path
// for construction layers (Builder.Encode, the arena context); anything
// else should go through FromBytes.
func FromEncoder(e *treebuf.Encoder) AnyExpr {
	return AnyExpr{data: e.Bytes()}
}

// AsRef borrows the expression as a zero-copy reference to its root node.
func (e AnyExpr) AsRef() AnyExprRef {
	return AnyExprRef{data: e.data}
}

// Bytes returns the encoded buffer. The slice aliases the expression's
// storage and must not be modified.
func (e AnyExpr) Bytes() []byte {
	return e.data
}

// Size returns the encoded size in bytes.
func (e AnyExpr) Size() int {
	return len(e.data)
}

// IsZero reports whether e is the zero value (no buffer). The zero AnyExpr
// holds no tree and must not be viewed.
func (e AnyExpr) IsZero() bool {
	return e.data == nil
}

// Equal reports byte equality with another owned expression. Because the
// encoding is deterministic, this is exactly structural equality.
func (e AnyExpr) Equal(o AnyExpr) bool {
	return bytes.Equal(e.data, o.data)
}

// EqualRef reports byte equality against a borrowed reference.
func (e AnyExpr) EqualRef(r AnyExprRef) bool {
	return bytes.Equal(e.data, r.data)
}

// AnyExprRef is a borrowed window over bytes holding a valid encoding that
// ends at the window's last byte. It carries no ownership; it is valid as
// long as the underlying buffer is (for arena- or mmap-backed buffers, until
// the owner is closed).
type AnyExprRef struct {
	data []byte
}

// Over wraps b as a borrowed reference after validating that it is exactly
// one well-formed encoded tree. No bytes are copied.
func Over(b []byte) (AnyExprRef, error) {
	if err := treebuf.Validate(b); err != nil {
		return AnyExprRef{}, err
	}
	return AnyExprRef{data: b}, nil
}

// Bytes returns the referenced span. It aliases the source buffer and must
// not be modified.
func (r AnyExprRef) Bytes() []byte {
	return r.data
}

// Size returns the referenced span's length in bytes.
func (r AnyExprRef) Size() int {
	return len(r.data)
}

// IsZero reports whether r is the zero value, which references nothing and
// must not be viewed.
func (r AnyExprRef) IsZero() bool {
	return r.data == nil
}

// Type returns the root node's tag without materializing a full view.
func (r AnyExprRef) Type() variant.Tag {
	tag, err := treebuf.PeekTag(r.data)
	if err != nil {
		panic(fmt.Sprintf("expr: ref over invalid encoding: %v", err))
	}
	return tag
}

// View decodes the root node one level: its tag, inline variable (for
// Variable, Forall, and Exists), and child references. No allocation, no
// byte copy.
func (r AnyExprRef) View() View {
	n, err := treebuf.DecodeOne(r.data)
	if err != nil {
		panic(fmt.Sprintf("expr: ref over invalid encoding: %v", err))
	}
	v := View{tag: n.Tag, n: n.NumChildren}
	if n.NumFields > 0 {
		v.vr = VariableFromRaw(uint32(n.Fields[0]))
	}
	for i := 0; i < n.NumChildren; i++ {
		v.kids[i] = AnyExprRef{data: n.Children[i]}
	}
	return v
}

// Equal reports byte equality with another reference. Refs over distinct
// buffers compare equal exactly when the subtrees are structurally
// identical.
func (r AnyExprRef) Equal(o AnyExprRef) bool {
	return bytes.Equal(r.data, o.data)
}

// ToOwned copies the referenced span into a self-contained AnyExpr that no
// longer depends on the source buffer's lifetime.
func (r AnyExprRef) ToOwned() AnyExpr {
	owned := make([]byte, len(r.data))
	copy(owned, r.data)
	return AnyExpr{data: owned}
}

// View is the one-level decoding of a node: its tag plus, per field, either
// an inline scalar or a reference to a child subtree. A View is a value;
// copying it is cheap and allocation-free.
type View struct {
	tag  variant.Tag
	vr   Variable
	kids [variant.MaxArity]AnyExprRef
	n    int
}

// Tag returns the node's kind.
func (v View) Tag() variant.Tag {
	return v.tag
}

// Var returns the inline variable. It is meaningful only for Variable,
// Forall, and Exists nodes and is the zero Variable otherwise.
func (v View) Var() Variable {
	return v.vr
}

// NumChildren returns the node's arity.
func (v View) NumChildren() int {
	return v.n
}

// Child returns the i-th child as a borrowed reference into the same
// buffer. i must be in [0, NumChildren).
func (v View) Child(i int) AnyExprRef {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("expr: child index %d out of range for %s node with %d children", i, v.tag, v.n))
	}
	return v.kids[i]
}
