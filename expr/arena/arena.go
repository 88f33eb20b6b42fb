package arena

import (
	"fmt"
	"math"

	"github.com/BoyeGuillaume/hyperion/expr"
	"github.com/BoyeGuillaume/hyperion/expr/treebuf"
	"github.com/BoyeGuillaume/hyperion/expr/variant"
)

// Handle names a node inside the Ctx that allocated it. Handles are plain
// indices: cheap to copy, invalid in any other context, and unusable after
// the context is closed.
type Handle int32

type nodeKind uint8

const (
	structural nodeKind = iota
	external
)

// node is one slot of the context's flat table.
type node struct {
	kind  nodeKind
	tag   variant.Tag
	vr    expr.Variable
	nkids uint8
	kids  [variant.MaxArity]Handle
	ext   expr.AnyExprRef
}

// Ctx is an arena context: a single-owner scope that allocates expression
// nodes in a flat table and releases them all at once. See the package
// documentation for the lifecycle and ownership rules.
type Ctx struct {
	nodes  []node
	closed bool
}

// initialArenaCapacity sizes the node table for small rewrite episodes
// without reallocation.
const initialArenaCapacity = 16

// New opens an empty arena context.
func New() *Ctx {
	return &Ctx{nodes: make([]node, 0, initialArenaCapacity)}
}

// NumNodes returns the number of nodes allocated so far (including nodes
// no longer reachable from any handle the caller kept).
func (c *Ctx) NumNodes() int {
	return len(c.nodes)
}

// Close releases the arena storage. Every subsequent operation on the
// context fails with ErrClosed; outstanding handles become meaningless.
func (c *Ctx) Close() {
	c.closed = true
	c.nodes = nil
}

func (c *Ctx) check(hs ...Handle) error {
	if c.closed {
		return ErrClosed
	}
	for _, h := range hs {
		if h < 0 || int(h) >= len(c.nodes) {
			return fmt.Errorf("%w: %d not in [0, %d)", ErrBadHandle, h, len(c.nodes))
		}
	}
	return nil
}

func (c *Ctx) push(n node) Handle {
	c.nodes = append(c.nodes, n)
	return Handle(len(c.nodes) - 1)
}

// Alloc inserts a structural node whose children are existing handles and
// returns its handle. Shape is enforced exactly as in expr.NewNode: arity,
// inline field count, and 32-bit field range, failing with expr.ErrShape.
// Nothing is encoded; allocation is an append to the node table.
func (c *Ctx) Alloc(tag variant.Tag, fields []uint64, kids ...Handle) (Handle, error) {
	if err := c.check(kids...); err != nil {
		return 0, err
	}
	if !variant.Valid(tag) {
		return 0, fmt.Errorf("%w: invalid tag byte 0x%02x", expr.ErrShape, uint8(tag))
	}
	if len(fields) != variant.NumFields(tag) {
		return 0, fmt.Errorf("%w: %s takes %d inline fields, got %d",
			expr.ErrShape, tag, variant.NumFields(tag), len(fields))
	}
	if len(kids) != variant.Arity(tag) {
		return 0, fmt.Errorf("%w: %s takes %d children, got %d",
			expr.ErrShape, tag, variant.Arity(tag), len(kids))
	}
	n := node{kind: structural, tag: tag, nkids: uint8(len(kids))}
	if len(fields) == 1 {
		if fields[0] > math.MaxUint32 {
			return 0, fmt.Errorf("%w: inline field %d exceeds 32 bits", expr.ErrShape, fields[0])
		}
		n.vr = expr.VariableFromRaw(uint32(fields[0]))
	}
	copy(n.kids[:], kids)
	return c.push(n), nil
}

// ReferenceExternal wraps a borrowed, already-encoded subtree as an arena
// leaf without copying its bytes. The returned handle can stand as a child
// anywhere in this context; the referenced buffer must stay alive for as
// long as trees containing the leaf are encoded or deep-copied.
func (c *Ctx) ReferenceExternal(ref expr.AnyExprRef) (Handle, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	if ref.IsZero() {
		return 0, fmt.Errorf("%w: zero external reference", expr.ErrShape)
	}
	return c.push(node{kind: external, ext: ref}), nil
}

// HasExternal reports whether any external-reference leaf is reachable from
// h. Useful to assert that a tree is self-contained before its borrowed
// sources go away.
func (c *Ctx) HasExternal(h Handle) (bool, error) {
	if err := c.check(h); err != nil {
		return false, err
	}
	stack := []Handle{h}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &c.nodes[cur]
		if n.kind == external {
			return true, nil
		}
		for i := 0; i < int(n.nkids); i++ {
			stack = append(stack, n.kids[i])
		}
	}
	return false, nil
}

// copyFrame is one step of DeepCopy's iterative post-order rebuild. Enter
// steps schedule children (handles for structural nodes, child refs for the
// levels of an external subtree); exit steps pop the rebuilt children off
// the results stack and allocate the copied node.
type copyFrame struct {
	h     Handle
	ref   expr.AnyExprRef
	isRef bool
	exit  bool

	// Captured at enter time for the exit step.
	tag   variant.Tag
	vr    expr.Variable
	nkids uint8
}

// DeepCopy rebuilds the expression reachable from h as entirely structural
// nodes in this context: every external-reference leaf is decoded and
// reconstructed, so the result borrows nothing and can outlive every buffer
// the original referenced. The copy is observationally transparent —
// Encode(DeepCopy(h)) produces exactly the bytes of Encode(h).
func (c *Ctx) DeepCopy(h Handle) (Handle, error) {
	if err := c.check(h); err != nil {
		return 0, err
	}

	stack := []copyFrame{{h: h}}
	var results []Handle

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			n := node{kind: structural, tag: f.tag, vr: f.vr, nkids: f.nkids}
			// Children were rebuilt in order; pop them in reverse.
			for i := int(f.nkids) - 1; i >= 0; i-- {
				n.kids[i] = results[len(results)-1]
				results = results[:len(results)-1]
			}
			results = append(results, c.push(n))
			continue
		}

		var view expr.View
		if f.isRef {
			view = f.ref.View()
		} else if n := &c.nodes[f.h]; n.kind == external {
			view = n.ext.View()
		} else {
			// Structural node: revisit after its children.
			stack = append(stack, copyFrame{exit: true, tag: n.tag, vr: n.vr, nkids: n.nkids})
			for i := int(n.nkids) - 1; i >= 0; i-- {
				stack = append(stack, copyFrame{h: n.kids[i]})
			}
			continue
		}

		// One decoded level of an external subtree.
		stack = append(stack, copyFrame{
			exit:  true,
			tag:   view.Tag(),
			vr:    view.Var(),
			nkids: uint8(view.NumChildren()),
		})
		for i := view.NumChildren() - 1; i >= 0; i-- {
			stack = append(stack, copyFrame{ref: view.Child(i), isRef: true})
		}
	}

	// Exactly the root remains.
	return results[0], nil
}

// encodeFrame is one step of Encode's iterative post-order traversal.
type encodeFrame struct {
	h    Handle
	mark int
	exit bool
}

// Encode finalizes the expression reachable from h into one owned canonical
// buffer. Children encode before parents, matching the codec's append-only
// contract; an external-reference leaf is spliced in verbatim, since its
// bytes are already the unique canonical form of that subtree. The cost is
// linear in the encoded size — nothing already written is ever recopied.
func (c *Ctx) Encode(h Handle) (expr.AnyExpr, error) {
	if err := c.check(h); err != nil {
		return expr.AnyExpr{}, err
	}

	enc := treebuf.NewEncoder()
	stack := []encodeFrame{{h: h}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			n := &c.nodes[f.h]
			var err error
			if variant.NumFields(n.tag) > 0 {
				err = enc.FinishNode(n.tag, f.mark, uint64(n.vr.Raw()))
			} else {
				err = enc.FinishNode(n.tag, f.mark)
			}
			if err != nil {
				return expr.AnyExpr{}, err
			}
			continue
		}

		n := &c.nodes[f.h]
		if n.kind == external {
			enc.Splice(n.ext.Bytes())
			continue
		}
		stack = append(stack, encodeFrame{h: f.h, mark: enc.Len(), exit: true})
		for i := int(n.nkids) - 1; i >= 0; i-- {
			stack = append(stack, encodeFrame{h: n.kids[i]})
		}
	}

	return expr.FromEncoder(enc), nil
}
