package treebuf

import (
	"fmt"

	"github.com/BoyeGuillaume/hyperion/expr/variant"
	"github.com/BoyeGuillaume/hyperion/internal/buf"
)

// Encoder accumulates encoded nodes in an append-only buffer.
//
// Usage: record Len() before appending a node's children (either by encoding
// them through the same Encoder or by splicing pre-encoded spans), then call
// FinishNode with that mark to close the node. Bytes written are never
// rewritten.
type Encoder struct {
	b []byte
}

// initialEncoderCapacity covers small expressions without reallocation;
// a leaf node is 2 bytes.
const initialEncoderCapacity = 64

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{b: make([]byte, 0, initialEncoderCapacity)}
}

// Len returns the number of bytes written so far. Use it as the mark for the
// next node before appending that node's children.
func (e *Encoder) Len() int {
	return len(e.b)
}

// Bytes returns the underlying buffer. The slice aliases the encoder's
// storage and must not be modified; callers that finalize an encoding
// typically stop using the encoder afterwards.
func (e *Encoder) Bytes() []byte {
	return e.b
}

// Splice appends an already-encoded node verbatim. Because the encoding is
// deterministic, a previously encoded subtree is already in canonical form;
// copying its bytes is equivalent to re-encoding it.
func (e *Encoder) Splice(span []byte) {
	e.b = append(e.b, span...)
}

// FinishNode closes the node whose children occupy the buffer from mark to
// the current position: it appends the inline fields, the tag byte, and the
// trailing payload length. Returns ErrBadNode when tag is not a valid tag,
// the field count does not match the tag's shape, or mark is out of range.
func (e *Encoder) FinishNode(tag variant.Tag, mark int, fields ...uint64) error {
	if !variant.Valid(tag) {
		return fmt.Errorf("%w: invalid tag byte 0x%02x", ErrBadNode, uint8(tag))
	}
	if len(fields) != variant.NumFields(tag) {
		return fmt.Errorf("%w: %s takes %d inline fields, got %d",
			ErrBadNode, tag, variant.NumFields(tag), len(fields))
	}
	if mark < 0 || mark > len(e.b) {
		return fmt.Errorf("%w: mark %d outside buffer of %d bytes", ErrBadNode, mark, len(e.b))
	}
	for _, f := range fields {
		e.b = appendUvarint(e.b, f)
	}
	e.b = append(e.b, byte(tag))
	e.b = appendUvarint(e.b, uint64(len(e.b)-mark))
	return nil
}

// Node is the one-level decoding of an encoded node. Child and span slices
// alias the decoded buffer; producing a Node copies nothing.
type Node struct {
	// Tag is the node's kind.
	Tag variant.Tag

	// Fields holds the inline integer fields, in field order. Only the
	// first NumFields entries are meaningful.
	Fields [1]uint64

	// NumFields is the number of valid entries in Fields.
	NumFields int

	// Children holds the encoded span of each child, in child order. Only
	// the first NumChildren entries are meaningful.
	Children [variant.MaxArity][]byte

	// NumChildren is the node's arity.
	NumChildren int

	// Start is the offset of the node's first byte within the buffer passed
	// to DecodeOne. A span that is exactly one node has Start == 0.
	Start int

	// Span is the node's full byte span, including the trailing length.
	Span []byte
}

// DecodeOne decodes the node ending at the last byte of b. The prefix of b
// before the node is ignored (Start reports where the node begins), which is
// what allows child spans to be recovered right to left.
//
// All failures wrap ErrCorrupt; no offset is dereferenced before it is
// bounds-checked, and no partial node is ever returned.
func DecodeOne(b []byte) (Node, error) {
	payLen, lenSize, ok := consumeUvarint(b)
	if !ok {
		return Node{}, fmt.Errorf("%w: truncated or malformed length field", ErrCorrupt)
	}
	if !buf.FitsInt(payLen) {
		return Node{}, fmt.Errorf("%w: length field %d overflows", ErrCorrupt, payLen)
	}
	end := len(b) - lenSize // end of payload
	start := end - int(payLen)
	if payLen < 1 || !buf.CheckSpan(len(b), start, end) {
		return Node{}, fmt.Errorf("%w: length field %d exceeds buffer", ErrCorrupt, payLen)
	}

	tag := variant.Tag(b[end-1])
	if !variant.Valid(tag) {
		return Node{}, fmt.Errorf("%w: unrecognized tag byte 0x%02x", ErrCorrupt, uint8(tag))
	}

	n := Node{
		Tag:         tag,
		NumFields:   variant.NumFields(tag),
		NumChildren: variant.Arity(tag),
		Start:       start,
		Span:        b[start:],
	}

	// Inline fields sit between the children and the tag byte; they were
	// appended in field order, so decoding from the right yields them in
	// reverse.
	p := end - 1
	for i := n.NumFields - 1; i >= 0; i-- {
		v, sz, ok := consumeUvarint(b[start:p])
		if !ok {
			return Node{}, fmt.Errorf("%w: malformed inline field of %s node", ErrCorrupt, tag)
		}
		n.Fields[i] = v
		p -= sz
	}

	// The remaining payload prefix must partition into exactly arity child
	// spans, recovered right to left through each child's trailing length.
	cend := p
	for i := n.NumChildren - 1; i >= 0; i-- {
		clen, csz, ok := consumeUvarint(b[start:cend])
		if !ok {
			return Node{}, fmt.Errorf("%w: truncated child %d of %s node", ErrCorrupt, i, tag)
		}
		if !buf.FitsInt(clen) || clen < 1 {
			return Node{}, fmt.Errorf("%w: child %d of %s node has bad length %d", ErrCorrupt, i, tag, clen)
		}
		cstart := cend - csz - int(clen)
		if cstart < start {
			return Node{}, fmt.Errorf("%w: child %d of %s node overruns its parent", ErrCorrupt, i, tag)
		}
		n.Children[i] = b[cstart:cend]
		cend = cstart
	}
	if cend != start {
		return Node{}, fmt.Errorf("%w: %d leftover bytes in %s node child partition", ErrCorrupt, cend-start, tag)
	}
	return n, nil
}

// PeekTag returns the tag of the node ending at the last byte of b without
// decoding fields or children.
func PeekTag(b []byte) (variant.Tag, error) {
	payLen, lenSize, ok := consumeUvarint(b)
	if !ok {
		return 0, fmt.Errorf("%w: truncated or malformed length field", ErrCorrupt)
	}
	end := len(b) - lenSize
	if payLen < 1 || !buf.FitsInt(payLen) || !buf.CheckSpan(len(b), end-1, end) {
		return 0, fmt.Errorf("%w: length field %d exceeds buffer", ErrCorrupt, payLen)
	}
	tag := variant.Tag(b[end-1])
	if !variant.Valid(tag) {
		return 0, fmt.Errorf("%w: unrecognized tag byte 0x%02x", ErrCorrupt, uint8(tag))
	}
	return tag, nil
}

// validateStackCapacity pre-sizes the work list; typical expressions are
// well under this deep.
const validateStackCapacity = 64

// Validate checks that b is exactly one well-formed encoded tree: it
// decomposes fully into self-describing nodes with no leftover or
// overlapping bytes, ending at the buffer's last byte. This is the entry
// point for untrusted input.
//
// Traversal uses an explicit work list, so arbitrarily deep trees do not
// exhaust the call stack.
func Validate(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("%w: empty buffer", ErrCorrupt)
	}
	stack := make([][]byte, 1, validateStackCapacity)
	stack[0] = b
	for len(stack) > 0 {
		span := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, err := DecodeOne(span)
		if err != nil {
			return err
		}
		if n.Start != 0 {
			return fmt.Errorf("%w: %d bytes before root node", ErrCorrupt, n.Start)
		}
		for i := 0; i < n.NumChildren; i++ {
			stack = append(stack, n.Children[i])
		}
	}
	return nil
}
