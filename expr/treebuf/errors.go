package treebuf

import "errors"

var (
	// ErrCorrupt indicates a buffer that does not decompose into
	// self-describing nodes: a truncated or out-of-range length field, an
	// unrecognized tag byte, or a child partition that does not land exactly
	// on the node's arity. Decode errors wrap ErrCorrupt with detail.
	ErrCorrupt = errors.New("treebuf: corrupt encoding")

	// ErrBadNode indicates encoder misuse: finishing a node whose tag is
	// invalid or whose inline field count does not match the tag's shape.
	ErrBadNode = errors.New("treebuf: node does not match tag shape")
)
