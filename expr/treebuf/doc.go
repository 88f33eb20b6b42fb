// Package treebuf implements the append-only binary encoding for expression
// trees.
//
// # Layout
//
// A node occupies one contiguous byte span:
//
//	[child 0] ... [child n-1] [inline fields] [tag byte] [payload length]
//
// Children are full encoded nodes, appended in child order. Inline fields
// and the trailing payload length use a base-128 varint written
// least-significant chunk first, so values decode from the end of a slice.
// The payload length counts every byte of the node except the length field
// itself.
//
// The trailing length makes every node self-describing from its last byte:
// given the end offset of a node, its start offset is computable without
// scanning forward, and child spans are recovered right to left by repeating
// this, Arity(tag) times.
//
// # Determinism
//
// The varint encoding is canonical (exactly one byte sequence per value) and
// the layout has no padding or ordering freedom, so structurally identical
// trees always encode to byte-identical spans. Buffer comparison is
// therefore a sound structural equality check, and an already-encoded
// subtree can be spliced into a new buffer verbatim instead of being
// re-derived.
//
// # Append-only contract
//
// Encoding never rewrites bytes: a node's fields, tag, and length are
// appended only after all of its children's bytes. Decoding never copies:
// DecodeOne returns subslices of its input.
//
// # Error handling
//
// Every decode entry point bounds-checks offsets before dereferencing them
// and reports ill-formed input by wrapping ErrCorrupt. No partial node is
// ever returned.
package treebuf
