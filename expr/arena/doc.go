// Package arena provides a short-lived construction and rewriting scope for
// expression trees.
//
// # Overview
//
// A Ctx owns a flat, growable table of nodes; handles are indices into that
// table, so growth never invalidates them and traversals are simple
// index-driven loops. Two node forms exist:
//
//   - structural: a tag, optional inline variable, and child handles. Built
//     with Alloc; no bytes are produced until Encode.
//   - external reference: a borrowed, already-encoded subtree
//     (expr.AnyExprRef) standing in as a leaf. Built with ReferenceExternal;
//     the referenced bytes are never copied until Encode splices them.
//
// Intermediate rewriting is therefore pure handle manipulation: allocating
// nodes is an append to the table, and sharing an encoded subtree across
// many candidate trees costs one leaf per use.
//
// DeepCopy detaches a tree from all borrowed data: external leaves are
// decoded level by level and rebuilt as structural nodes, so the result can
// outlive every buffer the original borrowed, and encodes to exactly the
// same bytes.
//
// # Lifecycle and ownership
//
// A Ctx is created per build/rewrite episode and released wholesale with
// Close; afterwards every operation fails with ErrClosed. Handles are
// meaningful only with the Ctx that produced them — a handle from another
// context is at best out of range (ErrBadHandle) and at worst names an
// unrelated node, which is on the caller, exactly as with any index.
//
// A Ctx is a single logical owner: callers must serialize access to it.
// Parallel work should use one Ctx per unit and share only finalized
// expr.AnyExpr values, which are immutable and safe for concurrent readers.
package arena
