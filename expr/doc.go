// Package expr is the representation layer for a unified formal language in
// which types, terms, and logical formulas are all expressions built from a
// closed set of node kinds.
//
// # Overview
//
// An expression tree lives in one of three forms:
//
//   - Builder: a lightweight structural tree assembled through the typed
//     constructors (True, And, Forall, ...) or the shape-checked NewNode.
//     Encoding a Builder produces an AnyExpr.
//   - AnyExpr: an owned, immutable, self-contained encoded buffer. This is
//     what callers store, compare, and hand across boundaries. Equality is
//     byte equality, which is sound because the encoding is deterministic.
//   - AnyExprRef: a borrowed, zero-copy window over bytes holding a valid
//     encoding. A ref decodes one level at a time through View; child
//     fields of a View are further refs into the same buffer.
//
// For construction and rewriting at scale, see the arena subpackage, which
// lets freshly built structure reference already-encoded subtrees without
// copying them.
//
// # Validity boundary
//
// AnyExprRef values are only obtainable over validated bytes: Over and
// FromBytes run full validation, AsRef wraps a buffer this package encoded,
// and a View's children are valid whenever their parent is. Inside that
// boundary View and Type do not return errors; handing them hand-rolled
// invalid bytes is a programming error and panics. Untrusted input always
// enters through Over, FromBytes, or the exprio readers.
//
// # What this package does not check
//
// Only shape (arity and inline fields) is enforced here. Domain
// well-formedness — for example that a quantifier's bound type is actually
// type-shaped — is the concern of a higher validation layer that consumes
// Views.
package expr
