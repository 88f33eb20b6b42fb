package expr

import "errors"

var (
	// ErrShape indicates a construction-time mismatch between a tag's
	// required arity or inline fields and what was supplied. It is raised
	// immediately by the constructor, never deferred to encoding.
	ErrShape = errors.New("expr: shape mismatch")
)
