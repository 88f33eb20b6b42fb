package arena

import "errors"

var (
	// ErrClosed indicates an operation on a context after Close.
	ErrClosed = errors.New("arena: context closed")

	// ErrBadHandle indicates a handle that does not name a node in this
	// context (out of range, or from another context).
	ErrBadHandle = errors.New("arena: bad handle")
)
