package exprio

import "errors"

var (
	// ErrBadMagic indicates the input does not start with the "HYXP" header.
	ErrBadMagic = errors.New("exprio: bad magic")

	// ErrVersion indicates a format version this reader does not understand.
	ErrVersion = errors.New("exprio: unsupported format version")

	// ErrTagSet indicates the payload was written under a different tag-set
	// version and cannot be decoded safely.
	ErrTagSet = errors.New("exprio: incompatible tag-set version")

	// ErrCompressed indicates an operation that requires a raw payload was
	// attempted on a compressed file (Open cannot map zstd frames).
	ErrCompressed = errors.New("exprio: payload is compressed")

	// ErrClosed indicates use of a Mapped after Close.
	ErrClosed = errors.New("exprio: mapping closed")
)
