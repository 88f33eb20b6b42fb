// Package exprio persists encoded expressions to files and streams.
//
// # File layout
//
// Every file starts with an 8-byte header:
//
//	offset 0  magic "HYXP"
//	offset 4  format version (currently 1)
//	offset 5  tag-set version the payload was written under
//	offset 6  flags (bit 0: zstd-compressed payload)
//	offset 7  reserved, written as zero
//
// The payload is the expression's encoded buffer, either verbatim or as a
// single zstd frame when the compression flag is set.
//
// # Reading
//
// Read and ReadFrom reject files whose magic, format version, or tag-set
// version do not match, then run full codec validation on the payload before
// handing back an owned expression. Corruption therefore surfaces as the
// codec's own errors, not as a silent bad tree.
//
// Open memory-maps an uncompressed file and exposes the payload as a
// zero-copy reference. The reference aliases the mapping and dies with it:
// after Close, Ref fails with ErrClosed.
package exprio
