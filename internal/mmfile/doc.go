// Package mmfile provides platform-specific helpers for memory-mapping
// encoded expression files. On non-unix platforms Map degrades to reading
// the whole file into memory.
package mmfile
