package exprio

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/BoyeGuillaume/hyperion/expr"
	"github.com/BoyeGuillaume/hyperion/expr/variant"
	"github.com/BoyeGuillaume/hyperion/internal/mmfile"
)

const (
	headerSize    = 8
	formatVersion = 1

	flagZstd = 1 << 0
)

var magic = [4]byte{'H', 'Y', 'X', 'P'}

// Option adjusts how an expression is written.
type Option func(*writeConfig)

type writeConfig struct {
	compress bool
	level    zstd.EncoderLevel
}

// WithZstd compresses the payload as a single zstd frame at the default
// level. Compressed files cannot be memory-mapped with Open.
func WithZstd() Option {
	return func(c *writeConfig) {
		c.compress = true
		c.level = zstd.SpeedDefault
	}
}

// WithZstdLevel is WithZstd with an explicit encoder level.
func WithZstdLevel(level zstd.EncoderLevel) Option {
	return func(c *writeConfig) {
		c.compress = true
		c.level = level
	}
}

// WriteTo writes e to w with a versioned header.
func WriteTo(w io.Writer, e expr.AnyExpr, opts ...Option) error {
	var cfg writeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var header [headerSize]byte
	copy(header[:4], magic[:])
	header[4] = formatVersion
	header[5] = variant.TagSetVersion
	if cfg.compress {
		header[6] = flagZstd
	}

	payload := e.Bytes()
	if cfg.compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(cfg.level))
		if err != nil {
			return fmt.Errorf("exprio: init zstd encoder: %w", err)
		}
		payload = enc.EncodeAll(payload, nil)
		if err := enc.Close(); err != nil {
			return fmt.Errorf("exprio: close zstd encoder: %w", err)
		}
	}

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("exprio: write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("exprio: write payload: %w", err)
	}
	return nil
}

// Write writes e to a new file at path, replacing any existing file.
func Write(path string, e expr.AnyExpr, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("exprio: create %s: %w", path, err)
	}
	if err := WriteTo(f, e, opts...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("exprio: close %s: %w", path, err)
	}
	return nil
}

// checkHeader validates an 8-byte header and reports whether the payload is
// zstd-compressed.
func checkHeader(h []byte) (compressed bool, err error) {
	if len(h) < headerSize || string(h[:4]) != string(magic[:]) {
		return false, ErrBadMagic
	}
	if h[4] != formatVersion {
		return false, fmt.Errorf("%w: got %d, want %d", ErrVersion, h[4], formatVersion)
	}
	if h[5] != variant.TagSetVersion {
		return false, fmt.Errorf("%w: got %d, want %d", ErrTagSet, h[5], variant.TagSetVersion)
	}
	return h[6]&flagZstd != 0, nil
}

// ReadFrom reads one expression from r, decompressing and validating the
// payload.
func ReadFrom(r io.Reader) (expr.AnyExpr, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return expr.AnyExpr{}, fmt.Errorf("exprio: read: %w", err)
	}
	compressed, err := checkHeader(raw)
	if err != nil {
		return expr.AnyExpr{}, err
	}
	payload := raw[headerSize:]
	if compressed {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return expr.AnyExpr{}, fmt.Errorf("exprio: init zstd decoder: %w", err)
		}
		defer dec.Close()
		payload, err = dec.DecodeAll(payload, nil)
		if err != nil {
			return expr.AnyExpr{}, fmt.Errorf("exprio: decompress payload: %w", err)
		}
	}
	return expr.FromBytes(payload)
}

// Read reads one expression from the file at path.
func Read(path string) (expr.AnyExpr, error) {
	f, err := os.Open(path)
	if err != nil {
		return expr.AnyExpr{}, fmt.Errorf("exprio: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadFrom(f)
}

// Mapped is a memory-mapped expression file. The reference returned by Ref
// aliases the mapping and must not outlive Close.
type Mapped struct {
	ref    expr.AnyExprRef
	unmap  func() error
	closed bool
}

// Open memory-maps the uncompressed file at path and validates its payload
// in place. The file's bytes are never copied; Ref hands out zero-copy
// references into the mapping.
func Open(path string) (*Mapped, error) {
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("exprio: map %s: %w", path, err)
	}
	compressed, err := checkHeader(data)
	if err != nil {
		unmap()
		return nil, err
	}
	if compressed {
		unmap()
		return nil, ErrCompressed
	}
	ref, err := expr.Over(data[headerSize:])
	if err != nil {
		unmap()
		return nil, err
	}
	return &Mapped{ref: ref, unmap: unmap}, nil
}

// Ref returns a zero-copy reference to the mapped expression. The reference
// is only valid until Close.
func (m *Mapped) Ref() (expr.AnyExprRef, error) {
	if m.closed {
		return expr.AnyExprRef{}, ErrClosed
	}
	return m.ref, nil
}

// Size returns the mapped payload's size in bytes, or 0 after Close.
func (m *Mapped) Size() int {
	if m.closed {
		return 0
	}
	return m.ref.Size()
}

// Close unmaps the file. Further Ref calls fail with ErrClosed; references
// handed out earlier must not be used after Close returns.
func (m *Mapped) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	m.ref = expr.AnyExprRef{}
	return m.unmap()
}
