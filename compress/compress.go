package compress

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	"github.com/wippyai/nbt/errors"
)

// Format is a compression envelope.
type Format int

const (
	None Format = iota // raw tag bytes
	Gzip               // RFC 1952, the customary envelope for tag files
	Zlib               // RFC 1950
	Zstd               // Zstandard frame
)

// DefaultMaxSize caps decompressed output unless WithMaxSize says otherwise.
const DefaultMaxSize = 256 << 20

// DefaultLevel selects each format's default compression level.
const DefaultLevel = -1

// String returns the format name accepted by ParseFormat.
func (f Format) String() string {
	switch f {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the conventional file suffix for the format.
func (f Format) Extension() string {
	switch f {
	case Gzip:
		return ".nbt"
	case Zlib:
		return ".zlib"
	case Zstd:
		return ".zst"
	default:
		return ".dat"
	}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "none", "raw", "":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zlib", "deflate":
		return Zlib, nil
	case "zstd", "zst":
		return Zstd, nil
	}
	return None, errors.New(errors.PhaseCompress, errors.KindInvalidInput).
		Value(s).
		Detail("unknown compression format %q", s).
		Build()
}

// Detect sniffs the envelope from the leading bytes. Anything that is not
// a recognised magic number is reported as None.
func Detect(b []byte) Format {
	switch {
	case len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b:
		return Gzip
	case len(b) >= 4 && b[0] == 0x28 && b[1] == 0xb5 && b[2] == 0x2f && b[3] == 0xfd:
		return Zstd
	case len(b) >= 2 && b[0]&0x0f == 0x08 && b[0]>>4 <= 7 && (uint16(b[0])<<8|uint16(b[1]))%31 == 0:
		return Zlib
	}
	return None
}

// Compressor wraps and unwraps one envelope format.
type Compressor interface {
	Format() Format
	Compress(src []byte) ([]byte, error)
	Decompress(src []byte) ([]byte, error)
}

// Option configures a Compressor.
type Option func(*config)

type config struct {
	level   int
	maxSize int64
}

// WithLevel sets the compression level. Gzip and zlib take 0 to 9 (or -1
// for the default); zstd takes a zstd command line level, 1 to 22.
func WithLevel(level int) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithMaxSize caps the decompressed size.
func WithMaxSize(n int64) Option {
	if n <= 0 {
		panic("max size can't be <= 0")
	}
	return func(c *config) {
		c.maxSize = n
	}
}

// New returns a Compressor for format.
func New(format Format, opts ...Option) (Compressor, error) {
	cfg := config{level: DefaultLevel, maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	switch format {
	case None:
		return &noneCompressor{maxSize: cfg.maxSize}, nil
	case Gzip, Zlib:
		if cfg.level < DefaultLevel || cfg.level > 9 {
			return nil, levelError(format, cfg.level)
		}
		return &flateCompressor{format: format, config: cfg}, nil
	case Zstd:
		return newZstd(cfg)
	}
	return nil, errors.New(errors.PhaseCompress, errors.KindInvalidInput).
		Value(int(format)).
		Detail("unknown compression format %d", int(format)).
		Build()
}

// Decompress detects the envelope of src and removes it. Only the
// WithMaxSize option applies; levels are ignored.
func Decompress(src []byte, opts ...Option) ([]byte, Format, error) {
	cfg := config{level: DefaultLevel, maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	format := Detect(src)
	c, err := New(format, WithMaxSize(cfg.maxSize))
	if err != nil {
		return nil, format, err
	}
	out, err := c.Decompress(src)
	return out, format, err
}

func levelError(format Format, level int) error {
	return errors.New(errors.PhaseCompress, errors.KindInvalidInput).
		Value(level).
		Detail("invalid %s level %d", format, level).
		Build()
}

func wrap(format Format, op string, err error) error {
	return errors.Wrap(errors.PhaseCompress, errors.KindCompression, err, format.String()+" "+op)
}

// readAll reads r to the end, failing once more than limit bytes arrive.
func readAll(format Format, r io.Reader, limit int64) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, wrap(format, "decompress", err)
	}
	if int64(len(out)) > limit {
		return nil, errors.Overflow(errors.PhaseCompress, nil, len(out), uint64(limit))
	}
	return out, nil
}

type noneCompressor struct {
	maxSize int64
}

func (*noneCompressor) Format() Format { return None }

func (*noneCompressor) Compress(src []byte) ([]byte, error) {
	return append([]byte(nil), src...), nil
}

func (c *noneCompressor) Decompress(src []byte) ([]byte, error) {
	if int64(len(src)) > c.maxSize {
		return nil, errors.Overflow(errors.PhaseCompress, nil, len(src), uint64(c.maxSize))
	}
	return append([]byte(nil), src...), nil
}

type flateCompressor struct {
	format Format
	config
}

func (c *flateCompressor) Format() Format { return c.format }

func (c *flateCompressor) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser
	var err error
	if c.format == Gzip {
		w, err = gzip.NewWriterLevel(&buf, c.level)
	} else {
		w, err = zlib.NewWriterLevel(&buf, c.level)
	}
	if err != nil {
		return nil, wrap(c.format, "compress", err)
	}
	if _, err := w.Write(src); err != nil {
		return nil, wrap(c.format, "compress", err)
	}
	if err := w.Close(); err != nil {
		return nil, wrap(c.format, "compress", err)
	}
	return buf.Bytes(), nil
}

func (c *flateCompressor) Decompress(src []byte) ([]byte, error) {
	var r io.ReadCloser
	var err error
	if c.format == Gzip {
		r, err = gzip.NewReader(bytes.NewReader(src))
	} else {
		r, err = zlib.NewReader(bytes.NewReader(src))
	}
	if err != nil {
		return nil, wrap(c.format, "decompress", err)
	}
	defer r.Close()
	return readAll(c.format, r, c.maxSize)
}

// zstdCompressor builds a coder per call and closes it before returning,
// so an idle compressor holds no decoder buffers or goroutines.
type zstdCompressor struct {
	level   zstd.EncoderLevel
	maxSize int64
}

func newZstd(cfg config) (*zstdCompressor, error) {
	level := zstd.SpeedDefault
	if cfg.level != DefaultLevel {
		if cfg.level < 1 || cfg.level > 22 {
			return nil, levelError(Zstd, cfg.level)
		}
		level = zstd.EncoderLevelFromZstd(cfg.level)
	}
	return &zstdCompressor{level: level, maxSize: cfg.maxSize}, nil
}

func (*zstdCompressor) Format() Format { return Zstd }

func (c *zstdCompressor) Compress(src []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(c.level),
		zstd.WithEncoderConcurrency(1),
		zstd.WithZeroFrames(true))
	if err != nil {
		return nil, wrap(Zstd, "compress", err)
	}
	out := enc.EncodeAll(src, nil)
	if err := enc.Close(); err != nil {
		return nil, wrap(Zstd, "compress", err)
	}
	return out, nil
}

func (c *zstdCompressor) Decompress(src []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(uint64(c.maxSize)))
	if err != nil {
		return nil, wrap(Zstd, "decompress", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(src, nil)
	if err != nil {
		return nil, wrap(Zstd, "decompress", err)
	}
	return out, nil
}
