package tag

import (
	"encoding/binary"

	"go.uber.org/zap"

	"github.com/wippyai/nbt/mutf8"
)

// DefaultMaxDepth is the container nesting limit used unless WithMaxDepth
// says otherwise.
const DefaultMaxDepth = 512

// Option configures a Decoder or an Encoder.
type Option func(*config)

type config struct {
	order     binary.ByteOrder
	text      mutf8.Mode
	maxDepth  int
	registry  *Registry
	strictEnd bool
	log       *zap.Logger
}

func newConfig(opts []Option) config {
	c := config{
		order:    binary.BigEndian,
		text:     mutf8.Modified,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.registry == nil {
		c.registry = DefaultRegistry()
	}
	if c.log == nil {
		c.log = Logger()
	}
	return c
}

// WithByteOrder selects the byte order for every multi-byte field.
// The default is big-endian.
func WithByteOrder(order binary.ByteOrder) Option {
	if order == nil {
		panic("byte order can't be nil")
	}
	return func(c *config) {
		c.order = order
	}
}

// WithTextMode selects the encoding of names and string payloads.
// The default is mutf8.Modified.
func WithTextMode(mode mutf8.Mode) Option {
	if mode != mutf8.Modified && mode != mutf8.PassThrough {
		panic("unknown text mode")
	}
	return func(c *config) {
		c.text = mode
	}
}

// WithMaxDepth limits how deeply lists and compounds may nest.
func WithMaxDepth(depth int) Option {
	if depth < 1 {
		panic("max depth can't be < 1")
	}
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithRegistry makes the decoder construct tags from reg instead of the
// default registry.
func WithRegistry(reg *Registry) Option {
	if reg == nil {
		panic("registry can't be nil")
	}
	return func(c *config) {
		c.registry = reg
	}
}

// WithStrictEnd makes the encoder fail with an endless_compound error for
// a compound that was never terminated, instead of adding the End byte
// silently.
func WithStrictEnd(strict bool) Option {
	return func(c *config) {
		c.strictEnd = strict
	}
}

// WithLogger sets the logger for debug events. The package logger is used
// otherwise.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}
