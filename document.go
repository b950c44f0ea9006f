package nbt

import (
	"os"

	"github.com/moby/sys/atomicwriter"
	"go.uber.org/zap"

	"github.com/wippyai/nbt/compress"
	"github.com/wippyai/nbt/errors"
	"github.com/wippyai/nbt/tag"
)

// Document is a root compound together with the envelope it is stored in.
type Document struct {
	Root        *tag.Compound
	Compression compress.Format
}

// New returns a document for root, stored with format.
func New(root *tag.Compound, format compress.Format) *Document {
	return &Document{Root: root, Compression: format}
}

// Option configures reading and writing documents.
type Option func(*config)

type config struct {
	tagOpts  []tag.Option
	compOpts []compress.Option
	perm     os.FileMode
}

func newConfig(opts []Option) config {
	c := config{perm: 0o644}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithTagOptions passes options to the tag encoder and decoder.
func WithTagOptions(opts ...tag.Option) Option {
	return func(c *config) {
		c.tagOpts = append(c.tagOpts, opts...)
	}
}

// WithCompressOptions passes options to the compressor.
func WithCompressOptions(opts ...compress.Option) Option {
	return func(c *config) {
		c.compOpts = append(c.compOpts, opts...)
	}
}

// WithPerm sets the mode of files created by WriteFile.
func WithPerm(perm os.FileMode) Option {
	return func(c *config) {
		c.perm = perm
	}
}

// ReadDocument detects the envelope of data, removes it and decodes the
// root compound.
func ReadDocument(data []byte, opts ...Option) (*Document, error) {
	cfg := newConfig(opts)

	raw, format, err := compress.Decompress(data, cfg.compOpts...)
	if err != nil {
		return nil, err
	}
	root, err := tag.Unmarshal(raw, cfg.tagOpts...)
	if err != nil {
		return nil, err
	}
	return &Document{Root: root, Compression: format}, nil
}

// Bytes encodes the root compound and wraps it in the document's envelope.
func (d *Document) Bytes(opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)

	raw, err := tag.Marshal(d.Root, cfg.tagOpts...)
	if err != nil {
		return nil, err
	}
	c, err := compress.New(d.Compression, cfg.compOpts...)
	if err != nil {
		return nil, err
	}
	return c.Compress(raw)
}

// ReadFile reads and decodes the document stored at path.
func ReadFile(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "read "+path)
	}
	doc, err := ReadDocument(data, opts...)
	if err != nil {
		return nil, err
	}

	tag.Logger().Debug("read document",
		zap.String("path", path),
		zap.Stringer("compression", doc.Compression),
		zap.Int("size", len(data)))
	return doc, nil
}

// WriteFile encodes the document and replaces path with it atomically:
// readers see either the old file or the complete new one.
func (d *Document) WriteFile(path string, opts ...Option) error {
	cfg := newConfig(opts)

	data, err := d.Bytes(opts...)
	if err != nil {
		return err
	}
	if err := atomicwriter.WriteFile(path, data, cfg.perm); err != nil {
		return errors.Wrap(errors.PhaseWrite, errors.KindInvalidInput, err, "write "+path)
	}

	tag.Logger().Debug("wrote document",
		zap.String("path", path),
		zap.Stringer("compression", d.Compression),
		zap.Int("size", len(data)))
	return nil
}
