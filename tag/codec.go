package tag

import (
	"go.uber.org/zap"

	"github.com/wippyai/nbt/errors"
)

// Load decodes one complete tag from the start of data into t and returns
// the number of bytes consumed. The id in the stream must match t.
func Load(data []byte, t Tag, opts ...Option) (int, error) {
	return NewDecoder(opts...).Load(data, t)
}

// Unmarshal decodes a root compound. Bytes after the root are ignored.
func Unmarshal(data []byte, opts ...Option) (*Compound, error) {
	d := NewDecoder(opts...)
	c := &Compound{}
	n, err := d.Load(data, c)
	if err != nil {
		return nil, err
	}
	if n < len(data) {
		d.cfg.log.Debug("trailing bytes after root compound",
			zap.Int("consumed", n),
			zap.Int("trailing", len(data)-n))
	}
	return c, nil
}

// Marshal encodes a root compound.
func Marshal(c *Compound, opts ...Option) ([]byte, error) {
	if c == nil {
		return nil, errors.InvalidInput(errors.PhaseWrite, "nil compound")
	}
	return NewEncoder(opts...).Encode(c)
}

// Write encodes any tag, header included.
func Write(t Tag, opts ...Option) ([]byte, error) {
	return NewEncoder(opts...).Encode(t)
}

// Size returns the encoded length of t.
func Size(t Tag, opts ...Option) (int, error) {
	return NewEncoder(opts...).Size(t)
}

// WriteTo encodes t into the start of dst, which must hold Size(t) bytes.
func WriteTo(dst []byte, t Tag, opts ...Option) (int, error) {
	return NewEncoder(opts...).WriteTo(dst, t)
}
