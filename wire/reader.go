package wire

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/nbt/errors"
	"github.com/wippyai/nbt/mutf8"
)

// Reader is a bounds-checked cursor over an in-memory buffer. Every read
// that would run past the end fails with a truncated_buffer error carrying
// the offset of the read.
type Reader struct {
	order binary.ByteOrder
	data  []byte
	pos   int
	text  mutf8.Mode
}

// NewReader creates a Reader over data using the given byte order and text
// mode. A nil order selects big-endian.
func NewReader(data []byte, order binary.ByteOrder, text mutf8.Mode) *Reader {
	if order == nil {
		order = binary.BigEndian
	}
	return &Reader{order: order, data: data, text: text}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Order returns the reader's byte order.
func (r *Reader) Order() binary.ByteOrder {
	return r.order
}

// Need fails unless n more bytes are available.
func (r *Reader) Need(n uint64) error {
	if n > uint64(r.Remaining()) {
		need := math.MaxInt
		if n < uint64(math.MaxInt) {
			need = int(n)
		}
		return errors.TruncatedBuffer(r.pos, need, r.Remaining())
	}
	return nil
}

// Next returns the next n bytes and advances past them. The slice aliases
// the underlying buffer.
func (r *Reader) Next(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "negative read length")
	}
	if err := r.Need(uint64(n)); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errors.TruncatedBuffer(r.pos, 1, 0)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// Int8 reads a signed byte.
func (r *Reader) Int8() (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

// Uint16 reads a 2-byte unsigned integer.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.Next(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

// Int16 reads a 2-byte signed integer.
func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

// Uint32 reads a 4-byte unsigned integer.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.Next(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

// Int32 reads a 4-byte signed integer.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Uint64 reads an 8-byte unsigned integer.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.Next(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(b), nil
}

// Int64 reads an 8-byte signed integer.
func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// Float32 reads an IEEE 754 single.
func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	return math.Float32frombits(v), err
}

// Float64 reads an IEEE 754 double.
func (r *Reader) Float64() (float64, error) {
	v, err := r.Uint64()
	return math.Float64frombits(v), err
}

// Count reads a 4-byte element count and checks that count elements of
// width bytes each are still available, so callers can allocate safely.
func (r *Reader) Count(width int) (int, error) {
	start := r.pos
	n, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	if err := r.Need(uint64(n) * uint64(width)); err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.At(start)
		}
		return 0, err
	}
	return int(n), nil
}

// Text reads a 2-byte length followed by that many encoded bytes and
// decodes them with the reader's text mode.
func (r *Reader) Text() (string, error) {
	n, err := r.Uint16()
	if err != nil {
		return "", err
	}
	b, err := r.Next(int(n))
	if err != nil {
		return "", err
	}
	return r.text.Decode(b), nil
}

// Int8s reads n signed bytes.
func (r *Reader) Int8s(n int) ([]int8, error) {
	b, err := r.Next(n)
	if err != nil {
		return nil, err
	}
	out := make([]int8, n)
	for i, c := range b {
		out[i] = int8(c)
	}
	return out, nil
}

// Bytes reads n bytes into a fresh slice.
func (r *Reader) Bytes(n int) ([]byte, error) {
	b, err := r.Next(n)
	if err != nil {
		return nil, err
	}
	return append(make([]byte, 0, n), b...), nil
}

// Uint32s reads n 4-byte unsigned integers.
func (r *Reader) Uint32s(n int) ([]uint32, error) {
	b, err := r.Next(n * 4)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = r.order.Uint32(b[i*4:])
	}
	return out, nil
}

// Int32s reads n 4-byte signed integers.
func (r *Reader) Int32s(n int) ([]int32, error) {
	b, err := r.Next(n * 4)
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(r.order.Uint32(b[i*4:]))
	}
	return out, nil
}

// Uint64s reads n 8-byte unsigned integers.
func (r *Reader) Uint64s(n int) ([]uint64, error) {
	b, err := r.Next(n * 8)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = r.order.Uint64(b[i*8:])
	}
	return out, nil
}

// Int64s reads n 8-byte signed integers.
func (r *Reader) Int64s(n int) ([]int64, error) {
	b, err := r.Next(n * 8)
	if err != nil {
		return nil, err
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(r.order.Uint64(b[i*8:]))
	}
	return out, nil
}
