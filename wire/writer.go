package wire

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/nbt/errors"
	"github.com/wippyai/nbt/mutf8"
)

// MaxStringLen is the largest encoded string or name length.
const MaxStringLen = math.MaxUint16

// MaxCount is the largest array or list element count.
const MaxCount = math.MaxUint32

// Writer appends fixed-width values to a growing buffer.
type Writer struct {
	order binary.ByteOrder
	buf   []byte
	text  mutf8.Mode
}

// NewWriter creates a Writer appending to buf (which may be nil).
// A nil order selects big-endian.
func NewWriter(buf []byte, order binary.ByteOrder, text mutf8.Mode) *Writer {
	if order == nil {
		order = binary.BigEndian
	}
	return &Writer{order: order, buf: buf, text: text}
}

// Reset empties the buffer and switches the writer's settings.
func (w *Writer) Reset(order binary.ByteOrder, text mutf8.Mode) {
	if order == nil {
		order = binary.BigEndian
	}
	w.order = order
	w.text = text
	w.buf = w.buf[:0]
}

// Bytes returns the written bytes. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Order returns the writer's byte order.
func (w *Writer) Order() binary.ByteOrder {
	return w.order
}

// WriteByte writes a single byte. It never fails.
func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// Write appends p. It never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// Int8 writes a signed byte.
func (w *Writer) Int8(v int8) {
	w.buf = append(w.buf, byte(v))
}

// Uint16 writes a 2-byte unsigned integer.
func (w *Writer) Uint16(v uint16) {
	var b [2]byte
	w.order.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Int16 writes a 2-byte signed integer.
func (w *Writer) Int16(v int16) {
	w.Uint16(uint16(v))
}

// Uint32 writes a 4-byte unsigned integer.
func (w *Writer) Uint32(v uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Int32 writes a 4-byte signed integer.
func (w *Writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

// Uint64 writes an 8-byte unsigned integer.
func (w *Writer) Uint64(v uint64) {
	var b [8]byte
	w.order.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Int64 writes an 8-byte signed integer.
func (w *Writer) Int64(v int64) {
	w.Uint64(uint64(v))
}

// Float32 writes an IEEE 754 single.
func (w *Writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

// Float64 writes an IEEE 754 double.
func (w *Writer) Float64(v float64) {
	w.Uint64(math.Float64bits(v))
}

// Count writes a 4-byte element count, failing when n does not fit.
func (w *Writer) Count(n int) error {
	if uint64(n) > MaxCount {
		return errors.Overflow(errors.PhaseWrite, nil, n, MaxCount)
	}
	w.Uint32(uint32(n))
	return nil
}

// Text encodes s with the writer's text mode and writes the 2-byte
// length of the encoded bytes followed by the bytes.
func (w *Writer) Text(s string) error {
	n := w.text.EncodedLen(s)
	if n > MaxStringLen {
		return errors.Overflow(errors.PhaseWrite, nil, n, MaxStringLen)
	}
	w.Uint16(uint16(n))
	w.buf = w.text.AppendEncode(w.buf, s)
	return nil
}

// Int8s writes the elements of v without a count.
func (w *Writer) Int8s(v []int8) {
	for _, x := range v {
		w.buf = append(w.buf, byte(x))
	}
}

// Int32s writes the elements of v without a count.
func (w *Writer) Int32s(v []int32) {
	for _, x := range v {
		w.Uint32(uint32(x))
	}
}

// Uint32s writes the elements of v without a count.
func (w *Writer) Uint32s(v []uint32) {
	for _, x := range v {
		w.Uint32(x)
	}
}

// Int64s writes the elements of v without a count.
func (w *Writer) Int64s(v []int64) {
	for _, x := range v {
		w.Uint64(uint64(x))
	}
}

// Uint64s writes the elements of v without a count.
func (w *Writer) Uint64s(v []uint64) {
	for _, x := range v {
		w.Uint64(x)
	}
}
