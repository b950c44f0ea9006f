package tag

import "github.com/wippyai/nbt/wire"

// ByteArray holds a length-prefixed sequence of signed bytes.
type ByteArray struct {
	Named
	Value []int8
}

// NewByteArray returns a ByteArray tag. The slice is not copied.
func NewByteArray(name string, v []int8) *ByteArray {
	return &ByteArray{Named: Named{name: name}, Value: v}
}

func (*ByteArray) ID() TypeID { return TypeByteArray }

func (t *ByteArray) ReadPayload(r *wire.Reader, _ *Decoder) error {
	n, err := r.Count(1)
	if err != nil {
		return err
	}
	v, err := r.Int8s(n)
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *ByteArray) WritePayload(w *wire.Writer, _ *Encoder) error {
	if err := w.Count(len(t.Value)); err != nil {
		return err
	}
	w.Int8s(t.Value)
	return nil
}

// UByteArray holds raw bytes. It is written as a ByteArray.
type UByteArray struct {
	Named
	Value []byte
}

// NewUByteArray returns a UByteArray tag. The slice is not copied.
func NewUByteArray(name string, v []byte) *UByteArray {
	return &UByteArray{Named: Named{name: name}, Value: v}
}

func (*UByteArray) ID() TypeID { return TypeUByteArray }

func (t *UByteArray) ReadPayload(r *wire.Reader, _ *Decoder) error {
	n, err := r.Count(1)
	if err != nil {
		return err
	}
	v, err := r.Bytes(n)
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *UByteArray) WritePayload(w *wire.Writer, _ *Encoder) error {
	if err := w.Count(len(t.Value)); err != nil {
		return err
	}
	_, err := w.Write(t.Value)
	return err
}

// IntArray holds a length-prefixed sequence of signed 32-bit integers.
type IntArray struct {
	Named
	Value []int32
}

// NewIntArray returns an IntArray tag. The slice is not copied.
func NewIntArray(name string, v []int32) *IntArray {
	return &IntArray{Named: Named{name: name}, Value: v}
}

func (*IntArray) ID() TypeID { return TypeIntArray }

func (t *IntArray) ReadPayload(r *wire.Reader, _ *Decoder) error {
	n, err := r.Count(4)
	if err != nil {
		return err
	}
	v, err := r.Int32s(n)
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *IntArray) WritePayload(w *wire.Writer, _ *Encoder) error {
	if err := w.Count(len(t.Value)); err != nil {
		return err
	}
	w.Int32s(t.Value)
	return nil
}

// UIntArray holds unsigned 32-bit integers. It is written as an IntArray.
type UIntArray struct {
	Named
	Value []uint32
}

// NewUIntArray returns a UIntArray tag. The slice is not copied.
func NewUIntArray(name string, v []uint32) *UIntArray {
	return &UIntArray{Named: Named{name: name}, Value: v}
}

func (*UIntArray) ID() TypeID { return TypeUIntArray }

func (t *UIntArray) ReadPayload(r *wire.Reader, _ *Decoder) error {
	n, err := r.Count(4)
	if err != nil {
		return err
	}
	v, err := r.Uint32s(n)
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *UIntArray) WritePayload(w *wire.Writer, _ *Encoder) error {
	if err := w.Count(len(t.Value)); err != nil {
		return err
	}
	w.Uint32s(t.Value)
	return nil
}

// LongArray holds a length-prefixed sequence of signed 64-bit integers.
type LongArray struct {
	Named
	Value []int64
}

// NewLongArray returns a LongArray tag. The slice is not copied.
func NewLongArray(name string, v []int64) *LongArray {
	return &LongArray{Named: Named{name: name}, Value: v}
}

func (*LongArray) ID() TypeID { return TypeLongArray }

func (t *LongArray) ReadPayload(r *wire.Reader, _ *Decoder) error {
	n, err := r.Count(8)
	if err != nil {
		return err
	}
	v, err := r.Int64s(n)
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *LongArray) WritePayload(w *wire.Writer, _ *Encoder) error {
	if err := w.Count(len(t.Value)); err != nil {
		return err
	}
	w.Int64s(t.Value)
	return nil
}

// ULongArray holds unsigned 64-bit integers. It is written as a LongArray.
type ULongArray struct {
	Named
	Value []uint64
}

// NewULongArray returns a ULongArray tag. The slice is not copied.
func NewULongArray(name string, v []uint64) *ULongArray {
	return &ULongArray{Named: Named{name: name}, Value: v}
}

func (*ULongArray) ID() TypeID { return TypeULongArray }

func (t *ULongArray) ReadPayload(r *wire.Reader, _ *Decoder) error {
	n, err := r.Count(8)
	if err != nil {
		return err
	}
	v, err := r.Uint64s(n)
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *ULongArray) WritePayload(w *wire.Writer, _ *Encoder) error {
	if err := w.Count(len(t.Value)); err != nil {
		return err
	}
	w.Uint64s(t.Value)
	return nil
}
