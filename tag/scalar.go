package tag

import "github.com/wippyai/nbt/wire"

// Byte holds a signed 8-bit integer.
type Byte struct {
	Named
	Value int8
}

// NewByte returns a Byte tag.
func NewByte(name string, v int8) *Byte {
	return &Byte{Named: Named{name: name}, Value: v}
}

func (*Byte) ID() TypeID { return TypeByte }

func (t *Byte) ReadPayload(r *wire.Reader, _ *Decoder) error {
	v, err := r.Int8()
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *Byte) WritePayload(w *wire.Writer, _ *Encoder) error {
	w.Int8(t.Value)
	return nil
}

// UByte holds an unsigned 8-bit integer. It is written as a Byte.
type UByte struct {
	Named
	Value uint8
}

// NewUByte returns a UByte tag.
func NewUByte(name string, v uint8) *UByte {
	return &UByte{Named: Named{name: name}, Value: v}
}

func (*UByte) ID() TypeID { return TypeUByte }

func (t *UByte) ReadPayload(r *wire.Reader, _ *Decoder) error {
	v, err := r.ReadByte()
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *UByte) WritePayload(w *wire.Writer, _ *Encoder) error {
	return w.WriteByte(t.Value)
}

// Short holds a signed 16-bit integer.
type Short struct {
	Named
	Value int16
}

// NewShort returns a Short tag.
func NewShort(name string, v int16) *Short {
	return &Short{Named: Named{name: name}, Value: v}
}

func (*Short) ID() TypeID { return TypeShort }

func (t *Short) ReadPayload(r *wire.Reader, _ *Decoder) error {
	v, err := r.Int16()
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *Short) WritePayload(w *wire.Writer, _ *Encoder) error {
	w.Int16(t.Value)
	return nil
}

// UShort holds an unsigned 16-bit integer. It is written as a Short.
type UShort struct {
	Named
	Value uint16
}

// NewUShort returns a UShort tag.
func NewUShort(name string, v uint16) *UShort {
	return &UShort{Named: Named{name: name}, Value: v}
}

func (*UShort) ID() TypeID { return TypeUShort }

func (t *UShort) ReadPayload(r *wire.Reader, _ *Decoder) error {
	v, err := r.Uint16()
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *UShort) WritePayload(w *wire.Writer, _ *Encoder) error {
	w.Uint16(t.Value)
	return nil
}

// Int holds a signed 32-bit integer.
type Int struct {
	Named
	Value int32
}

// NewInt returns an Int tag.
func NewInt(name string, v int32) *Int {
	return &Int{Named: Named{name: name}, Value: v}
}

func (*Int) ID() TypeID { return TypeInt }

func (t *Int) ReadPayload(r *wire.Reader, _ *Decoder) error {
	v, err := r.Int32()
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *Int) WritePayload(w *wire.Writer, _ *Encoder) error {
	w.Int32(t.Value)
	return nil
}

// UInt holds an unsigned 32-bit integer. It is written as an Int.
type UInt struct {
	Named
	Value uint32
}

// NewUInt returns a UInt tag.
func NewUInt(name string, v uint32) *UInt {
	return &UInt{Named: Named{name: name}, Value: v}
}

func (*UInt) ID() TypeID { return TypeUInt }

func (t *UInt) ReadPayload(r *wire.Reader, _ *Decoder) error {
	v, err := r.Uint32()
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *UInt) WritePayload(w *wire.Writer, _ *Encoder) error {
	w.Uint32(t.Value)
	return nil
}

// Long holds a signed 64-bit integer.
type Long struct {
	Named
	Value int64
}

// NewLong returns a Long tag.
func NewLong(name string, v int64) *Long {
	return &Long{Named: Named{name: name}, Value: v}
}

func (*Long) ID() TypeID { return TypeLong }

func (t *Long) ReadPayload(r *wire.Reader, _ *Decoder) error {
	v, err := r.Int64()
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *Long) WritePayload(w *wire.Writer, _ *Encoder) error {
	w.Int64(t.Value)
	return nil
}

// ULong holds an unsigned 64-bit integer. It is written as a Long.
type ULong struct {
	Named
	Value uint64
}

// NewULong returns a ULong tag.
func NewULong(name string, v uint64) *ULong {
	return &ULong{Named: Named{name: name}, Value: v}
}

func (*ULong) ID() TypeID { return TypeULong }

func (t *ULong) ReadPayload(r *wire.Reader, _ *Decoder) error {
	v, err := r.Uint64()
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *ULong) WritePayload(w *wire.Writer, _ *Encoder) error {
	w.Uint64(t.Value)
	return nil
}

// Float holds an IEEE 754 single.
type Float struct {
	Named
	Value float32
}

// NewFloat returns a Float tag.
func NewFloat(name string, v float32) *Float {
	return &Float{Named: Named{name: name}, Value: v}
}

func (*Float) ID() TypeID { return TypeFloat }

func (t *Float) ReadPayload(r *wire.Reader, _ *Decoder) error {
	v, err := r.Float32()
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *Float) WritePayload(w *wire.Writer, _ *Encoder) error {
	w.Float32(t.Value)
	return nil
}

// Double holds an IEEE 754 double.
type Double struct {
	Named
	Value float64
}

// NewDouble returns a Double tag.
func NewDouble(name string, v float64) *Double {
	return &Double{Named: Named{name: name}, Value: v}
}

func (*Double) ID() TypeID { return TypeDouble }

func (t *Double) ReadPayload(r *wire.Reader, _ *Decoder) error {
	v, err := r.Float64()
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *Double) WritePayload(w *wire.Writer, _ *Encoder) error {
	w.Float64(t.Value)
	return nil
}
