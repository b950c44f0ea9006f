package tag

import (
	"strconv"
	"unsafe"

	"github.com/wippyai/nbt/errors"
)

// As returns t as the concrete variant T, or a type_mismatch error.
//
//	s, err := tag.As[*tag.String](t)
func As[T Tag](t Tag) (T, error) {
	return as[T](t, nil)
}

func as[T Tag](t Tag, path []string) (T, error) {
	if v, ok := t.(T); ok && t != nil {
		return v, nil
	}
	var zero T
	return zero, errors.TypeMismatch(path, int8(idOf(t)), int8(idOf(zero)))
}

func idOf(t Tag) TypeID {
	if t == nil {
		return TypeEnd
	}
	return t.ID()
}

// Ref navigates a tag tree. Each step returns a new Ref; the first failure
// sticks and is reported by every later call, with the path where it
// happened.
//
//	name, err := tag.At(root).Key("player").Key("inventory").Index(0).Text()
type Ref struct {
	t    Tag
	path []string
	err  error
}

// At returns a Ref positioned at t.
func At(t Tag) Ref {
	return Ref{t: t}
}

func (r Ref) step(seg string) []string {
	return append(r.path[:len(r.path):len(r.path)], seg)
}

// Key moves to the compound child called name.
func (r Ref) Key(name string) Ref {
	if r.err != nil {
		return r
	}
	path := r.step(name)
	c, ok := r.t.(*Compound)
	if !ok {
		return Ref{path: path, err: errors.TypeMismatch(path, int8(idOf(r.t)), int8(TypeCompound))}
	}
	t, ok := c.Lookup(name)
	if !ok {
		return Ref{path: path, err: errors.KeyNotFound(path, name)}
	}
	return Ref{t: t, path: path}
}

// Index moves to the list element at i.
func (r Ref) Index(i int) Ref {
	if r.err != nil {
		return r
	}
	path := r.step("[" + strconv.Itoa(i) + "]")
	l, ok := r.t.(*List)
	if !ok {
		return Ref{path: path, err: errors.TypeMismatch(path, int8(idOf(r.t)), int8(TypeList))}
	}
	if i < 0 || i >= l.Len() {
		return Ref{path: path, err: errors.IndexOutOfRange(path, i, l.Len())}
	}
	return Ref{t: l.tags[i], path: path}
}

// Path applies Key or Index for each segment: a segment is an index when
// the current tag is a list, a key otherwise.
func (r Ref) Path(segments ...string) Ref {
	for _, seg := range segments {
		if r.err != nil {
			return r
		}
		if _, ok := r.t.(*List); ok {
			i, err := strconv.Atoi(seg)
			if err != nil {
				path := r.step(seg)
				return Ref{path: path, err: errors.New(errors.PhaseAccess, errors.KindInvalidInput).
					Path(path...).
					Value(seg).
					Detail("list index %q is not a number", seg).
					Build()}
			}
			r = r.Index(i)
			continue
		}
		r = r.Key(seg)
	}
	return r
}

// Err returns the first navigation error.
func (r Ref) Err() error {
	return r.err
}

// Tag returns the tag at the current position.
func (r Ref) Tag() (Tag, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.t, nil
}

// Compound returns the current tag as a compound.
func (r Ref) Compound() (*Compound, error) {
	return get[*Compound](r)
}

// List returns the current tag as a list.
func (r Ref) List() (*List, error) {
	return get[*List](r)
}

func get[T Tag](r Ref) (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return as[T](r.t, r.path)
}

func (r Ref) mismatch(want TypeID) error {
	return errors.TypeMismatch(r.path, int8(idOf(r.t)), int8(want))
}

// Int8 returns the value of a Byte.
func (r Ref) Int8() (int8, error) {
	t, err := get[*Byte](r)
	if err != nil {
		return 0, err
	}
	return t.Value, nil
}

// Uint8 returns the value of a UByte, or a Byte reinterpreted as unsigned.
func (r Ref) Uint8() (uint8, error) {
	if r.err != nil {
		return 0, r.err
	}
	switch t := r.t.(type) {
	case *UByte:
		return t.Value, nil
	case *Byte:
		return uint8(t.Value), nil
	}
	return 0, r.mismatch(TypeUByte)
}

// Int16 returns the value of a Short.
func (r Ref) Int16() (int16, error) {
	t, err := get[*Short](r)
	if err != nil {
		return 0, err
	}
	return t.Value, nil
}

// Uint16 returns the value of a UShort, or a Short reinterpreted as
// unsigned.
func (r Ref) Uint16() (uint16, error) {
	if r.err != nil {
		return 0, r.err
	}
	switch t := r.t.(type) {
	case *UShort:
		return t.Value, nil
	case *Short:
		return uint16(t.Value), nil
	}
	return 0, r.mismatch(TypeUShort)
}

// Int32 returns the value of an Int.
func (r Ref) Int32() (int32, error) {
	t, err := get[*Int](r)
	if err != nil {
		return 0, err
	}
	return t.Value, nil
}

// Uint32 returns the value of a UInt, or an Int reinterpreted as unsigned.
func (r Ref) Uint32() (uint32, error) {
	if r.err != nil {
		return 0, r.err
	}
	switch t := r.t.(type) {
	case *UInt:
		return t.Value, nil
	case *Int:
		return uint32(t.Value), nil
	}
	return 0, r.mismatch(TypeUInt)
}

// Int64 returns the value of a Long.
func (r Ref) Int64() (int64, error) {
	t, err := get[*Long](r)
	if err != nil {
		return 0, err
	}
	return t.Value, nil
}

// Uint64 returns the value of a ULong, or a Long reinterpreted as unsigned.
func (r Ref) Uint64() (uint64, error) {
	if r.err != nil {
		return 0, r.err
	}
	switch t := r.t.(type) {
	case *ULong:
		return t.Value, nil
	case *Long:
		return uint64(t.Value), nil
	}
	return 0, r.mismatch(TypeULong)
}

// Float32 returns the value of a Float.
func (r Ref) Float32() (float32, error) {
	t, err := get[*Float](r)
	if err != nil {
		return 0, err
	}
	return t.Value, nil
}

// Float64 returns the value of a Double.
func (r Ref) Float64() (float64, error) {
	t, err := get[*Double](r)
	if err != nil {
		return 0, err
	}
	return t.Value, nil
}

// Text returns the value of a String.
func (r Ref) Text() (string, error) {
	t, err := get[*String](r)
	if err != nil {
		return "", err
	}
	return t.Value, nil
}

// Array getters return the tag's own slice; writes through it modify the
// tree.

// Int8s returns the elements of a ByteArray.
func (r Ref) Int8s() ([]int8, error) {
	t, err := get[*ByteArray](r)
	if err != nil {
		return nil, err
	}
	return t.Value, nil
}

// Bytes returns the elements of a UByteArray, or of a ByteArray viewed as
// unsigned.
func (r Ref) Bytes() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	switch t := r.t.(type) {
	case *UByteArray:
		return t.Value, nil
	case *ByteArray:
		return reinterpret[int8, byte](t.Value), nil
	}
	return nil, r.mismatch(TypeUByteArray)
}

// Int32s returns the elements of an IntArray.
func (r Ref) Int32s() ([]int32, error) {
	t, err := get[*IntArray](r)
	if err != nil {
		return nil, err
	}
	return t.Value, nil
}

// Uint32s returns the elements of a UIntArray, or of an IntArray viewed as
// unsigned.
func (r Ref) Uint32s() ([]uint32, error) {
	if r.err != nil {
		return nil, r.err
	}
	switch t := r.t.(type) {
	case *UIntArray:
		return t.Value, nil
	case *IntArray:
		return reinterpret[int32, uint32](t.Value), nil
	}
	return nil, r.mismatch(TypeUIntArray)
}

// Int64s returns the elements of a LongArray.
func (r Ref) Int64s() ([]int64, error) {
	t, err := get[*LongArray](r)
	if err != nil {
		return nil, err
	}
	return t.Value, nil
}

// Uint64s returns the elements of a ULongArray, or of a LongArray viewed as
// unsigned.
func (r Ref) Uint64s() ([]uint64, error) {
	if r.err != nil {
		return nil, r.err
	}
	switch t := r.t.(type) {
	case *ULongArray:
		return t.Value, nil
	case *LongArray:
		return reinterpret[int64, uint64](t.Value), nil
	}
	return nil, r.mismatch(TypeULongArray)
}

// reinterpret views s as a slice of a same-sized type without copying.
func reinterpret[From, To int8 | uint8 | int32 | uint32 | int64 | uint64](s []From) []To {
	if s == nil {
		return nil
	}
	return unsafe.Slice((*To)(unsafe.Pointer(unsafe.SliceData(s))), len(s))
}
