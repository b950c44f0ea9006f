package tag

import (
	"bytes"
	"math"
	"reflect"
	"slices"
)

// Equal reports whether a and b are the same tree: same in-memory ids,
// names and payloads. Compound children are compared by name regardless
// of order; list elements in order. Floats compare by bit pattern, so a
// NaN equals itself. Custom variants compare by their default encoding.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.ID() != b.ID() || a.Name() != b.Name() {
		return false
	}
	return equalPayload(a, b)
}

func equalPayload(a, b Tag) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	switch x := a.(type) {
	case *End:
		return true
	case *Byte:
		return x.Value == b.(*Byte).Value
	case *UByte:
		return x.Value == b.(*UByte).Value
	case *Short:
		return x.Value == b.(*Short).Value
	case *UShort:
		return x.Value == b.(*UShort).Value
	case *Int:
		return x.Value == b.(*Int).Value
	case *UInt:
		return x.Value == b.(*UInt).Value
	case *Long:
		return x.Value == b.(*Long).Value
	case *ULong:
		return x.Value == b.(*ULong).Value
	case *Float:
		return math.Float32bits(x.Value) == math.Float32bits(b.(*Float).Value)
	case *Double:
		return math.Float64bits(x.Value) == math.Float64bits(b.(*Double).Value)
	case *String:
		return x.Value == b.(*String).Value
	case *ByteArray:
		return slices.Equal(x.Value, b.(*ByteArray).Value)
	case *UByteArray:
		return bytes.Equal(x.Value, b.(*UByteArray).Value)
	case *IntArray:
		return slices.Equal(x.Value, b.(*IntArray).Value)
	case *UIntArray:
		return slices.Equal(x.Value, b.(*UIntArray).Value)
	case *LongArray:
		return slices.Equal(x.Value, b.(*LongArray).Value)
	case *ULongArray:
		return slices.Equal(x.Value, b.(*ULongArray).Value)
	case *List:
		y := b.(*List)
		if x.elem != y.elem || len(x.tags) != len(y.tags) {
			return false
		}
		for i := range x.tags {
			if x.tags[i].ID() != y.tags[i].ID() || !equalPayload(x.tags[i], y.tags[i]) {
				return false
			}
		}
		return true
	case *Compound:
		y := b.(*Compound)
		if len(x.tags) != len(y.tags) {
			return false
		}
		for _, t := range x.tags {
			u, ok := y.Lookup(t.Name())
			if !ok || !Equal(t, u) {
				return false
			}
		}
		return true
	}

	ea, err := Write(a)
	if err != nil {
		return false
	}
	eb, err := Write(b)
	return err == nil && bytes.Equal(ea, eb)
}
