package tag

import "strconv"

// TypeID identifies a tag variant. Built-in ids are non-negative and
// appear on the wire as-is. Unsigned storage variants use the negative of
// their signed counterpart's id; the sign is in-memory metadata only.
type TypeID int8

// Built-in type ids.
const (
	TypeEnd       TypeID = 0
	TypeByte      TypeID = 1
	TypeShort     TypeID = 2
	TypeInt       TypeID = 3
	TypeLong      TypeID = 4
	TypeFloat     TypeID = 5
	TypeDouble    TypeID = 6
	TypeByteArray TypeID = 7
	TypeString    TypeID = 8
	TypeList      TypeID = 9
	TypeCompound  TypeID = 10
	TypeIntArray  TypeID = 11
	TypeLongArray TypeID = 12

	TypeUByte      TypeID = -TypeByte
	TypeUShort     TypeID = -TypeShort
	TypeUInt       TypeID = -TypeInt
	TypeULong      TypeID = -TypeLong
	TypeUByteArray TypeID = -TypeByteArray
	TypeUIntArray  TypeID = -TypeIntArray
	TypeULongArray TypeID = -TypeLongArray
)

var typeNames = map[TypeID]string{
	TypeEnd:        "End",
	TypeByte:       "Byte",
	TypeShort:      "Short",
	TypeInt:        "Int",
	TypeLong:       "Long",
	TypeFloat:      "Float",
	TypeDouble:     "Double",
	TypeByteArray:  "ByteArray",
	TypeString:     "String",
	TypeList:       "List",
	TypeCompound:   "Compound",
	TypeIntArray:   "IntArray",
	TypeLongArray:  "LongArray",
	TypeUByte:      "UByte",
	TypeUShort:     "UShort",
	TypeUInt:       "UInt",
	TypeULong:      "ULong",
	TypeUByteArray: "UByteArray",
	TypeUIntArray:  "UIntArray",
	TypeULongArray: "ULongArray",
}

// String returns the variant name, or "TypeID(n)" for custom ids.
func (id TypeID) String() string {
	if s, ok := typeNames[id]; ok {
		return s
	}
	return "TypeID(" + strconv.Itoa(int(id)) + ")"
}

// Unsigned reports whether id is one of the built-in unsigned variants.
func (id TypeID) Unsigned() bool {
	switch id {
	case TypeUByte, TypeUShort, TypeUInt, TypeULong,
		TypeUByteArray, TypeUIntArray, TypeULongArray:
		return true
	}
	return false
}

// WireID returns the id written to the stream: the signed counterpart for
// unsigned variants, id itself otherwise.
func (id TypeID) WireID() TypeID {
	if id.Unsigned() {
		return -id
	}
	return id
}

// Builtin reports whether id names a built-in variant.
func (id TypeID) Builtin() bool {
	_, ok := typeNames[id]
	return ok
}
