// Package tag implements the NBT tag tree and its binary codec.
//
// A tree is built from Tag values: scalars (Byte, Short, Int, Long, Float,
// Double and their unsigned storage variants), length-prefixed arrays,
// String, List (ordered, one element type) and Compound (uniquely named
// children, terminated by an End byte on the wire).
//
// # Building and Writing
//
//	root := tag.NewCompound("out")
//	list, _ := tag.NewList("ListTest", tag.NewString("", "Hi"), tag.NewString("", "Goodbye"))
//	root.Put(list)
//	root.Put(tag.NewInt("count", 2))
//
//	data, err := tag.Marshal(root)
//
// Size reports the encoded length up front and WriteTo fills a caller
// supplied buffer.
//
// # Reading
//
//	root, err := tag.Unmarshal(data)
//	first, err := tag.At(root).Key("ListTest").Index(0).Text()
//
// Load decodes any single tag and checks that the id in the stream matches
// it. Children of lists and compounds are constructed from a Registry by
// their wire id.
//
// # Wire Format
//
//	header:   id int8, name length uint16, name bytes (modified UTF-8)
//	scalar:   1, 2, 4 or 8 bytes
//	array:    count uint32, elements
//	string:   encoded length uint16, bytes
//	list:     element id int8, count uint32, element payloads
//	compound: child tags (header and payload), then 0x00
//
// Multi-byte fields are big-endian unless WithByteOrder says otherwise.
// Unsigned variants are written with the id of their signed counterpart,
// so a decoded tree holds signed tags; the unsigned Ref getters accept
// either.
//
// # Custom Variants
//
// A custom variant embeds Named, implements the payload methods with the
// wire package, and is registered under a free id:
//
//	tag.Register(20, func() tag.Tag { return &Vec3{} })
//
// Use NewRegistry and WithRegistry to keep plug-ins out of the process
// default.
//
// # Errors
//
// Every failure is an *errors.Error. Decode errors carry the byte offset
// and the path of the failing tag:
//
//	nbt: [load] truncated_buffer at ListTest[2] (offset 41): need 39 bytes, 12 remaining
package tag
