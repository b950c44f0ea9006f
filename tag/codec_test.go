package tag

import (
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/wippyai/nbt/errors"
	"github.com/wippyai/nbt/mutf8"
)

func mustList(t testing.TB, name string, items ...Tag) *List {
	t.Helper()
	l, err := NewList(name, items...)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	return l
}

func TestMarshalLayout(t *testing.T) {
	root := NewCompound("hello",
		NewInt("x", 5),
		mustList(t, "l", NewShort("", 1), NewShort("", 2)),
	)

	want := []byte{
		0x0a, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o',
		0x03, 0x00, 0x01, 'x', 0x00, 0x00, 0x00, 0x05,
		0x09, 0x00, 0x01, 'l', 0x02, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01, 0x00, 0x02,
		0x00,
	}

	got, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Marshal:\n got % x\nwant % x", got, want)
	}

	back, err := Unmarshal(got)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !Equal(root, back) {
		t.Errorf("round trip mismatch:\n%s", cmp.Diff(Dump(root), Dump(back)))
	}
}

func TestEmptyCompoundSentinel(t *testing.T) {
	got, err := Marshal(NewCompound("abc"))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := []byte{0x0a, 0x00, 0x03, 'a', 'b', 'c', 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestListTestExample(t *testing.T) {
	texts := []string{"Hi", "Goodbye", "I never thought it had to end like this", "\\r"}

	list := mustList(t, "ListTest")
	for _, s := range texts {
		if err := list.Push(NewString("", s)); err != nil {
			t.Fatalf("Push(%q): %v", s, err)
		}
	}
	out := NewCompound("out", list)

	data, err := Marshal(out)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	in, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if in.Name() != "out" {
		t.Errorf("root name: got %q, want %q", in.Name(), "out")
	}
	got, err := At(in).Key("ListTest").List()
	if err != nil {
		t.Fatalf("ListTest: %v", err)
	}
	if got.Len() != len(texts) || got.ElemType() != TypeString {
		t.Fatalf("ListTest: %d elements of %v", got.Len(), got.ElemType())
	}
	for i, want := range texts {
		s, err := At(got).Index(i).Text()
		if err != nil || s != want {
			t.Errorf("element %d: got %q, %v, want %q", i, s, err, want)
		}
	}

	first, err := At(in).Key("ListTest").Index(0).Text()
	if err != nil || first != "Hi" {
		t.Errorf("ListTest[0]: got %q, %v", first, err)
	}
}

func TestRoundTripAllVariants(t *testing.T) {
	inner := NewCompound("inner", NewString("s", "a\x00😀"))
	inner.Terminate()

	root := NewCompound("root",
		NewByte("b", -1),
		NewShort("s", -300),
		NewInt("i", 1<<30),
		NewLong("l", -1<<62),
		NewFloat("f", 1.25),
		NewDouble("d", -0.5),
		NewByteArray("ba", []int8{-1, 0, 1}),
		NewString("str", "héllo"),
		mustList(t, "li", NewLong("", 1), NewLong("", 2)),
		inner,
		NewIntArray("ia", []int32{1, -2}),
		NewLongArray("la", []int64{}),
		mustList(t, "empty"),
		mustList(t, "nested", mustList(t, "", NewByte("", 1)), mustList(t, "")),
	)

	data, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !Equal(root, back) {
		t.Fatalf("round trip mismatch:\n%s", cmp.Diff(Dump(root), Dump(back)))
	}

	again, err := Marshal(back)
	if err != nil {
		t.Fatalf("re-Marshal: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("re-encoded bytes differ:\n got % x\nwant % x", again, data)
	}

	la, err := At(back).Key("la").Int64s()
	if err != nil || la == nil || len(la) != 0 {
		t.Errorf("empty array: got %#v, %v", la, err)
	}
}

func TestEmptyListKeepsElemType(t *testing.T) {
	data := []byte{0x09, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00}

	var l List
	n, err := Load(data, &l)
	if err != nil || n != len(data) {
		t.Fatalf("Load: %d, %v", n, err)
	}
	if l.ElemType() != TypeInt || l.Len() != 0 {
		t.Fatalf("got %d elements of %v", l.Len(), l.ElemType())
	}

	out, err := Write(&l)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("got % x, want % x", out, data)
	}

	untyped, err := Write(mustList(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}; !bytes.Equal(untyped, want) {
		t.Errorf("untyped: got % x, want % x", untyped, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		kind   errors.Kind
		path   []string
		offset int
		value  any
	}{
		{
			name:   "truncated string",
			data:   []byte{0x0a, 0x00, 0x00, 0x08, 0x00, 0x01, 's', 0x00, 0x05, 'a', 'b'},
			kind:   errors.KindTruncatedBuffer,
			path:   []string{"s"},
			offset: 9,
			value:  5,
		},
		{
			name:   "unknown id",
			data:   []byte{0x0a, 0x00, 0x00, 0x63, 0x00, 0x00, 0x00},
			kind:   errors.KindUnknownTagID,
			offset: 3,
			value:  int8(99),
		},
		{
			name:   "unknown list element",
			data:   []byte{0x0a, 0x00, 0x00, 0x09, 0x00, 0x01, 'l', 0x63, 0x00, 0x00, 0x00, 0x01, 0x00},
			kind:   errors.KindUnknownTagID,
			path:   []string{"l"},
			offset: 12,
			value:  int8(99),
		},
		{
			name:   "missing end",
			data:   []byte{0x0a, 0x00, 0x00, 0x01, 0x00, 0x01, 'b', 0x07},
			kind:   errors.KindTruncatedBuffer,
			offset: 8,
			value:  1,
		},
		{
			name:   "end elements",
			data:   []byte{0x0a, 0x00, 0x00, 0x09, 0x00, 0x01, 'l', 0x00, 0x00, 0x00, 0x00, 0x02, 0x00},
			kind:   errors.KindIllegalListElement,
			path:   []string{"l"},
			offset: 7,
		},
		{
			name:   "huge array count",
			data:   []byte{0x0a, 0x00, 0x00, 0x0b, 0x00, 0x01, 'a', 0xff, 0xff, 0xff, 0xff, 0x00},
			kind:   errors.KindTruncatedBuffer,
			path:   []string{"a"},
			offset: 7,
		},
		{
			name:   "wrong root",
			data:   []byte{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01},
			kind:   errors.KindTagIDMismatch,
			offset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Unmarshal(tt.data)
			if c != nil {
				t.Errorf("expected nil compound on error, got %v", Dump(c))
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("expected *errors.Error, got %v", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("kind: got %s, want %s (%v)", e.Kind, tt.kind, err)
			}
			if !cmp.Equal(e.Path, tt.path) {
				t.Errorf("path: got %v, want %v", e.Path, tt.path)
			}
			if !e.HasOffset() || e.Offset != tt.offset {
				t.Errorf("offset: got %d (set %v), want %d", e.Offset, e.HasOffset(), tt.offset)
			}
			if tt.value != nil && e.Value != tt.value {
				t.Errorf("value: got %v (%T), want %v (%T)", e.Value, e.Value, tt.value, tt.value)
			}
		})
	}
}

func TestLoadChecksID(t *testing.T) {
	data := []byte{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}

	_, err := Load(data, &Short{})
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindTagIDMismatch {
		t.Fatalf("expected tag_id_mismatch, got %v", err)
	}
	if e.Got != int8(3) || e.Want != int8(2) {
		t.Errorf("got/want: %v/%v", e.Got, e.Want)
	}

	var u UInt
	if _, err := Load(data, &u); err != nil || u.Value != 1 {
		t.Errorf("UInt from Int wire id: %d, %v", u.Value, err)
	}

	var end End
	if n, err := Load([]byte{0x00}, &end); err != nil || n != 1 {
		t.Errorf("End: %d, %v", n, err)
	}
}

func TestUnsignedWriteAsSigned(t *testing.T) {
	tests := []struct {
		name     string
		unsigned Tag
		signed   Tag
	}{
		{"byte", NewUByte("v", 0xff), NewByte("v", -1)},
		{"short", NewUShort("v", 0xffff), NewShort("v", -1)},
		{"int", NewUInt("v", 0xffffffff), NewInt("v", -1)},
		{"long", NewULong("v", 1<<63), NewLong("v", -1<<63)},
		{"byte array", NewUByteArray("v", []byte{0x80}), NewByteArray("v", []int8{-128})},
		{"int array", NewUIntArray("v", []uint32{1}), NewIntArray("v", []int32{1})},
		{"long array", NewULongArray("v", []uint64{2}), NewLongArray("v", []int64{2})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Write(tt.unsigned)
			if err != nil {
				t.Fatal(err)
			}
			s, err := Write(tt.signed)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(u, s) {
				t.Errorf("unsigned % x, signed % x", u, s)
			}
		})
	}
}

func TestLittleEndian(t *testing.T) {
	root := NewCompound("", NewInt("x", 1), NewString("s", "ab"))
	le := WithByteOrder(binary.LittleEndian)

	data, err := Marshal(root, le)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0x0a, 0x00, 0x00,
		0x03, 0x01, 0x00, 'x', 0x01, 0x00, 0x00, 0x00,
		0x08, 0x01, 0x00, 's', 0x02, 0x00, 'a', 'b',
		0x00,
	}
	if !bytes.Equal(data, want) {
		t.Fatalf("got % x, want % x", data, want)
	}

	back, err := Unmarshal(data, le)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(root, back) {
		t.Errorf("round trip mismatch:\n%s", cmp.Diff(Dump(root), Dump(back)))
	}
}

func TestPassThroughText(t *testing.T) {
	root := NewCompound("", NewString("s", "\x00"))

	modified, _ := Marshal(root)
	plain, err := Marshal(root, WithTextMode(mutf8.PassThrough))
	if err != nil {
		t.Fatal(err)
	}
	if len(modified) != len(plain)+1 {
		t.Errorf("modified %d bytes, pass-through %d bytes", len(modified), len(plain))
	}

	back, err := Unmarshal(plain, WithTextMode(mutf8.PassThrough))
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := At(back).Key("s").Text(); s != "\x00" {
		t.Errorf("got %q", s)
	}
}

func TestStrictEnd(t *testing.T) {
	root := NewCompound("root", NewCompound("child"))

	if _, err := Marshal(root); err != nil {
		t.Fatalf("lenient Marshal: %v", err)
	}

	_, err := Marshal(root, WithStrictEnd(true))
	if !stderrors.Is(err, errors.ErrEndlessCompound) {
		t.Fatalf("expected endless_compound, got %v", err)
	}

	root.Terminate()
	_, err = Marshal(root, WithStrictEnd(true))
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindEndlessCompound {
		t.Fatalf("expected endless_compound for child, got %v", err)
	}
	if !cmp.Equal(e.Path, []string{"child"}) {
		t.Errorf("path: got %v", e.Path)
	}

	child, _ := At(root).Key("child").Compound()
	child.Put(&End{})
	strict, err := Marshal(root, WithStrictEnd(true))
	if err != nil {
		t.Fatalf("terminated Marshal: %v", err)
	}
	lenient, _ := Marshal(root)
	if !bytes.Equal(strict, lenient) {
		t.Error("strict and lenient encodings differ")
	}

	back, err := Unmarshal(strict)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Marshal(back, WithStrictEnd(true)); err != nil {
		t.Errorf("decoded trees are terminated: %v", err)
	}
}

func nest(depth int) *Compound {
	c := NewCompound("leaf")
	for i := 1; i < depth; i++ {
		c = NewCompound("", c)
	}
	return c
}

func TestMaxDepth(t *testing.T) {
	data, err := Marshal(nest(10))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Unmarshal(data, WithMaxDepth(10)); err != nil {
		t.Errorf("depth 10 within limit: %v", err)
	}
	_, err = Unmarshal(data, WithMaxDepth(9))
	if !stderrors.Is(err, errors.ErrNestingTooDeep) {
		t.Errorf("expected nesting_too_deep, got %v", err)
	}

	if _, err := Marshal(nest(10), WithMaxDepth(9)); !stderrors.Is(err, errors.ErrNestingTooDeep) {
		t.Errorf("expected nesting_too_deep on write, got %v", err)
	}
}

func TestDeepListInput(t *testing.T) {
	// Lists nested far beyond the default limit.
	var data []byte
	data = append(data, 0x0a, 0x00, 0x00, 0x09, 0x00, 0x00)
	for range 2000 {
		data = append(data, 0x09, 0x00, 0x00, 0x00, 0x01)
	}
	_, err := Unmarshal(data)
	if !stderrors.Is(err, errors.ErrNestingTooDeep) {
		t.Fatalf("expected nesting_too_deep, got %v", err)
	}
}

func TestSelfContainingCompound(t *testing.T) {
	c := NewCompound("loop")
	c.Put(c)

	_, err := Marshal(c)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindNestingTooDeep || e.Phase != errors.PhaseWrite {
		t.Fatalf("expected write nesting_too_deep, got %v", err)
	}
}

func TestWriteOverflow(t *testing.T) {
	long := strings.Repeat("x", 1<<16)

	_, err := Marshal(NewCompound("", NewString(long, "")))
	if !stderrors.Is(err, errors.ErrOverflow) {
		t.Errorf("name: expected overflow, got %v", err)
	}

	_, err = Marshal(NewCompound("", NewCompound("c", NewString("s", long))))
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindOverflow {
		t.Fatalf("payload: expected overflow, got %v", err)
	}
	if !cmp.Equal(e.Path, []string{"c", "s"}) {
		t.Errorf("path: got %v", e.Path)
	}
}

func TestSizeAndWriteTo(t *testing.T) {
	root := NewCompound("r", NewLongArray("a", []int64{1, 2, 3}), NewString("s", "€"))
	want, err := Marshal(root)
	if err != nil {
		t.Fatal(err)
	}

	n, err := Size(root)
	if err != nil || n != len(want) {
		t.Fatalf("Size: %d, %v, want %d", n, err, len(want))
	}

	buf := make([]byte, n+4)
	written, err := WriteTo(buf, root)
	if err != nil || written != n {
		t.Fatalf("WriteTo: %d, %v", written, err)
	}
	if !bytes.Equal(buf[:n], want) {
		t.Errorf("WriteTo: got % x, want % x", buf[:n], want)
	}

	short := make([]byte, n-1)
	if _, err := WriteTo(short, root); !stderrors.Is(err, errors.ErrShortBuffer) {
		t.Errorf("expected short_buffer, got %v", err)
	}
	if !bytes.Equal(short, make([]byte, n-1)) {
		t.Error("short buffer was modified")
	}
}

func TestAppend(t *testing.T) {
	prefix := []byte{0xde, 0xad}
	out, err := NewEncoder().Append(prefix, NewByte("b", 7))
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xde, 0xad, 0x01, 0x00, 0x01, 'b', 0x07}
	if !bytes.Equal(out, want) {
		t.Errorf("got % x, want % x", out, want)
	}
}

func TestTrailingBytesIgnored(t *testing.T) {
	data := []byte{0x0a, 0x00, 0x00, 0x00, 0xff, 0xff}
	c, err := Unmarshal(data)
	if err != nil || c.Len() != 0 {
		t.Fatalf("got %v, %v", c, err)
	}

	n, err := Load(data, &Compound{})
	if err != nil || n != 4 {
		t.Errorf("Load consumed %d, %v", n, err)
	}
}

func TestMarshalNil(t *testing.T) {
	if _, err := Marshal(nil); err == nil {
		t.Error("expected error for nil compound")
	}
	if _, err := Write(nil); err == nil {
		t.Error("expected error for nil tag")
	}
}

func TestOptionsPanic(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil order", func() { WithByteOrder(nil) }},
		{"zero depth", func() { WithMaxDepth(0) }},
		{"nil registry", func() { WithRegistry(nil) }},
		{"bad text mode", func() { WithTextMode(mutf8.Mode(9)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

var scalarKinds = []TypeID{
	TypeByte, TypeShort, TypeInt, TypeLong, TypeFloat, TypeDouble,
	TypeByteArray, TypeString, TypeIntArray, TypeLongArray,
}

func drawTag(t *rapid.T, id TypeID, depth int) Tag {
	switch id {
	case TypeByte:
		return &Byte{Value: rapid.Int8().Draw(t, "byte")}
	case TypeShort:
		return &Short{Value: rapid.Int16().Draw(t, "short")}
	case TypeInt:
		return &Int{Value: rapid.Int32().Draw(t, "int")}
	case TypeLong:
		return &Long{Value: rapid.Int64().Draw(t, "long")}
	case TypeFloat:
		return &Float{Value: rapid.Float32().Draw(t, "float")}
	case TypeDouble:
		return &Double{Value: rapid.Float64().Draw(t, "double")}
	case TypeByteArray:
		return &ByteArray{Value: rapid.SliceOfN(rapid.Int8(), 0, 16).Draw(t, "bytes")}
	case TypeString:
		return &String{Value: rapid.StringN(0, 32, -1).Draw(t, "string")}
	case TypeIntArray:
		return &IntArray{Value: rapid.SliceOfN(rapid.Int32(), 0, 8).Draw(t, "ints")}
	case TypeLongArray:
		return &LongArray{Value: rapid.SliceOfN(rapid.Int64(), 0, 8).Draw(t, "longs")}
	case TypeList:
		elem := drawKind(t, depth+1)
		n := rapid.IntRange(0, 4).Draw(t, "len")
		l := &List{}
		if n == 0 {
			if err := l.SetElemType(elem); err != nil {
				t.Fatal(err)
			}
		}
		for range n {
			if err := l.Push(drawTag(t, elem, depth+1)); err != nil {
				t.Fatal(err)
			}
		}
		return l
	case TypeCompound:
		c := &Compound{}
		n := rapid.IntRange(0, 4).Draw(t, "children")
		for range n {
			child := drawTag(t, drawKind(t, depth+1), depth+1)
			c.Set(rapid.StringN(0, 8, -1).Draw(t, "name"), child)
		}
		return c
	}
	t.Fatalf("unexpected kind %v", id)
	return nil
}

func drawKind(t *rapid.T, depth int) TypeID {
	kinds := scalarKinds
	if depth < 3 {
		kinds = append(kinds[:len(kinds):len(kinds)], TypeList, TypeCompound)
	}
	return rapid.SampledFrom(kinds).Draw(t, "kind")
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := drawTag(t, TypeCompound, 0).(*Compound)
		root.SetName(rapid.StringN(0, 8, -1).Draw(t, "root"))

		data, err := Marshal(root)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		back, err := Unmarshal(data)
		if err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if !Equal(root, back) {
			t.Fatalf("round trip mismatch:\n%s", cmp.Diff(Dump(root), Dump(back)))
		}
		again, err := Marshal(back)
		if err != nil {
			t.Fatalf("re-Marshal: %v", err)
		}
		if !bytes.Equal(data, again) {
			t.Fatalf("re-encoded bytes differ")
		}
		if n, _ := Size(root); n != len(data) {
			t.Fatalf("Size = %d, encoded %d bytes", n, len(data))
		}
	})
}

func FuzzUnmarshal(f *testing.F) {
	seed := NewCompound("seed",
		NewInt("i", 1),
		NewString("s", "x\x00"),
		NewCompound("c", NewLongArray("la", []int64{1})),
	)
	if data, err := Marshal(seed); err == nil {
		f.Add(data)
	}
	f.Add([]byte{0x0a, 0x00, 0x00, 0x00})
	f.Add([]byte{0x0a, 0x00, 0x00, 0x09, 0x00, 0x00, 0x0a, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00})
	f.Add([]byte{0x0a, 0x00, 0x00, 0x63})
	f.Add([]byte{0x0a, 0xff, 0xff})

	f.Fuzz(func(t *testing.T, data []byte) {
		c, err := Unmarshal(data)
		if err != nil {
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("error is not *errors.Error: %v", err)
			}
			return
		}

		first, err := Marshal(c)
		if err != nil {
			// Lenient text decoding can grow a string past the length limit.
			return
		}
		c2, err := Unmarshal(first)
		if err != nil {
			t.Fatalf("re-decode failed: %v", err)
		}
		second, err := Marshal(c2)
		if err != nil {
			t.Fatalf("re-encode failed: %v", err)
		}
		if !bytes.Equal(first, second) {
			t.Fatalf("encoding not stable:\n% x\n% x", first, second)
		}
	})
}
