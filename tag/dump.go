package tag

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Part identifies a piece of a dump line for styling.
type Part int

const (
	PartType  Part = iota // variant name, e.g. "Compound"
	PartName              // quoted tag name or list index
	PartValue             // scalar value, string or array element
	PartCount             // child or element count
)

// DumpOptions controls Fprint.
type DumpOptions struct {
	// Indent is repeated once per nesting level. Defaults to two spaces.
	Indent string
	// FullArrays prints every array element on its own line instead of
	// only the element count.
	FullArrays bool
	// Style, when set, decorates each part of a line, e.g. with terminal
	// colours.
	Style func(p Part, s string) string
}

// Dump renders t as an indented tree, one line per tag:
//
//	Compound("out"): 1 entry {
//	  List("ListTest"): 2 entries of String {
//	    String[0]: "Hi"
//	    String[1]: "Goodbye"
//	  }
//	}
func Dump(t Tag) string {
	var b strings.Builder
	dumper{opts: DumpOptions{Indent: "  "}, b: &b}.tag(t, 0, label{named: true})
	return b.String()
}

// Fprint writes the dump of t to w.
func Fprint(w io.Writer, t Tag, opts DumpOptions) error {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	var b strings.Builder
	dumper{opts: opts, b: &b}.tag(t, 0, label{named: true})
	_, err := io.WriteString(w, b.String())
	return err
}

type label struct {
	named bool
	index int
}

type dumper struct {
	opts DumpOptions
	b    *strings.Builder
}

func (d dumper) style(p Part, s string) string {
	if d.opts.Style == nil {
		return s
	}
	return d.opts.Style(p, s)
}

func (d dumper) head(t Tag, depth int, l label) {
	d.b.WriteString(strings.Repeat(d.opts.Indent, depth))
	d.b.WriteString(d.style(PartType, t.ID().String()))
	if l.named {
		d.b.WriteString(d.style(PartName, "("+strconv.Quote(t.Name())+")"))
	} else {
		d.b.WriteString(d.style(PartName, "["+strconv.Itoa(l.index)+"]"))
	}
}

func (d dumper) line(t Tag, depth int, l label, value string) {
	d.head(t, depth, l)
	d.b.WriteString(": ")
	d.b.WriteString(d.style(PartValue, value))
	d.b.WriteByte('\n')
}

func entries(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return strconv.Itoa(n) + " entries"
}

func (d dumper) tag(t Tag, depth int, l label) {
	switch v := t.(type) {
	case nil:
		d.b.WriteString(strings.Repeat(d.opts.Indent, depth))
		d.b.WriteString("<nil>\n")
	case *End:
		d.b.WriteString(strings.Repeat(d.opts.Indent, depth))
		d.b.WriteString(d.style(PartType, "End"))
		d.b.WriteByte('\n')
	case *Byte:
		d.line(t, depth, l, strconv.FormatInt(int64(v.Value), 10))
	case *UByte:
		d.line(t, depth, l, strconv.FormatUint(uint64(v.Value), 10))
	case *Short:
		d.line(t, depth, l, strconv.FormatInt(int64(v.Value), 10))
	case *UShort:
		d.line(t, depth, l, strconv.FormatUint(uint64(v.Value), 10))
	case *Int:
		d.line(t, depth, l, strconv.FormatInt(int64(v.Value), 10))
	case *UInt:
		d.line(t, depth, l, strconv.FormatUint(uint64(v.Value), 10))
	case *Long:
		d.line(t, depth, l, strconv.FormatInt(v.Value, 10))
	case *ULong:
		d.line(t, depth, l, strconv.FormatUint(v.Value, 10))
	case *Float:
		d.line(t, depth, l, strconv.FormatFloat(float64(v.Value), 'g', -1, 32))
	case *Double:
		d.line(t, depth, l, strconv.FormatFloat(v.Value, 'g', -1, 64))
	case *String:
		d.line(t, depth, l, strconv.Quote(v.Value))
	case *ByteArray:
		array(d, t, depth, l, v.Value, func(x int8) string { return strconv.FormatInt(int64(x), 10) })
	case *UByteArray:
		array(d, t, depth, l, v.Value, func(x byte) string { return strconv.FormatUint(uint64(x), 10) })
	case *IntArray:
		array(d, t, depth, l, v.Value, func(x int32) string { return strconv.FormatInt(int64(x), 10) })
	case *UIntArray:
		array(d, t, depth, l, v.Value, func(x uint32) string { return strconv.FormatUint(uint64(x), 10) })
	case *LongArray:
		array(d, t, depth, l, v.Value, func(x int64) string { return strconv.FormatInt(x, 10) })
	case *ULongArray:
		array(d, t, depth, l, v.Value, func(x uint64) string { return strconv.FormatUint(x, 10) })
	case *List:
		d.container(t, depth, l, v.Len(), v.ElemType())
		for i, child := range v.All() {
			d.tag(child, depth+1, label{index: i})
		}
		d.close(depth, v.Len())
	case *Compound:
		d.container(t, depth, l, v.Len(), TypeEnd)
		for _, child := range v.All() {
			d.tag(child, depth+1, label{named: true})
		}
		d.close(depth, v.Len())
	default:
		if s, ok := t.(fmt.Stringer); ok {
			d.line(t, depth, l, s.String())
			return
		}
		d.head(t, depth, l)
		d.b.WriteByte('\n')
	}
}

func (d dumper) container(t Tag, depth int, l label, n int, elem TypeID) {
	d.head(t, depth, l)
	d.b.WriteString(": ")
	count := entries(n)
	if elem != TypeEnd {
		count += " of " + elem.String()
	}
	d.b.WriteString(d.style(PartCount, count))
	if n > 0 {
		d.b.WriteString(" {")
	}
	d.b.WriteByte('\n')
}

func (d dumper) close(depth, n int) {
	if n == 0 {
		return
	}
	d.b.WriteString(strings.Repeat(d.opts.Indent, depth))
	d.b.WriteString("}\n")
}

func array[E any](d dumper, t Tag, depth int, l label, v []E, format func(E) string) {
	d.head(t, depth, l)
	d.b.WriteString(": ")
	d.b.WriteString(d.style(PartCount, entries(len(v))))
	d.b.WriteByte('\n')
	if !d.opts.FullArrays {
		return
	}
	pad := strings.Repeat(d.opts.Indent, depth+1)
	for _, x := range v {
		d.b.WriteString(pad)
		d.b.WriteString(d.style(PartValue, format(x)))
		d.b.WriteByte('\n')
	}
}
