package tag

import (
	"iter"

	"github.com/wippyai/nbt/errors"
	"github.com/wippyai/nbt/wire"
)

// List is an ordered sequence of unnamed tags that share one type id.
// The element type is fixed by the first Push (or by SetElemType, or by
// decoding) and stays until Clear. A List that was never typed has
// element type TypeEnd and is written with elem id 0 and count 0.
type List struct {
	Named
	elem TypeID
	tags []Tag
}

// NewList returns a list holding items, in order.
func NewList(name string, items ...Tag) (*List, error) {
	l := &List{Named: Named{name: name}}
	for _, t := range items {
		if err := l.Push(t); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (*List) ID() TypeID { return TypeList }

// ElemType returns the element type id, or TypeEnd when unset.
func (l *List) ElemType() TypeID {
	return l.elem
}

// SetElemType fixes the element type of an empty list, so that it is
// written with that id. It fails when the list holds elements of another
// type.
func (l *List) SetElemType(id TypeID) error {
	if len(l.tags) > 0 && id != l.elem {
		return errors.IllegalListElement(errors.PhaseAccess, int8(id), int8(l.elem))
	}
	l.elem = id
	return nil
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.tags)
}

// Push appends t, clearing its name. End tags and tags whose id differs
// from the element type are rejected and the list is left unchanged.
func (l *List) Push(t Tag) error {
	if err := l.check(t); err != nil {
		return err
	}
	if l.elem == TypeEnd {
		l.elem = t.ID()
	}
	t.SetName("")
	l.tags = append(l.tags, t)
	return nil
}

// At returns the element at index i.
func (l *List) At(i int) (Tag, error) {
	if i < 0 || i >= len(l.tags) {
		return nil, errors.IndexOutOfRange(nil, i, len(l.tags))
	}
	return l.tags[i], nil
}

// Set replaces the element at index i. The replacement must have the
// list's element type.
func (l *List) Set(i int, t Tag) error {
	if i < 0 || i >= len(l.tags) {
		return errors.IndexOutOfRange(nil, i, len(l.tags))
	}
	if err := l.check(t); err != nil {
		return err
	}
	t.SetName("")
	l.tags[i] = t
	return nil
}

// Delete removes the element at index i. The element type is kept.
func (l *List) Delete(i int) error {
	if i < 0 || i >= len(l.tags) {
		return errors.IndexOutOfRange(nil, i, len(l.tags))
	}
	l.tags = append(l.tags[:i], l.tags[i+1:]...)
	return nil
}

// All iterates over the elements with their indices.
func (l *List) All() iter.Seq2[int, Tag] {
	return func(yield func(int, Tag) bool) {
		for i, t := range l.tags {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Clear removes every element and unsets the element type.
func (l *List) Clear() {
	l.tags = nil
	l.elem = TypeEnd
}

func (l *List) check(t Tag) error {
	if t == nil {
		return errors.InvalidInput(errors.PhaseAccess, "nil tag")
	}
	id := t.ID()
	if id == TypeEnd || (l.elem != TypeEnd && id != l.elem) {
		return errors.IllegalListElement(errors.PhaseAccess, int8(id), int8(l.elem))
	}
	return nil
}

func (l *List) ReadPayload(r *wire.Reader, d *Decoder) error {
	if err := d.Descend(r); err != nil {
		return err
	}
	defer d.Ascend()

	b, err := r.Int8()
	if err != nil {
		return err
	}
	elem := TypeID(b)

	start := r.Position()
	count, err := r.Uint32()
	if err != nil {
		return err
	}
	if elem == TypeEnd && count > 0 {
		return errors.New(errors.PhaseLoad, errors.KindIllegalListElement).
			Mismatch(int8(TypeEnd), int8(TypeEnd)).
			Offset(start - 1).
			Detail("element type End with %d elements", count).
			Build()
	}

	// Preallocate no more than the input could hold.
	tags := make([]Tag, 0, min(uint64(count), uint64(r.Remaining())))
	for i := range int(count) {
		t, err := d.ReadElement(r, elem, i)
		if err != nil {
			return err
		}
		tags = append(tags, t)
	}

	l.elem = elem
	l.tags = tags
	return nil
}

func (l *List) WritePayload(w *wire.Writer, e *Encoder) error {
	if err := e.Descend(); err != nil {
		return err
	}
	defer e.Ascend()

	w.Int8(int8(l.elem.WireID()))
	if err := w.Count(len(l.tags)); err != nil {
		return err
	}
	for i, t := range l.tags {
		if id := t.ID(); id != l.elem {
			return errors.IllegalListElement(errors.PhaseWrite, int8(id), int8(l.elem))
		}
		if err := e.WriteElement(w, t, i); err != nil {
			return err
		}
	}
	return nil
}
