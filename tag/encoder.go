package tag

import (
	stderrors "errors"
	"strconv"

	"github.com/wippyai/nbt/errors"
	"github.com/wippyai/nbt/wire"
)

// Encoder writes tags. Like Decoder it tracks depth and path, so an
// Encoder must not be shared between goroutines.
type Encoder struct {
	cfg   config
	depth int
	path  []string
}

// NewEncoder creates an Encoder with the given options.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{cfg: newConfig(opts)}
}

// StrictEnd reports whether unterminated compounds are rejected.
func (e *Encoder) StrictEnd() bool {
	return e.cfg.strictEnd
}

// Encode returns the complete encoding of t (header and payload).
func (e *Encoder) Encode(t Tag) ([]byte, error) {
	w := wire.GetWriter(e.cfg.order, e.cfg.text)
	defer wire.PutWriter(w)

	if err := e.encode(w, t); err != nil {
		return nil, err
	}
	return append([]byte(nil), w.Bytes()...), nil
}

// Append appends the complete encoding of t to dst.
func (e *Encoder) Append(dst []byte, t Tag) ([]byte, error) {
	w := wire.NewWriter(dst, e.cfg.order, e.cfg.text)
	if err := e.encode(w, t); err != nil {
		return dst, err
	}
	return w.Bytes(), nil
}

// Size returns the number of bytes Encode would produce for t.
func (e *Encoder) Size(t Tag) (int, error) {
	w := wire.GetWriter(e.cfg.order, e.cfg.text)
	defer wire.PutWriter(w)

	if err := e.encode(w, t); err != nil {
		return 0, err
	}
	return w.Len(), nil
}

// WriteTo fills the start of dst with the encoding of t and returns the
// number of bytes written. A dst shorter than Size(t) fails with a
// short_buffer error and is left untouched.
func (e *Encoder) WriteTo(dst []byte, t Tag) (int, error) {
	w := wire.GetWriter(e.cfg.order, e.cfg.text)
	defer wire.PutWriter(w)

	if err := e.encode(w, t); err != nil {
		return 0, err
	}
	if len(dst) < w.Len() {
		return 0, errors.ShortBuffer(w.Len(), len(dst))
	}
	return copy(dst, w.Bytes()), nil
}

func (e *Encoder) encode(w *wire.Writer, t Tag) error {
	e.depth = 0
	e.path = e.path[:0]

	if t == nil {
		return errors.InvalidInput(errors.PhaseWrite, "nil tag")
	}
	id := t.ID()
	w.Int8(int8(id.WireID()))
	if id == TypeEnd {
		return nil
	}
	if err := w.Text(t.Name()); err != nil {
		return e.fail(err)
	}
	return e.payload(w, t)
}

// WriteTag writes a complete child tag: id, name and payload.
func (e *Encoder) WriteTag(w *wire.Writer, t Tag) error {
	id := t.ID()
	w.Int8(int8(id.WireID()))
	if id == TypeEnd {
		return nil
	}

	e.path = append(e.path, t.Name())
	defer e.pop()

	if err := w.Text(t.Name()); err != nil {
		return e.fail(err)
	}
	return e.payload(w, t)
}

// WriteElement writes the payload of a list element.
func (e *Encoder) WriteElement(w *wire.Writer, t Tag, index int) error {
	e.path = append(e.path, "["+strconv.Itoa(index)+"]")
	defer e.pop()

	return e.payload(w, t)
}

// Descend records entry into a container payload and fails once the
// nesting limit is exceeded, which also catches trees that contain
// themselves. Every successful Descend must be paired with Ascend.
func (e *Encoder) Descend() error {
	if e.depth >= e.cfg.maxDepth {
		err := errors.New(errors.PhaseWrite, errors.KindNestingTooDeep).
			Value(e.cfg.maxDepth).
			Detail("nesting exceeds limit of %d", e.cfg.maxDepth).
			Build()
		return e.fail(err)
	}
	e.depth++
	return nil
}

// Ascend records leaving a container payload.
func (e *Encoder) Ascend() {
	e.depth--
}

// Path returns a copy of the path of the tag being written.
func (e *Encoder) Path() []string {
	return append([]string(nil), e.path...)
}

func (e *Encoder) payload(w *wire.Writer, t Tag) error {
	if err := t.WritePayload(w, e); err != nil {
		return e.fail(err)
	}
	return nil
}

func (e *Encoder) pop() {
	e.path = e.path[:len(e.path)-1]
}

func (e *Encoder) fail(err error) error {
	var ee *errors.Error
	if stderrors.As(err, &ee) {
		ee.WithPath(e.path)
		return err
	}
	return errors.Wrap(errors.PhaseWrite, errors.KindInvalidInput, err, "payload encode failed").WithPath(e.path)
}
