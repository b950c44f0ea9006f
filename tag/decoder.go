package tag

import (
	stderrors "errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/nbt/errors"
	"github.com/wippyai/nbt/wire"
)

// Decoder reads tags from a buffer. It tracks nesting depth and the path
// of the tag being decoded, so a Decoder must not be shared between
// goroutines.
type Decoder struct {
	cfg   config
	depth int
	path  []string
}

// NewDecoder creates a Decoder with the given options.
func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{cfg: newConfig(opts)}
}

// Registry returns the registry used to construct tags.
func (d *Decoder) Registry() *Registry {
	return d.cfg.registry
}

// NewReader returns a Reader over data in the decoder's byte order and
// text mode.
func (d *Decoder) NewReader(data []byte) *wire.Reader {
	return wire.NewReader(data, d.cfg.order, d.cfg.text)
}

// Load decodes one complete tag (header and payload) from the start of
// data into t and returns the number of bytes consumed. The id in the
// stream must equal t's wire id or its in-memory id.
func (d *Decoder) Load(data []byte, t Tag) (int, error) {
	d.depth = 0
	d.path = d.path[:0]

	r := d.NewReader(data)
	b, err := r.Int8()
	if err != nil {
		return 0, err
	}

	read, want := TypeID(b), t.ID()
	if read != want.WireID() && read != want {
		return 0, errors.TagIDMismatch(b, int8(want.WireID())).At(0)
	}
	if want == TypeEnd {
		return r.Position(), nil
	}

	name, err := r.Text()
	if err != nil {
		return 0, err
	}
	if err := d.payload(r, t); err != nil {
		return 0, err
	}
	t.SetName(name)
	return r.Position(), nil
}

// ReadTag reads a complete tag whose id is not known in advance, as
// compound children are. The id selects the constructor; id 0 yields an
// *End without reading anything more.
func (d *Decoder) ReadTag(r *wire.Reader) (Tag, error) {
	start := r.Position()
	b, err := r.Int8()
	if err != nil {
		return nil, d.fail(err)
	}
	id := TypeID(b)
	if id == TypeEnd {
		return &End{}, nil
	}

	t, err := d.construct(id, start)
	if err != nil {
		return nil, err
	}

	name, err := r.Text()
	if err != nil {
		return nil, d.fail(err)
	}
	t.SetName(name)

	d.path = append(d.path, name)
	defer d.pop()

	if err := d.payload(r, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ReadElement reads the payload of a list element whose id was given by
// the enclosing list.
func (d *Decoder) ReadElement(r *wire.Reader, id TypeID, index int) (Tag, error) {
	t, err := d.construct(id, r.Position())
	if err != nil {
		return nil, err
	}

	d.path = append(d.path, "["+strconv.Itoa(index)+"]")
	defer d.pop()

	if err := d.payload(r, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Descend records entry into a container payload and fails once the
// nesting limit is exceeded. Every successful Descend must be paired with
// Ascend.
func (d *Decoder) Descend(r *wire.Reader) error {
	if d.depth >= d.cfg.maxDepth {
		return d.fail(errors.NestingTooDeep(d.cfg.maxDepth).At(r.Position()))
	}
	d.depth++
	return nil
}

// Ascend records leaving a container payload.
func (d *Decoder) Ascend() {
	d.depth--
}

func (d *Decoder) construct(id TypeID, offset int) (Tag, error) {
	t, err := d.cfg.registry.Construct(id)
	if err != nil {
		d.cfg.log.Debug("unknown tag id in stream",
			zap.Int8("id", int8(id)),
			zap.Int("offset", offset),
			zap.String("path", errors.JoinPath(d.path)))

		e := errors.UnknownTagID(errors.PhaseLoad, int8(id)).At(offset)
		return nil, e.WithPath(d.path)
	}
	return t, nil
}

func (d *Decoder) payload(r *wire.Reader, t Tag) error {
	if err := t.ReadPayload(r, d); err != nil {
		return d.fail(err)
	}
	return nil
}

func (d *Decoder) pop() {
	d.path = d.path[:len(d.path)-1]
}

// fail attaches the current path to err. Errors that are not *errors.Error,
// as custom payload readers may return, are wrapped into one.
func (d *Decoder) fail(err error) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		e.WithPath(d.path)
		return err
	}
	return errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "payload decode failed").WithPath(d.path)
}
