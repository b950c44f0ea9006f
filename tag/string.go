package tag

import "github.com/wippyai/nbt/wire"

// String holds text. On the wire it is the 2-byte length of the encoded
// bytes followed by the bytes, in the encoder's text mode.
type String struct {
	Named
	Value string
}

// NewString returns a String tag.
func NewString(name, v string) *String {
	return &String{Named: Named{name: name}, Value: v}
}

func (*String) ID() TypeID { return TypeString }

func (t *String) ReadPayload(r *wire.Reader, _ *Decoder) error {
	v, err := r.Text()
	if err == nil {
		t.Value = v
	}
	return err
}

func (t *String) WritePayload(w *wire.Writer, _ *Encoder) error {
	return w.Text(t.Value)
}
