package tag

import "github.com/wippyai/nbt/wire"

// Tag is one node of a tag tree.
//
// ID must not depend on the receiver's state: As calls it on a nil
// pointer to learn the requested variant. ReadPayload and WritePayload
// handle only the variant's payload; the header (id and name) is read and
// written by the Decoder and Encoder.
type Tag interface {
	ID() TypeID
	Name() string
	SetName(name string)
	ReadPayload(r *wire.Reader, d *Decoder) error
	WritePayload(w *wire.Writer, e *Encoder) error
}

// Named carries a tag's name. Custom variants embed it to satisfy the
// naming half of Tag.
type Named struct {
	name string
}

// Name returns the tag's name.
func (n *Named) Name() string { return n.name }

// SetName renames the tag. Renaming a tag that already sits in a Compound
// does not re-key it; use Compound.Set for that.
func (n *Named) SetName(name string) { n.name = name }
