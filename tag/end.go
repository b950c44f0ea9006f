package tag

import "github.com/wippyai/nbt/wire"

// End is the sentinel that terminates a Compound on the wire. It has no
// name and no payload. Putting an End into a Compound marks the compound
// terminated instead of storing a child.
type End struct{}

func (*End) ID() TypeID { return TypeEnd }

func (*End) Name() string { return "" }

func (*End) SetName(string) {}

func (*End) ReadPayload(*wire.Reader, *Decoder) error { return nil }

func (*End) WritePayload(*wire.Writer, *Encoder) error { return nil }
