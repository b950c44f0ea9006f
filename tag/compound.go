package tag

import (
	"iter"
	"reflect"

	"github.com/wippyai/nbt/errors"
	"github.com/wippyai/nbt/wire"
)

// Compound is a set of uniquely named tags of any type. Children keep
// their insertion order, which is also the order they are written in;
// replacing a child keeps its position.
type Compound struct {
	Named
	tags       []Tag
	index      map[string]int
	terminated bool
}

// NewCompound returns a compound holding children.
func NewCompound(name string, children ...Tag) *Compound {
	c := &Compound{Named: Named{name: name}}
	for _, t := range children {
		c.Put(t)
	}
	return c
}

func (*Compound) ID() TypeID { return TypeCompound }

// Put stores t under its own name, replacing any child with that name.
// Putting an End marks the compound terminated instead. t must not be nil.
func (c *Compound) Put(t Tag) {
	if t.ID() == TypeEnd {
		c.terminated = true
		return
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}

	name := t.Name()
	if i, ok := c.index[name]; ok {
		c.tags[i] = t
		return
	}
	c.index[name] = len(c.tags)
	c.tags = append(c.tags, t)
}

// Set renames t to name and stores it. When t is already a child it is
// moved off its old name, so a name is never held twice.
func (c *Compound) Set(name string, t Tag) {
	if i, ok := c.index[t.Name()]; ok && t.Name() != name && same(c.tags[i], t) {
		c.Delete(t.Name())
	}
	t.SetName(name)
	c.Put(t)
}

func same(a, b Tag) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) || !reflect.TypeOf(a).Comparable() {
		return false
	}
	return a == b
}

// Get returns the child called name, or a key_not_found error.
func (c *Compound) Get(name string) (Tag, error) {
	if t, ok := c.Lookup(name); ok {
		return t, nil
	}
	return nil, errors.KeyNotFound([]string{name}, name)
}

// Lookup returns the child called name.
func (c *Compound) Lookup(name string) (Tag, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.tags[i], true
}

// Has reports whether a child called name exists.
func (c *Compound) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Delete removes the child called name and reports whether it existed.
func (c *Compound) Delete(name string) bool {
	i, ok := c.index[name]
	if !ok {
		return false
	}
	delete(c.index, name)
	c.tags = append(c.tags[:i], c.tags[i+1:]...)
	for j := i; j < len(c.tags); j++ {
		c.index[c.tags[j].Name()] = j
	}
	return true
}

// Len returns the number of children.
func (c *Compound) Len() int {
	return len(c.tags)
}

// Names returns the child names in order.
func (c *Compound) Names() []string {
	names := make([]string, len(c.tags))
	for i, t := range c.tags {
		names[i] = t.Name()
	}
	return names
}

// All iterates over the children in order.
func (c *Compound) All() iter.Seq2[string, Tag] {
	return func(yield func(string, Tag) bool) {
		for _, t := range c.tags {
			if !yield(t.Name(), t) {
				return
			}
		}
	}
}

// Terminate marks the compound as explicitly ended. Decoded compounds are
// always terminated.
func (c *Compound) Terminate() {
	c.terminated = true
}

// Terminated reports whether the compound has received its End.
func (c *Compound) Terminated() bool {
	return c.terminated
}

func (c *Compound) ReadPayload(r *wire.Reader, d *Decoder) error {
	if err := d.Descend(r); err != nil {
		return err
	}
	defer d.Ascend()

	// Children are collected aside so a failed read leaves c unchanged.
	var next Compound
	for {
		t, err := d.ReadTag(r)
		if err != nil {
			return err
		}
		if t.ID() == TypeEnd {
			c.tags = next.tags
			c.index = next.index
			c.terminated = true
			return nil
		}
		next.Put(t)
	}
}

func (c *Compound) WritePayload(w *wire.Writer, e *Encoder) error {
	if err := e.Descend(); err != nil {
		return err
	}
	defer e.Ascend()

	if e.StrictEnd() && !c.terminated {
		return errors.EndlessCompound(e.Path())
	}
	for _, t := range c.tags {
		if err := e.WriteTag(w, t); err != nil {
			return err
		}
	}
	w.Int8(int8(TypeEnd))
	return nil
}
