package tag

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/nbt/errors"
)

// Constructor returns a blank tag ready for ReadPayload.
type Constructor func() Tag

// Registry maps type ids to constructors. Decoders consult it for every
// compound child and list element. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	ctors map[TypeID]Constructor
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry, creating it with the
// built-in variants on first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds a constructor to the default registry.
func Register(id TypeID, ctor Constructor) {
	DefaultRegistry().Register(id, ctor)
}

// NewRegistry returns a registry holding every built-in variant, signed
// and unsigned.
func NewRegistry() *Registry {
	return &Registry{ctors: map[TypeID]Constructor{
		TypeEnd:        func() Tag { return &End{} },
		TypeByte:       func() Tag { return &Byte{} },
		TypeShort:      func() Tag { return &Short{} },
		TypeInt:        func() Tag { return &Int{} },
		TypeLong:       func() Tag { return &Long{} },
		TypeFloat:      func() Tag { return &Float{} },
		TypeDouble:     func() Tag { return &Double{} },
		TypeByteArray:  func() Tag { return &ByteArray{} },
		TypeString:     func() Tag { return &String{} },
		TypeList:       func() Tag { return &List{} },
		TypeCompound:   func() Tag { return &Compound{} },
		TypeIntArray:   func() Tag { return &IntArray{} },
		TypeLongArray:  func() Tag { return &LongArray{} },
		TypeUByte:      func() Tag { return &UByte{} },
		TypeUShort:     func() Tag { return &UShort{} },
		TypeUInt:       func() Tag { return &UInt{} },
		TypeULong:      func() Tag { return &ULong{} },
		TypeUByteArray: func() Tag { return &UByteArray{} },
		TypeUIntArray:  func() Tag { return &UIntArray{} },
		TypeULongArray: func() Tag { return &ULongArray{} },
	}}
}

// Register inserts or replaces the constructor for id. The last
// registration wins, so built-in variants can be overridden.
func (r *Registry) Register(id TypeID, ctor Constructor) {
	if ctor == nil {
		panic("constructor can't be nil")
	}

	r.mu.Lock()
	_, replaced := r.ctors[id]
	r.ctors[id] = ctor
	r.mu.Unlock()

	if replaced {
		Logger().Debug("replaced tag constructor", zap.Stringer("id", id))
	}
}

// Lookup returns the constructor registered for id.
func (r *Registry) Lookup(id TypeID) (Constructor, bool) {
	r.mu.RLock()
	ctor, ok := r.ctors[id]
	r.mu.RUnlock()
	return ctor, ok
}

// Construct returns a blank tag for id, or an unknown_tag_id error.
func (r *Registry) Construct(id TypeID) (Tag, error) {
	ctor, ok := r.Lookup(id)
	if !ok {
		return nil, errors.UnknownTagID(errors.PhaseRegister, int8(id))
	}
	return ctor(), nil
}

// IDs returns the registered ids in ascending order.
func (r *Registry) IDs() []TypeID {
	r.mu.RLock()
	ids := make([]TypeID, 0, len(r.ctors))
	for id := range r.ctors {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}
