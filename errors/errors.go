package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad     Phase = "load"     // bytes to tag tree
	PhaseWrite    Phase = "write"    // tag tree to bytes
	PhaseAccess   Phase = "access"   // typed navigation and tree mutation
	PhaseRegister Phase = "register" // type registry lookups
	PhaseCompress Phase = "compress" // compression envelope
	PhaseStore    Phase = "store"    // document store
	PhaseConfig   Phase = "config"   // configuration files and flags
)

// Kind categorizes the error
type Kind string

const (
	KindTagIDMismatch      Kind = "tag_id_mismatch"
	KindUnknownTagID       Kind = "unknown_tag_id"
	KindIllegalListElement Kind = "illegal_list_element_type"
	KindEndlessCompound    Kind = "endless_compound"
	KindTypeMismatch       Kind = "type_mismatch"
	KindKeyNotFound        Kind = "key_not_found"
	KindIndexOutOfRange    Kind = "index_out_of_range"
	KindTruncatedBuffer    Kind = "truncated_buffer"
	KindNestingTooDeep     Kind = "nesting_too_deep"
	KindOverflow           Kind = "overflow"
	KindShortBuffer        Kind = "short_buffer"
	KindInvalidInput       Kind = "invalid_input"
	KindCompression        Kind = "compression"
	KindNotFound           Kind = "not_found"
)

// Sentinels for errors.Is. A sentinel has no phase and matches every
// error of its kind.
var (
	ErrTagIDMismatch      = &Error{Kind: KindTagIDMismatch}
	ErrUnknownTagID       = &Error{Kind: KindUnknownTagID}
	ErrIllegalListElement = &Error{Kind: KindIllegalListElement}
	ErrEndlessCompound    = &Error{Kind: KindEndlessCompound}
	ErrTypeMismatch       = &Error{Kind: KindTypeMismatch}
	ErrKeyNotFound        = &Error{Kind: KindKeyNotFound}
	ErrIndexOutOfRange    = &Error{Kind: KindIndexOutOfRange}
	ErrTruncatedBuffer    = &Error{Kind: KindTruncatedBuffer}
	ErrNestingTooDeep     = &Error{Kind: KindNestingTooDeep}
	ErrOverflow           = &Error{Kind: KindOverflow}
	ErrShortBuffer        = &Error{Kind: KindShortBuffer}
	ErrNotFound           = &Error{Kind: KindNotFound}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Got    any
	Want   any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
	Offset int

	hasOffset bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("nbt: ")
	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if path := JoinPath(e.Path); path != "" {
		b.WriteString(" at ")
		b.WriteString(path)
	}

	if e.hasOffset {
		b.WriteString(" (offset ")
		b.WriteString(strconv.Itoa(e.Offset))
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without a
// phase matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// HasOffset reports whether Offset carries a byte position.
func (e *Error) HasOffset() bool {
	return e.hasOffset
}

// At records the byte position the error refers to and returns e.
func (e *Error) At(offset int) *Error {
	e.Offset = offset
	e.hasOffset = true
	return e
}

// WithPath replaces the path when the error has none yet and returns e.
// Decoders use it to attach the location of the failing tag.
func (e *Error) WithPath(path []string) *Error {
	if len(e.Path) == 0 && len(path) > 0 {
		e.Path = append([]string(nil), path...)
	}
	return e
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// JoinPath renders a tag path. Index segments ("[3]") attach to the
// previous segment without a separator. An unnamed root is left out.
func JoinPath(path []string) string {
	if len(path) > 0 && path[0] == "" {
		path = path[1:]
	}
	var b strings.Builder
	for i, seg := range path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the tag path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Mismatch sets the observed and expected values
func (b *Builder) Mismatch(got, want any) *Builder {
	b.err.Got = got
	b.err.Want = want
	return b
}

// Offset sets the byte position
func (b *Builder) Offset(offset int) *Builder {
	b.err.At(offset)
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for the codec's error paths

// TagIDMismatch creates an error for a header id that disagrees with the
// tag reading it.
func TagIDMismatch(read, expected int8) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindTagIDMismatch,
		Got:    read,
		Want:   expected,
		Detail: fmt.Sprintf("read tag id %d, expected %d", read, expected),
	}
}

// UnknownTagID creates an error for an id without a registered constructor
func UnknownTagID(phase Phase, id int8) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownTagID,
		Value:  id,
		Detail: fmt.Sprintf("no constructor registered for tag id %d", id),
	}
}

// IllegalListElement creates an error for a list element of the wrong type
func IllegalListElement(phase Phase, got, want int8) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIllegalListElement,
		Got:    got,
		Want:   want,
		Detail: fmt.Sprintf("list of tag id %d cannot hold tag id %d", want, got),
	}
}

// EndlessCompound creates an error for a compound written without an end marker
func EndlessCompound(path []string) *Error {
	return &Error{
		Phase:  PhaseWrite,
		Kind:   KindEndlessCompound,
		Path:   path,
		Detail: "compound has no end marker",
	}
}

// TypeMismatch creates a checked-cast failure
func TypeMismatch(path []string, actual, requested int8) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindTypeMismatch,
		Path:   path,
		Got:    actual,
		Want:   requested,
		Detail: fmt.Sprintf("tag id %d is not the requested tag id %d", actual, requested),
	}
}

// KeyNotFound creates a missing compound key error
func KeyNotFound(path []string, name string) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindKeyNotFound,
		Path:   path,
		Value:  name,
		Detail: fmt.Sprintf("no tag named %q", name),
	}
}

// IndexOutOfRange creates a list index error
func IndexOutOfRange(path []string, index, length int) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindIndexOutOfRange,
		Path:   path,
		Value:  index,
		Detail: fmt.Sprintf("index %d out of range (length %d)", index, length),
	}
}

// TruncatedBuffer creates an error for a read past the end of the input
func TruncatedBuffer(offset, need, have int) *Error {
	return (&Error{
		Phase:  PhaseLoad,
		Kind:   KindTruncatedBuffer,
		Value:  need,
		Detail: fmt.Sprintf("need %d bytes, %d remaining", need, have),
	}).At(offset)
}

// NestingTooDeep creates a depth limit error
func NestingTooDeep(limit int) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindNestingTooDeep,
		Value:  limit,
		Detail: fmt.Sprintf("nesting exceeds limit of %d", limit),
	}
}

// Overflow creates an error for a length that does not fit its prefix
func Overflow(phase Phase, path []string, value any, limit uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Value:  value,
		Detail: fmt.Sprintf("length %v exceeds %d", value, limit),
	}
}

// ShortBuffer creates an error for a destination buffer that is too small
func ShortBuffer(need, have int) *Error {
	return &Error{
		Phase:  PhaseWrite,
		Kind:   KindShortBuffer,
		Value:  need,
		Detail: fmt.Sprintf("need %d bytes, buffer holds %d", need, have),
	}
}

// InvalidInput creates an invalid argument error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a missing entity error
func NotFound(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Value:  what,
		Detail: fmt.Sprintf("%s not found", what),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
