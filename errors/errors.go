package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/hostbridge/object"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode    Phase = "encode"    // Go to host
	PhaseDecode    Phase = "decode"    // host to Go
	PhaseTranscode Phase = "transcode" // host through an external format
)

// Kind categorizes the error. The set is closed.
type Kind string

const (
	KindHost                    Kind = "host_error"
	KindMessage                 Kind = "message"
	KindUnsupportedType         Kind = "unsupported_type"
	KindUnexpectedType          Kind = "unexpected_type"
	KindDictKeyNotString        Kind = "dict_key_not_string"
	KindIncorrectSequenceLength Kind = "incorrect_sequence_length"
	KindInvalidEnumType         Kind = "invalid_enum_type"
	KindInvalidLengthEnum       Kind = "invalid_length_enum"
	KindInvalidLengthChar       Kind = "invalid_length_char"
)

// Category is the host exception category an error surfaces as.
type Category int

const (
	// CategoryHost re-raises the original host exception unchanged.
	CategoryHost Category = iota
	CategoryTypeError
	CategoryValueError
)

// Error is the structured error type used throughout hostbridge
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	HostType string
	GoType   string
	Detail   string
	Path     []string
	Expected int
	Got      int
}

// Message returns the text the host sees, without phase or path.
func (e *Error) Message() string {
	switch e.Kind {
	case KindHost:
		if e.Cause != nil {
			return e.Cause.Error()
		}
	case KindUnsupportedType:
		return "unsupported type " + e.HostType
	case KindUnexpectedType:
		return "unexpected type: " + e.Detail
	case KindDictKeyNotString:
		return "dict keys must have type str"
	case KindIncorrectSequenceLength:
		return fmt.Sprintf("expected sequence of length %d, got %d", e.Expected, e.Got)
	case KindInvalidEnumType:
		return "expected either a str or dict for enum"
	case KindInvalidLengthEnum:
		return "expected tagged enum dict to have exactly 1 key"
	case KindInvalidLengthChar:
		return "expected a str of length 1 for char"
	}
	return e.Detail
}

// PathString joins the path, attaching index segments without a dot.
func (e *Error) PathString() string {
	var b strings.Builder
	for i, seg := range e.Path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(e.PathString())
	}

	if e.GoType != "" {
		b.WriteString(" (Go type ")
		b.WriteString(e.GoType)
		b.WriteByte(')')
	}

	if msg := e.Message(); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}

	if e.Cause != nil && e.Kind != KindHost {
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

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Category maps the kind to the host exception category.
func (e *Error) Category() Category {
	switch e.Kind {
	case KindHost:
		return CategoryHost
	case KindIncorrectSequenceLength, KindInvalidLengthEnum, KindInvalidLengthChar:
		return CategoryValueError
	}
	return CategoryTypeError
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

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// HostType sets the host type name
func (b *Builder) HostType(t string) *Builder {
	b.err.HostType = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Lengths sets the expected and actual lengths
func (b *Builder) Lengths(expected, got int) *Builder {
	b.err.Expected = expected
	b.err.Got = got
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

// Convenience constructors, one per kind

// Host wraps an exception raised by the host runtime.
func Host(phase Phase, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindHost,
		Cause: cause,
	}
}

// Message creates a free-form error, typically raised by a visitor.
func Message(phase Phase, msg string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMessage,
		Detail: msg,
	}
}

// UnsupportedType reports a host object with no decodable shape.
func UnsupportedType(phase Phase, hostType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindUnsupportedType,
		HostType: hostType,
	}
}

// UnexpectedType reports a host object of the wrong type for the target.
func UnexpectedType(phase Phase, hostType, expected string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindUnexpectedType,
		HostType: hostType,
		Detail:   fmt.Sprintf("'%s' object cannot be converted to '%s'", hostType, expected),
	}
}

func DictKeyNotString(phase Phase) *Error {
	return &Error{Phase: phase, Kind: KindDictKeyNotString}
}

func IncorrectSequenceLength(phase Phase, expected, got int) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindIncorrectSequenceLength,
		Expected: expected,
		Got:      got,
	}
}

func InvalidEnumType(phase Phase) *Error {
	return &Error{Phase: phase, Kind: KindInvalidEnumType}
}

func InvalidLengthEnum(phase Phase) *Error {
	return &Error{Phase: phase, Kind: KindInvalidLengthEnum}
}

func InvalidLengthChar(phase Phase) *Error {
	return &Error{Phase: phase, Kind: KindInvalidLengthChar}
}

// Classify returns err as an *Error, turning foreign errors into
// host errors (for host exceptions) or messages (for everything else).
func Classify(phase Phase, err error) *Error {
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	var exc *object.Exception
	if stderrors.As(err, &exc) {
		return Host(phase, err)
	}
	return Message(phase, err.Error())
}

// AtPath prepends a path segment to err while it unwinds.
func AtPath(phase Phase, err error, segment string) error {
	if err == nil {
		return nil
	}
	e := Classify(phase, err)
	e.Path = append([]string{segment}, e.Path...)
	return e
}

// KeySegment marks a mapping key that failed to convert.
const KeySegment = "<key>"

// Index formats a sequence position as a path segment.
func Index(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// ToException converts err into the exception raised in the host.
// Host errors re-raise the original exception; the path, when known,
// prefixes the message.
func ToException(err error) *object.Exception {
	if err == nil {
		return nil
	}
	e := Classify(PhaseDecode, err)
	if e.Kind == KindHost {
		var exc *object.Exception
		if stderrors.As(e.Cause, &exc) {
			return exc
		}
		return &object.Exception{Type: object.BaseException, Message: e.Message()}
	}

	msg := e.Message()
	if len(e.Path) > 0 {
		msg = e.PathString() + ": " + msg
	}
	typ := object.TypeError
	if e.Category() == CategoryValueError {
		typ = object.ValueError
	}
	return &object.Exception{Type: typ, Message: msg}
}

// FromException wraps a host exception.
func FromException(phase Phase, exc *object.Exception) *Error {
	return Host(phase, exc)
}
