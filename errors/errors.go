package errors

import (
	"fmt"
	"reflect"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRegister Phase = "register" // descriptor registration
	PhaseSelect   Phase = "select"   // converter lookup
	PhaseConvert  Phase = "convert"  // converter invocation
	PhaseWrap     Phase = "wrap"     // primitive array to container
	PhaseUnwrap   Phase = "unwrap"   // container to primitive array
	PhaseList     Phase = "list"     // sequence to primitive array
	PhaseAccess   Phase = "access"   // container element access
	PhaseLower    Phase = "lower"    // Go to guest memory
	PhaseLift     Phase = "lift"     // guest memory to Go
	PhaseConfig   Phase = "config"   // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindNoConverter      Kind = "no_converter"
	KindTypeMismatch     Kind = "type_mismatch"
	KindConversionFailed Kind = "conversion_failed"
	KindInvalidArgument  Kind = "invalid_argument"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindRegistration     Kind = "registration"
	KindAllocation       Kind = "allocation"
)

// Sentinels match any Error of the same Kind regardless of Phase.
var (
	ErrNoConverter      = &Error{Kind: KindNoConverter}
	ErrTypeMismatch     = &Error{Kind: KindTypeMismatch}
	ErrConversionFailed = &Error{Kind: KindConversionFailed}
	ErrInvalidArgument  = &Error{Kind: KindInvalidArgument}
	ErrOutOfBounds      = &Error{Kind: KindOutOfBounds}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	InputType  string
	OutputType string
	Converter  string
	Detail     string
	Path       []string
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
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.InputType != "" || e.OutputType != "" {
		b.WriteString(": ")
		switch {
		case e.InputType != "" && e.OutputType != "":
			b.WriteString(e.InputType)
			b.WriteString(" -> ")
			b.WriteString(e.OutputType)
		case e.InputType != "":
			b.WriteString("input ")
			b.WriteString(e.InputType)
		default:
			b.WriteString("output ")
			b.WriteString(e.OutputType)
		}
	}

	if e.Converter != "" {
		b.WriteString(" via ")
		b.WriteString(e.Converter)
	}

	if e.Detail != "" {
		if e.InputType != "" || e.OutputType != "" || e.Converter != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// Is reports whether target matches this error. A target without a Phase
// (such as the package sentinels) matches on Kind alone.
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

// Path sets the element path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Index sets the path to a single element index
func (b *Builder) Index(i int) *Builder {
	b.err.Path = []string{IndexPath(i)}
	return b
}

// Types sets the input and output type names
func (b *Builder) Types(in, out reflect.Type) *Builder {
	b.err.InputType = TypeName(in)
	b.err.OutputType = TypeName(out)
	return b
}

// InputType sets the input type name
func (b *Builder) InputType(t string) *Builder {
	b.err.InputType = t
	return b
}

// OutputType sets the output type name
func (b *Builder) OutputType(t string) *Builder {
	b.err.OutputType = t
	return b
}

// Converter sets the converter name
func (b *Builder) Converter(name string) *Builder {
	b.err.Converter = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// TypeName renders a reflect.Type for messages; nil renders as "nil".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

// IndexPath renders an element index as a path segment.
func IndexPath(i int) string {
	return fmt.Sprintf("[%d]", i)
}

// Convenience constructors for common error patterns

// NoConverterFound creates an error for a type pair no descriptor accepts
func NoConverterFound(in, out reflect.Type) *Error {
	return &Error{
		Phase:      PhaseSelect,
		Kind:       KindNoConverter,
		InputType:  TypeName(in),
		OutputType: TypeName(out),
		Detail:     "no registered converter accepts this pair",
	}
}

// TypeMismatch creates an error for an element whose runtime type does not
// fit the expected element type
func TypeMismatch(phase Phase, index int, got reflect.Type, want string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindTypeMismatch,
		Path:       []string{IndexPath(index)},
		InputType:  TypeName(got),
		OutputType: want,
	}
}

// ConversionFailed wraps a failure raised by the selected converter
func ConversionFailed(in, out reflect.Type, converter string, cause error) *Error {
	return &Error{
		Phase:      PhaseConvert,
		Kind:       KindConversionFailed,
		InputType:  TypeName(in),
		OutputType: TypeName(out),
		Converter:  converter,
		Cause:      cause,
	}
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Detail: detail,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   []string{IndexPath(index)},
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Registration creates a registration error for the named descriptor
func Registration(name string, cause error) *Error {
	return &Error{
		Phase:     PhaseRegister,
		Kind:      KindRegistration,
		Converter: name,
		Detail:    "register descriptor",
		Cause:     cause,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
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
