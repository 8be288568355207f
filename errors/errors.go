package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which part of the bridge the error came from
type Phase string

const (
	PhaseLoad     Phase = "load"     // shared library loading
	PhaseSession  Phase = "session"  // global session and session creation
	PhaseModule   Phase = "module"   // module loading and queries
	PhaseCompose  Phase = "compose"  // composite and conformance creation
	PhaseLink     Phase = "link"     // linking
	PhaseLayout   Phase = "layout"   // program layout retrieval
	PhaseCodegen  Phase = "codegen"  // target and entry point code
	PhaseMetadata Phase = "metadata" // target metadata
	PhaseReflect  Phase = "reflect"  // reflection accessors
	PhaseHost     Phase = "host"     // host objects called by native code
	PhaseConfig   Phase = "config"   // configuration loading
	PhaseRuntime  Phase = "runtime"  // everything else
)

// Kind categorizes the error
type Kind string

const (
	KindStatus         Kind = "status"
	KindInvalidInput   Kind = "invalid_input"
	KindInvalidUTF8    Kind = "invalid_utf8"
	KindNilPointer     Kind = "nil_pointer"
	KindNotFound       Kind = "not_found"
	KindNotInitialized Kind = "not_initialized"
	KindUnsupported    Kind = "unsupported"
	KindReleased       Kind = "released"
	KindSymbol         Kind = "symbol"
	KindPanic          Kind = "panic"
	KindInvalidData    Kind = "invalid_data"
	KindOutOfBounds    Kind = "out_of_bounds"
)

// Error is the structured error type for failures raised on the Go side
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	Interface string
	Method    string
	Detail    string
	Path      []string
	Code      Result
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Interface != "" || e.Method != "" {
		b.WriteString(" in ")
		switch {
		case e.Interface != "" && e.Method != "":
			b.WriteString(e.Interface)
			b.WriteByte('.')
			b.WriteString(e.Method)
		case e.Interface != "":
			b.WriteString(e.Interface)
		default:
			b.WriteString(e.Method)
		}
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "/"))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Code != OK {
		b.WriteString(" (")
		b.WriteString(e.Code.String())
		b.WriteByte(')')
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

// Is reports whether target matches this error. A Result target matches Code.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case *Error:
		return e.Phase == t.Phase && e.Kind == t.Kind
	case Result:
		return e.Code != OK && e.Code == t
	}
	return false
}

// Status returns the native status code to report for this error.
// Errors without an explicit code map to EFail.
func (e *Error) Status() Result {
	if e.Code.Failed() {
		return e.Code
	}
	return EFail
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

// Path sets the path (file path or reflection path)
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Interface sets the native interface name
func (b *Builder) Interface(name string) *Builder {
	b.err.Interface = name
	return b
}

// Method sets the native method name
func (b *Builder) Method(name string) *Builder {
	b.err.Method = name
	return b
}

// Code sets the native status code
func (b *Builder) Code(code Result) *Builder {
	b.err.Code = code
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

// Convenience constructors for common error patterns

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
		Code:   ENotImplemented,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
		Code:   EInvalidArg,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, iface, method string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindNilPointer,
		Interface: iface,
		Method:    method,
		Detail:    "nil object",
		Code:      EPointer,
	}
}

// Released creates an error for use of an object after Release
func Released(phase Phase, iface string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindReleased,
		Interface: iface,
		Detail:    "object already released",
		Code:      EPointer,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
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

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
		Code:   ENotInitialized,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
		Code:   ENotFound,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
		Code:   EInvalidArg,
	}
}

// Symbol creates an error for a missing shared library symbol
func Symbol(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindSymbol,
		Detail: fmt.Sprintf("resolve %s", name),
		Cause:  cause,
		Code:   ENotAvailable,
	}
}

// Load creates a library loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindNotInitialized,
		Detail: detail,
		Cause:  cause,
		Code:   ENotAvailable,
	}
}

// Panic creates an error for a panic recovered inside a host callback
func Panic(iface, method string, recovered any) *Error {
	return &Error{
		Phase:     PhaseHost,
		Kind:      KindPanic,
		Interface: iface,
		Method:    method,
		Detail:    fmt.Sprintf("recovered: %v", recovered),
		Value:     recovered,
		Code:      EInternalFail,
	}
}

// Config creates a configuration error
func Config(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}
