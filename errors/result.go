package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"unicode/utf8"
)

// Result is the signed status code returned by every native call.
// Negative values are failures; non-negative values are successes that may
// carry auxiliary meaning.
type Result int32

// Status codes reproduced from the native library. The values are packed
// as severity(1) | facility(15) | code(16).
const (
	OK    Result = 0
	False Result = 1

	ENotImplemented Result = -2147467263 // 0x80004001
	ENoInterface    Result = -2147467262 // 0x80004002
	EPointer        Result = -2147467261 // 0x80004003
	EAbort          Result = -2147467260 // 0x80004004
	EFail           Result = -2147467259 // 0x80004005
	EInvalidHandle  Result = -2147024890 // 0x80070006
	EOutOfMemory    Result = -2147024882 // 0x8007000E
	EInvalidArg     Result = -2147024809 // 0x80070057

	EBufferTooSmall Result = -2113929215 // 0x82000001
	ENotInitialized Result = -2113929214 // 0x82000002
	EPending        Result = -2113929213 // 0x82000003
	ECannotOpen     Result = -2113929212 // 0x82000004
	ENotFound       Result = -2113929211 // 0x82000005
	EInternalFail   Result = -2113929210 // 0x82000006
	ENotAvailable   Result = -2113929209 // 0x82000007
	ETimeOut        Result = -2113929208 // 0x82000008
)

// Facilities used in packed results.
const (
	FacilityWinGeneral   = 0x0
	FacilityWinInterface = 0x4
	FacilityWinAPI       = 0x7
	FacilityCore         = 0x200
	FacilityInternal     = 0x201
	FacilityExternalBase = 0x210
)

var resultNames = map[Result]string{
	OK:              "OK",
	False:           "S_FALSE",
	ENotImplemented: "E_NOTIMPL",
	ENoInterface:    "E_NOINTERFACE",
	EPointer:        "E_POINTER",
	EAbort:          "E_ABORT",
	EFail:           "E_FAIL",
	EInvalidHandle:  "E_HANDLE",
	EOutOfMemory:    "E_OUTOFMEMORY",
	EInvalidArg:     "E_INVALIDARG",
	EBufferTooSmall: "E_BUFFER_TOO_SMALL",
	ENotInitialized: "E_NOT_INITIALIZED",
	EPending:        "E_PENDING",
	ECannotOpen:     "E_CANNOT_OPEN",
	ENotFound:       "E_NOT_FOUND",
	EInternalFail:   "E_INTERNAL_FAIL",
	ENotAvailable:   "E_NOT_AVAILABLE",
	ETimeOut:        "E_TIME_OUT",
}

// MakeError packs a failure result from a facility and code.
func MakeError(facility, code uint32) Result {
	return Result(int32(0x80000000 | (facility&0x7fff)<<16 | code&0xffff))
}

// Failed reports whether r denotes failure.
func (r Result) Failed() bool { return r < 0 }

// Succeeded reports whether r denotes success.
func (r Result) Succeeded() bool { return r >= 0 }

// Facility returns the facility field of r.
func (r Result) Facility() uint32 { return (uint32(r) >> 16) & 0x7fff }

// Code returns the code field of r.
func (r Result) Code() uint32 { return uint32(r) & 0xffff }

// String returns the symbolic name of r, or its hex value.
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("0x%08X", uint32(r))
}

// Error makes Result usable as an errors.Is target.
func (r Result) Error() string {
	return "slang result " + r.String()
}

// StatusError is a failure that carries only a status code.
type StatusError struct {
	Phase Phase
	Code  Result
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("[%s] status %s", e.Phase, e.Code.String())
}

// Is reports whether target is the same Result, or a StatusError with the
// same phase and code.
func (e *StatusError) Is(target error) bool {
	switch t := target.(type) {
	case Result:
		return e.Code == t
	case *StatusError:
		return e.Phase == t.Phase && e.Code == t.Code
	}
	return false
}

// Diagnostics is the text payload of a DiagnosticError.
type Diagnostics interface {
	Bytes() []byte
}

// Bytes is a Diagnostics backed by Go memory.
type Bytes []byte

// Bytes returns b.
func (b Bytes) Bytes() []byte { return b }

// DiagnosticError is a failure accompanied by compiler-emitted text.
// Diagnostics may be nil when the native side produced none.
type DiagnosticError struct {
	Diagnostics Diagnostics
	Phase       Phase
	Code        Result
}

// Text decodes the diagnostics as UTF-8. It returns "" when no diagnostics
// are attached, and an InvalidUTF8 error when the bytes do not decode.
func (e *DiagnosticError) Text() (string, error) {
	data := e.bytes()
	if !utf8.Valid(data) {
		return "", InvalidUTF8(e.Phase, nil, data)
	}
	return string(data), nil
}

// HasDiagnostics reports whether any diagnostic text is attached.
func (e *DiagnosticError) HasDiagnostics() bool {
	return len(e.bytes()) > 0
}

func (e *DiagnosticError) bytes() []byte {
	if e.Diagnostics == nil {
		return nil
	}
	return e.Diagnostics.Bytes()
}

func (e *DiagnosticError) Error() string {
	data := e.bytes()
	if len(data) == 0 {
		return fmt.Sprintf("[%s] status %s", e.Phase, e.Code.String())
	}
	if !utf8.Valid(data) {
		preview := data
		if len(preview) > 32 {
			preview = preview[:32]
		}
		return fmt.Sprintf("[%s] status %s: undecodable diagnostics %x", e.Phase, e.Code.String(), preview)
	}
	return fmt.Sprintf("[%s] status %s: %s", e.Phase, e.Code.String(), string(data))
}

// Is reports whether target is the same Result, or a DiagnosticError with
// the same phase and code.
func (e *DiagnosticError) Is(target error) bool {
	switch t := target.(type) {
	case Result:
		return e.Code == t
	case *DiagnosticError:
		return e.Phase == t.Phase && e.Code == t.Code
	}
	return false
}

// Check converts a status-only result into an error.
func Check(phase Phase, code Result) error {
	if code.Failed() {
		return &StatusError{Phase: phase, Code: code}
	}
	return nil
}

// CheckDiagnostics converts a result with optional diagnostics into an error.
func CheckDiagnostics(phase Phase, code Result, diag Diagnostics) error {
	if code.Failed() {
		return &DiagnosticError{Phase: phase, Code: code, Diagnostics: diag}
	}
	return nil
}

// StatusOf maps an arbitrary Go error to the status code reported to native
// callers. Nil maps to OK.
func StatusOf(err error) Result {
	if err == nil {
		return OK
	}

	var r Result
	if stderrors.As(err, &r) && r.Failed() {
		return r
	}
	var se *StatusError
	if stderrors.As(err, &se) && se.Code.Failed() {
		return se.Code
	}
	var de *DiagnosticError
	if stderrors.As(err, &de) && de.Code.Failed() {
		return de.Code
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Status()
	}

	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return ENotFound
	case stderrors.Is(err, fs.ErrPermission):
		return ECannotOpen
	case stderrors.Is(err, fs.ErrInvalid):
		return EInvalidArg
	}
	return EFail
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
