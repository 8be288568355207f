package slang

import (
	"unicode/utf8"
	"unsafe"

	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/internal/native"
)

// ISlangBlob slots.
const (
	slotBlobBufferPointer native.Method = 3
	slotBlobBufferSize    native.Method = 4
)

// Blob is a reference to an immutable byte buffer, produced either by the
// compiler or by this package.
type Blob struct {
	object
}

// BlobFromRaw wraps p, taking ownership of one reference.
func BlobFromRaw(p unsafe.Pointer) *Blob {
	if p == nil {
		return nil
	}
	b := &Blob{}
	b.init(p, "ISlangBlob")
	return b
}

// StaticBlob returns a blob that borrows data for the life of the process.
// data must not be modified afterwards. Release is harmless.
func StaticBlob(data []byte) *Blob {
	return BlobFromRaw(native.NewStaticBlob(data))
}

// StaticBlobString is StaticBlob for a string.
func StaticBlobString(s string) *Blob {
	return BlobFromRaw(native.NewStaticBlobString(s))
}

// NewBlob returns a reference-counted blob holding a copy of data.
func NewBlob(data []byte) *Blob {
	return BlobFromRaw(native.NewOwnedBlob(data))
}

// NewBlobString is NewBlob for a string.
func NewBlobString(s string) *Blob {
	return NewBlob([]byte(s))
}

// Len returns the buffer size in bytes.
func (b *Blob) Len() int {
	p, err := b.base().self(errors.PhaseRuntime)
	if err != nil {
		return 0
	}
	return int(native.CallSize(p, slotBlobBufferSize))
}

// Bytes returns a view of the buffer. The slice aliases native memory and
// is valid only while the blob is alive; copy it to keep it.
func (b *Blob) Bytes() []byte {
	p, err := b.base().self(errors.PhaseRuntime)
	if err != nil {
		return nil
	}
	n := int(native.CallSize(p, slotBlobBufferSize))
	if n == 0 {
		return nil
	}
	data := native.CallPtr(p, slotBlobBufferPointer)
	if data == nil {
		return nil
	}
	return unsafe.Slice((*byte)(data), n)
}

// Text returns the buffer as a string. Invalid UTF-8 is an error, never
// replaced.
func (b *Blob) Text() (string, error) {
	data := b.Bytes()
	if !utf8.Valid(data) {
		return "", errors.InvalidUTF8(errors.PhaseRuntime, nil, data)
	}
	return string(data), nil
}

// Clone returns a second wrapper for the same buffer.
func (b *Blob) Clone() *Blob {
	p, err := b.base().retain(errors.PhaseRuntime)
	if err != nil {
		return nil
	}
	return BlobFromRaw(p)
}

// takeDiagnostics copies a diagnostics blob into Go memory and releases it.
// A nil blob yields nil.
func takeDiagnostics(p unsafe.Pointer) errors.Diagnostics {
	if p == nil {
		return nil
	}
	b := BlobFromRaw(p)
	defer b.Release()
	data := b.Bytes()
	if len(data) == 0 {
		return nil
	}
	out := make(errors.Bytes, len(data))
	copy(out, data)
	return out
}

// checkDiagnostics turns a status plus diagnostics blob into an error. On
// success, any diagnostic text is logged as a warning and dropped.
func checkDiagnostics(phase errors.Phase, r errors.Result, diag unsafe.Pointer) error {
	d := takeDiagnostics(diag)
	if err := errors.CheckDiagnostics(phase, r, d); err != nil {
		return err
	}
	if d != nil {
		Logger().Warn("compiler diagnostics",
			zapPhase(phase),
			zapText(d.Bytes()))
	}
	return nil
}
