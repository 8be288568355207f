package slang

import (
	"unsafe"

	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/internal/native"
)

// FileSystem supplies source files to the compiler. LoadFile may be called
// from any thread, concurrently, so implementations must be safe for
// concurrent use. The returned blob's reference passes to the compiler.
type FileSystem interface {
	LoadFile(path string) (*Blob, error)
}

// FileSystemFunc adapts a function to FileSystem.
type FileSystemFunc func(path string) (*Blob, error)

// LoadFile calls f(path).
func (f FileSystemFunc) LoadFile(path string) (*Blob, error) { return f(path) }

type fileLoader struct {
	fs FileSystem
}

func (l fileLoader) LoadFile(path string) (unsafe.Pointer, error) {
	b, err := l.fs.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if b == nil || b.IsNil() {
		return nil, errors.NotFound(errors.PhaseHost, "file", path)
	}
	p, err := b.base().self(errors.PhaseHost)
	if err != nil {
		return nil, err
	}
	// the reference now belongs to the caller
	b.released.Store(true)
	return p, nil
}

// newNativeFileSystem wraps fs in a counted native file system object
// holding one reference.
func newNativeFileSystem(fs FileSystem) unsafe.Pointer {
	return native.NewFileSystem(fileLoader{fs: fs})
}
