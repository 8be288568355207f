package native

/*
#cgo linux LDFLAGS: -ldl
#include <stdlib.h>
#include "bridge.h"
*/
import "C"

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/slang-bridge/errors"
)

// EnvLibrary names the environment variable that overrides library discovery.
const EnvLibrary = "SLANG_LIBRARY"

// Library is a dynamically loaded Slang compiler library.
type Library struct {
	handle unsafe.Pointer
	path   string

	mu   sync.RWMutex
	syms map[string]unsafe.Pointer
}

var (
	defaultLib     *Library
	defaultLibErr  error
	defaultLibOnce sync.Once
	defaultLibMu   sync.Mutex
)

// Candidates returns the library names tried by Default, in order.
func Candidates() []string {
	var out []string
	if p := os.Getenv(EnvLibrary); p != "" {
		out = append(out, p)
	}
	switch runtime.GOOS {
	case "darwin":
		out = append(out, "libslang.dylib", "libslang-compiler.dylib")
	case "windows":
		out = append(out, "slang.dll", "slang-compiler.dll")
	default:
		out = append(out, "libslang.so", "libslang-compiler.so")
	}
	return out
}

// Open loads the library at path.
func Open(path string) (*Library, error) {
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))

	h := C.sb_dlopen(cs)
	if h == nil {
		return nil, errors.Load(fmt.Sprintf("dlopen(%q)", path), fmt.Errorf("%s", dlerr()))
	}
	Logger().Debug("slang library loaded", zap.String("path", path))
	return &Library{
		handle: h,
		path:   path,
		syms:   make(map[string]unsafe.Pointer),
	}, nil
}

// Default returns the process-wide library, loading it on first use.
func Default() (*Library, error) {
	defaultLibMu.Lock()
	defer defaultLibMu.Unlock()
	if defaultLib != nil {
		return defaultLib, nil
	}
	defaultLibOnce.Do(func() {
		var lastErr error
		for _, name := range Candidates() {
			lib, err := Open(name)
			if err == nil {
				defaultLib = lib
				return
			}
			lastErr = err
		}
		defaultLibErr = errors.Load("no slang library found", lastErr)
	})
	if defaultLib != nil {
		return defaultLib, nil
	}
	return nil, defaultLibErr
}

// SetDefault replaces the process-wide library. Passing nil restores
// discovery on the next call to Default.
func SetDefault(lib *Library) {
	defaultLibMu.Lock()
	defer defaultLibMu.Unlock()
	defaultLib = lib
	if lib == nil {
		defaultLibOnce = sync.Once{}
		defaultLibErr = nil
	}
}

// Path returns the path the library was opened with.
func (l *Library) Path() string {
	return l.path
}

// Sym resolves an exported function, caching the result.
func (l *Library) Sym(name string) (unsafe.Pointer, error) {
	l.mu.RLock()
	p, ok := l.syms[name]
	l.mu.RUnlock()
	if ok {
		return p, nil
	}

	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))

	var cerr *C.char
	p = C.sb_dlsym(l.handle, cs, &cerr)
	if p == nil {
		detail := "symbol is null"
		if cerr != nil {
			detail = C.GoString(cerr)
		}
		return nil, errors.Symbol(name, fmt.Errorf("%s", detail))
	}

	l.mu.Lock()
	l.syms[name] = p
	l.mu.Unlock()
	return p, nil
}

// SymAny resolves the first name that exists.
func (l *Library) SymAny(names ...string) (unsafe.Pointer, error) {
	var firstErr error
	for _, name := range names {
		p, err := l.Sym(name)
		if err == nil {
			return p, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

// MustSym resolves a symbol from the default library or returns nil.
// Used by reflection accessors, which treat a missing symbol as absence.
func MustSym(name string) unsafe.Pointer {
	lib, err := Default()
	if err != nil {
		return nil
	}
	p, err := lib.Sym(name)
	if err != nil {
		Logger().Warn("slang symbol unavailable", zap.String("symbol", name), zap.Error(err))
		return nil
	}
	return p
}

// Close unloads the library. Objects created from it must not be used
// afterwards.
func (l *Library) Close() error {
	if l.handle == nil {
		return nil
	}
	if C.sb_dlclose(l.handle) != 0 {
		return errors.Load(fmt.Sprintf("dlclose(%q)", l.path), fmt.Errorf("%s", dlerr()))
	}
	l.handle = nil
	return nil
}

func dlerr() string {
	if e := C.sb_dlerror(); e != nil {
		return C.GoString(e)
	}
	return "unknown dlerror"
}
