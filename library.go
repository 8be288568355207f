package slang

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/internal/native"
)

// EnvLibrary names the environment variable consulted first when locating
// the compiler library.
const EnvLibrary = native.EnvLibrary

// LoadLibrary opens the compiler library at path and makes it the library
// used by every later call. Objects created from a previous library must be
// released first.
func LoadLibrary(path string) error {
	lib, err := native.Open(path)
	if err != nil {
		return err
	}
	native.SetDefault(lib)
	Logger().Info("slang library selected", zap.String("path", path))
	return nil
}

// LibraryPath returns the path of the library in use, loading it if needed.
func LibraryPath() (string, error) {
	lib, err := native.Default()
	if err != nil {
		return "", err
	}
	return lib.Path(), nil
}

// sym resolves the first available name from the library in use.
func sym(names ...string) (unsafe.Pointer, error) {
	lib, err := native.Default()
	if err != nil {
		return nil, err
	}
	return lib.SymAny(names...)
}

func zapPhase(p errors.Phase) zap.Field {
	return zap.String("phase", string(p))
}

func zapText(b []byte) zap.Field {
	return zap.ByteString("text", b)
}
