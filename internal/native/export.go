package native

/*
#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/resource"
)

// Trampolines called from the host object vtables in bridge.c. They may run
// on any thread, concurrently.

//export sbAddRef
func sbAddRef(handle C.uintptr_t) C.uint32_t {
	refs, ok := hosts.Retain(resource.Handle(handle))
	if !ok {
		Logger().Error("addRef on unknown host object", zap.Uint64("handle", uint64(handle)))
		return 0
	}
	return C.uint32_t(refs)
}

//export sbRelease
func sbRelease(handle C.uintptr_t) C.uint32_t {
	refs, ok := hosts.Release(resource.Handle(handle))
	if !ok {
		Logger().Error("release on unknown host object", zap.Uint64("handle", uint64(handle)))
		return 0
	}
	return C.uint32_t(refs)
}

//export sbLoadFile
func sbLoadFile(handle C.uintptr_t, path *C.char, out *unsafe.Pointer) (result C.int32_t) {
	name := C.GoString(path)

	defer func() {
		if r := recover(); r != nil {
			err := errors.Panic("ISlangFileSystem", "loadFile", r)
			Logger().Error("file system callback panicked", zap.String("path", name), zap.Error(err))
			*out = nil
			result = C.int32_t(errors.EFail)
		}
	}()

	fs, ok := fileSystems.Get(resource.Handle(handle))
	if !ok {
		return C.int32_t(errors.EInvalidHandle)
	}

	blob, err := fs.loader.LoadFile(name)
	if err != nil {
		code := errors.StatusOf(err)
		Logger().Debug("loadFile failed", zap.String("path", name), zap.Stringer("status", code), zap.Error(err))
		return C.int32_t(code)
	}
	if blob == nil {
		return C.int32_t(errors.ENotFound)
	}

	*out = blob
	return C.int32_t(errors.OK)
}
