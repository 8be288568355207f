package native

/*
#include <stdlib.h>
#include "bridge.h"
*/
import "C"

import (
	"runtime"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/slang-bridge/resource"
)

// Host object kinds, used as resource type IDs.
const (
	KindStaticBlob uint32 = C.SB_HOST_STATIC_BLOB
	KindOwnedBlob  uint32 = C.SB_HOST_OWNED_BLOB
	KindFileSystem uint32 = C.SB_HOST_FILE_SYSTEM
)

// FileLoader answers loadFile calls made by the compiler. On success the
// returned object is a blob carrying one reference, which passes to the
// compiler.
type FileLoader interface {
	LoadFile(path string) (unsafe.Pointer, error)
}

type ownedBlob struct {
	obj *C.sb_host_object
}

func (b *ownedBlob) Drop() {
	C.sb_free_host_object(b.obj)
}

type fileSystem struct {
	obj    *C.sb_host_object
	loader FileLoader
}

func (f *fileSystem) Drop() {
	C.sb_free_host_object(f.obj)
}

var (
	hosts       = resource.NewTable()
	ownedBlobs  = resource.NewTyped[*ownedBlob](hosts, KindOwnedBlob)
	fileSystems = resource.NewTyped[*fileSystem](hosts, KindFileSystem)

	// Static blob memory stays pinned for the life of the process.
	staticPins   runtime.Pinner
	staticPinsMu sync.Mutex
)

func init() {
	hosts.Subscribe(resource.ObserverFunc(func(e resource.Event) {
		Logger().Debug("host object",
			zap.Stringer("event", e.Type),
			zap.Uint32("handle", uint32(e.Handle)),
			zap.Uint32("kind", e.TypeID),
			zap.Uint32("refs", e.Refs))
	}))
}

// NewStaticBlob returns a blob that borrows data for the life of the
// process. Reference counting on it is a no-op and it is never freed.
func NewStaticBlob(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return unsafe.Pointer(C.sb_new_static_blob(nil, 0))
	}
	p := unsafe.Pointer(unsafe.SliceData(data))
	staticPinsMu.Lock()
	staticPins.Pin(p)
	staticPinsMu.Unlock()
	return unsafe.Pointer(C.sb_new_static_blob(p, C.size_t(len(data))))
}

// NewStaticBlobString is NewStaticBlob for string data.
func NewStaticBlobString(s string) unsafe.Pointer {
	if len(s) == 0 {
		return unsafe.Pointer(C.sb_new_static_blob(nil, 0))
	}
	p := unsafe.Pointer(unsafe.StringData(s))
	staticPinsMu.Lock()
	staticPins.Pin(p)
	staticPinsMu.Unlock()
	return unsafe.Pointer(C.sb_new_static_blob(p, C.size_t(len(s))))
}

// NewOwnedBlob copies data into a reference-counted blob holding one
// reference. The copy and the object are freed when the count reaches zero.
func NewOwnedBlob(data []byte) unsafe.Pointer {
	var src unsafe.Pointer
	if len(data) > 0 {
		src = unsafe.Pointer(unsafe.SliceData(data))
	}
	obj := C.sb_new_owned_blob(src, C.size_t(len(data)))
	if obj == nil {
		panic("slang: out of C memory")
	}
	h := ownedBlobs.Insert(&ownedBlob{obj: obj})
	obj.handle = C.uintptr_t(h)
	return unsafe.Pointer(obj)
}

// NewFileSystem wraps loader in a reference-counted file system object
// holding one reference.
func NewFileSystem(loader FileLoader) unsafe.Pointer {
	obj := C.sb_new_file_system()
	if obj == nil {
		panic("slang: out of C memory")
	}
	h := fileSystems.Insert(&fileSystem{obj: obj, loader: loader})
	obj.handle = C.uintptr_t(h)
	return unsafe.Pointer(obj)
}

// HostObjects returns the number of live counted host objects.
func HostObjects() int {
	return hosts.Len()
}

// HostRefs returns the reference count of a counted host object.
func HostRefs(obj unsafe.Pointer) (uint32, bool) {
	o := (*C.sb_host_object)(obj)
	if uint32(o.kind) == KindStaticBlob {
		return 0, false
	}
	return hosts.Refs(resource.Handle(o.handle))
}

// SubscribeHostEvents registers an observer for host object lifecycle
// events. The returned function removes it.
func SubscribeHostEvents(o resource.Observer) (unsubscribe func()) {
	return hosts.Subscribe(o)
}
