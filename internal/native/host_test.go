package native

import (
	"fmt"
	"sync"
	"testing"
	"unsafe"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/resource"
)

// Blob and file system slots after the three IUnknown methods.
const (
	slotBufferPointer Method = 3
	slotBufferSize    Method = 4
	slotCastAs        Method = 3
	slotLoadFile      Method = 4
)

func blobBytes(obj unsafe.Pointer) []byte {
	return GoBytes(CallPtr(obj, slotBufferPointer), int(CallSize(obj, slotBufferSize)))
}

type mapLoader map[string]string

func (m mapLoader) LoadFile(path string) (unsafe.Pointer, error) {
	data, ok := m[path]
	if !ok {
		return nil, errors.NotFound(errors.PhaseHost, "file", path)
	}
	return NewOwnedBlob([]byte(data)), nil
}

type loaderFunc func(string) (unsafe.Pointer, error)

func (f loaderFunc) LoadFile(path string) (unsafe.Pointer, error) { return f(path) }

func loadFile(t *testing.T, fs unsafe.Pointer, path string) (unsafe.Pointer, errors.Result) {
	t.Helper()
	var arena Arena
	defer arena.Free()
	var out unsafe.Pointer
	r := CallStatusPP(fs, slotLoadFile, arena.CString(path), unsafe.Pointer(&out))
	return out, r
}

func TestStaticBlob(t *testing.T) {
	data := []byte("static contents")
	before := HostObjects()

	obj := NewStaticBlob(data)
	if got := string(blobBytes(obj)); got != "static contents" {
		t.Fatalf("contents = %q", got)
	}
	if refs := AddRef(obj); refs != 1 {
		t.Errorf("AddRef = %d, want 1", refs)
	}
	for range 5 {
		if refs := Release(obj); refs != 1 {
			t.Fatalf("Release = %d, want 1", refs)
		}
	}
	// Still readable after any number of releases.
	if got := string(blobBytes(obj)); got != "static contents" {
		t.Fatalf("contents after release = %q", got)
	}
	if HostObjects() != before {
		t.Fatal("static blobs must not enter the handle table")
	}
	if _, ok := HostRefs(obj); ok {
		t.Fatal("HostRefs should not report static blobs")
	}
}

func TestStaticBlobEmpty(t *testing.T) {
	obj := NewStaticBlobString("")
	if n := CallSize(obj, slotBufferSize); n != 0 {
		t.Fatalf("size = %d", n)
	}
	if p := CallPtr(obj, slotBufferPointer); p != nil {
		t.Fatalf("pointer = %p, want nil", p)
	}
}

func TestOwnedBlobCopiesAndFreesOnce(t *testing.T) {
	var dropped int
	var mu sync.Mutex
	obs := resource.ObserverFunc(func(e resource.Event) {
		if e.Type == resource.EventDropped && e.TypeID == KindOwnedBlob {
			mu.Lock()
			dropped++
			mu.Unlock()
		}
	})
	defer SubscribeHostEvents(obs)()

	src := []byte("owned")
	before := HostObjects()
	obj := NewOwnedBlob(src)
	src[0] = 'X'

	if got := string(blobBytes(obj)); got != "owned" {
		t.Fatalf("contents = %q, want a private copy", got)
	}
	if HostObjects() != before+1 {
		t.Fatalf("HostObjects = %d, want %d", HostObjects(), before+1)
	}

	if refs := AddRef(obj); refs != 2 {
		t.Fatalf("AddRef = %d, want 2", refs)
	}
	if refs, _ := HostRefs(obj); refs != 2 {
		t.Fatalf("HostRefs = %d, want 2", refs)
	}
	if refs := Release(obj); refs != 1 {
		t.Fatalf("Release = %d, want 1", refs)
	}
	if dropped != 0 {
		t.Fatal("freed while referenced")
	}
	if refs := Release(obj); refs != 0 {
		t.Fatalf("final Release = %d, want 0", refs)
	}
	if dropped != 1 {
		t.Fatalf("dropped %d times, want 1", dropped)
	}
	if HostObjects() != before {
		t.Fatalf("HostObjects = %d after free, want %d", HostObjects(), before)
	}
}

func TestHostEventsUnsubscribe(t *testing.T) {
	var created int
	unsubscribe := SubscribeHostEvents(resource.ObserverFunc(func(e resource.Event) {
		if e.Type == resource.EventCreated {
			created++
		}
	}))

	Release(NewOwnedBlob([]byte("one")))
	unsubscribe()
	unsubscribe()
	Release(NewOwnedBlob([]byte("two")))

	if created != 1 {
		t.Fatalf("created events = %d, want 1", created)
	}
}

func TestOwnedBlobConcurrentRefs(t *testing.T) {
	obj := NewOwnedBlob([]byte("shared"))
	before := HostObjects()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 500 {
				AddRef(obj)
				Release(obj)
			}
		}()
	}
	wg.Wait()

	if refs, ok := HostRefs(obj); !ok || refs != 1 {
		t.Fatalf("HostRefs = %d, %v", refs, ok)
	}
	Release(obj)
	if HostObjects() != before-1 {
		t.Fatalf("HostObjects = %d, want %d", HostObjects(), before-1)
	}
}

func TestQueryInterface(t *testing.T) {
	blob := NewOwnedBlob([]byte("q"))
	defer Release(blob)
	fs := NewFileSystem(mapLoader{})
	defer Release(fs)

	tests := []struct {
		name string
		obj  unsafe.Pointer
		iid  IID
		ok   bool
	}{
		{"blob as unknown", blob, IIDUnknown, true},
		{"blob as blob", blob, IIDBlob, true},
		{"blob as file system", blob, IIDFileSystem, false},
		{"blob as session", blob, IIDSession, false},
		{"fs as unknown", fs, IIDUnknown, true},
		{"fs as castable", fs, IIDCastable, true},
		{"fs as file system", fs, IIDFileSystem, true},
		{"fs as blob", fs, IIDBlob, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refsBefore, _ := HostRefs(tt.obj)
			out, r := QueryInterface(tt.obj, tt.iid)
			if !tt.ok {
				if r != errors.ENoInterface || out != nil {
					t.Fatalf("QueryInterface = %p, %v; want nil, E_NOINTERFACE", out, r)
				}
				return
			}
			if r != errors.OK || out != tt.obj {
				t.Fatalf("QueryInterface = %p, %v", out, r)
			}
			refsAfter, _ := HostRefs(tt.obj)
			if refsAfter != refsBefore+1 {
				t.Fatalf("refs %d -> %d, want one added", refsBefore, refsAfter)
			}
			Release(out)
		})
	}
}

func TestFileSystemCastAs(t *testing.T) {
	fs := NewFileSystem(mapLoader{})
	defer Release(fs)

	refs, _ := HostRefs(fs)
	if got := CastAs(fs, slotCastAs, IIDFileSystem); got != fs {
		t.Fatalf("castAs(ISlangFileSystem) = %p, want %p", got, fs)
	}
	if got := CastAs(fs, slotCastAs, IIDBlob); got != nil {
		t.Fatalf("castAs(ISlangBlob) = %p, want nil", got)
	}
	if after, _ := HostRefs(fs); after != refs {
		t.Fatalf("castAs changed refs %d -> %d", refs, after)
	}
}

func TestFileSystemLoadFile(t *testing.T) {
	fs := NewFileSystem(mapLoader{"shaders/a.slang": "float4 f() { return 0; }"})
	defer Release(fs)

	out, r := loadFile(t, fs, "shaders/a.slang")
	if r != errors.OK {
		t.Fatalf("loadFile = %v", r)
	}
	if got := string(blobBytes(out)); got != "float4 f() { return 0; }" {
		t.Fatalf("contents = %q", got)
	}
	if refs, _ := HostRefs(out); refs != 1 {
		t.Fatalf("returned blob refs = %d, want 1", refs)
	}
	Release(out)

	out, r = loadFile(t, fs, "missing.slang")
	if r != errors.ENotFound {
		t.Fatalf("missing file = %v, want E_NOT_FOUND", r)
	}
	if out != nil {
		t.Fatal("out must stay null on failure")
	}
}

func TestFileSystemLoaderStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.Result
	}{
		{"result", errors.ECannotOpen, errors.ECannotOpen},
		{"plain error", fmt.Errorf("disk on fire"), errors.EFail},
		{"nil blob", nil, errors.ENotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSystem(loaderFunc(func(string) (unsafe.Pointer, error) {
				return nil, tt.err
			}))
			defer Release(fs)

			out, r := loadFile(t, fs, "x")
			if r != tt.want || out != nil {
				t.Fatalf("loadFile = %p, %v; want nil, %v", out, r, tt.want)
			}
		})
	}
}

func TestFileSystemPanicContained(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	defer SetLogger(prev)

	fs := NewFileSystem(loaderFunc(func(string) (unsafe.Pointer, error) {
		panic("loader exploded")
	}))
	defer Release(fs)

	out, r := loadFile(t, fs, "boom.slang")
	if r != errors.EFail {
		t.Fatalf("loadFile = %v, want E_FAIL", r)
	}
	if out != nil {
		t.Fatal("out must be null after a panic")
	}
	if logs.FilterMessage("file system callback panicked").Len() != 1 {
		t.Fatalf("expected one panic log entry, got %v", logs.All())
	}
}

func TestFileSystemRelease(t *testing.T) {
	before := HostObjects()
	fs := NewFileSystem(mapLoader{})
	AddRef(fs)
	if Release(fs) != 1 {
		t.Fatal("expected one reference left")
	}
	if Release(fs) != 0 {
		t.Fatal("expected no references left")
	}
	if HostObjects() != before {
		t.Fatalf("HostObjects = %d, want %d", HostObjects(), before)
	}
}
