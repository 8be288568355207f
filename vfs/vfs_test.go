package vfs

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	slang "github.com/wippyai/slang-bridge"
	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/internal/native"
)

// load reads name and returns its text, releasing the blob.
func load(t *testing.T, fsys slang.FileSystem, name string) (string, error) {
	t.Helper()
	b, err := fsys.LoadFile(name)
	if err != nil {
		return "", err
	}
	defer b.Release()
	text, err := b.Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	return text, nil
}

func checkNoLeaks(t *testing.T) {
	t.Helper()
	before := native.HostObjects()
	t.Cleanup(func() {
		if after := native.HostObjects(); after != before {
			t.Errorf("host objects: %d before, %d after", before, after)
		}
	})
}

func TestMapFS(t *testing.T) {
	checkNoLeaks(t)

	src := []byte("void main() {}")
	m := NewMapFS(map[string][]byte{"a.slang": src})
	src[0] = 'X'

	tests := []struct {
		name    string
		path    string
		want    string
		missing bool
	}{
		{"plain", "a.slang", "void main() {}", false},
		{"dot slash", "./a.slang", "void main() {}", false},
		{"leading slash", "/a.slang", "void main() {}", false},
		{"backslash", "dir\\..\\a.slang", "void main() {}", false},
		{"missing", "b.slang", "", true},
		{"escape", "../a.slang", "void main() {}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := load(t, m, tt.path)
			if tt.missing {
				if !IsNotExist(err) {
					t.Fatalf("LoadFile(%q) error = %v, want not exist", tt.path, err)
				}
				if code := errors.StatusOf(err); code != errors.ENotFound {
					t.Errorf("StatusOf() = %v, want E_NOT_FOUND", code)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFile(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("LoadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestMapFS_Mutation(t *testing.T) {
	checkNoLeaks(t)

	m := NewMapFS(nil)
	m.SetString("x.slang", "one")

	b, err := m.LoadFile("x.slang")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Release()

	m.SetString("x.slang", "two")
	if got := string(b.Bytes()); got != "one" {
		t.Errorf("loaded blob changed to %q", got)
	}
	if got, _ := load(t, m, "x.slang"); got != "two" {
		t.Errorf("reload = %q, want two", got)
	}

	m.Delete("x.slang")
	if _, err := m.LoadFile("x.slang"); !IsNotExist(err) {
		t.Errorf("after Delete error = %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d", m.Len())
	}
}

func TestMapFS_Concurrent(t *testing.T) {
	checkNoLeaks(t)

	m := NewMapFS(map[string][]byte{"a.slang": []byte("a")})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b, err := m.LoadFile("a.slang")
				if err != nil {
					t.Error(err)
					return
				}
				b.Release()
				m.SetString("b.slang", "b")
			}
		}()
	}
	wg.Wait()
}

func TestDirFS(t *testing.T) {
	checkNoLeaks(t)

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "lib"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "lib", "common.slang"), []byte("float f();"), 0o644); err != nil {
		t.Fatal(err)
	}
	outside := filepath.Join(filepath.Dir(root), "outside.slang")
	_ = os.WriteFile(outside, []byte("secret"), 0o644)
	t.Cleanup(func() { os.Remove(outside) })

	d := DirFS(root)

	got, err := load(t, d, "lib/common.slang")
	if err != nil || got != "float f();" {
		t.Fatalf("relative load = %q, %v", got, err)
	}

	got, err = load(t, d, filepath.Join(root, "lib", "common.slang"))
	if err != nil || got != "float f();" {
		t.Fatalf("absolute load inside root = %q, %v", got, err)
	}

	for _, name := range []string{"../outside.slang", outside, "lib/missing.slang"} {
		if _, err := d.LoadFile(name); !IsNotExist(err) {
			t.Errorf("LoadFile(%q) error = %v, want not exist", name, err)
		}
	}

	_, err = d.LoadFile("lib")
	if err == nil {
		t.Fatal("loading a directory should fail")
	}
	if IsNotExist(err) {
		t.Errorf("directory reported as missing: %v", err)
	}
	if code := errors.StatusOf(err); code != errors.ECannotOpen {
		t.Errorf("StatusOf(directory) = %v, want E_CANNOT_OPEN", code)
	}
}

func TestFromFS(t *testing.T) {
	checkNoLeaks(t)

	f := FromFS(fstest.MapFS{
		"shaders/a.slang": {Data: []byte("a")},
	})

	for _, name := range []string{"shaders/a.slang", "/shaders/a.slang", "./shaders/./a.slang"} {
		got, err := load(t, f, name)
		if err != nil || got != "a" {
			t.Errorf("LoadFile(%q) = %q, %v", name, got, err)
		}
	}
	if _, err := f.LoadFile("shaders/b.slang"); !IsNotExist(err) {
		t.Errorf("missing file error = %v", err)
	}
	if _, err := f.LoadFile("/"); !IsNotExist(err) {
		t.Errorf("root error = %v", err)
	}
}

func TestOverlay(t *testing.T) {
	checkNoLeaks(t)

	top := NewMapFS(map[string][]byte{"a.slang": []byte("top")})
	bottom := NewMapFS(map[string][]byte{
		"a.slang": []byte("bottom"),
		"b.slang": []byte("bottom"),
	})
	o := Overlay(top, nil, bottom)

	if got, _ := load(t, o, "a.slang"); got != "top" {
		t.Errorf("a.slang = %q, want top", got)
	}
	if got, _ := load(t, o, "b.slang"); got != "bottom" {
		t.Errorf("b.slang = %q, want bottom", got)
	}
	if _, err := o.LoadFile("c.slang"); !IsNotExist(err) {
		t.Errorf("c.slang error = %v", err)
	}

	broken := slang.FileSystemFunc(func(string) (*slang.Blob, error) {
		return nil, errors.InvalidInput(errors.PhaseHost, "broken")
	})
	_, err := Overlay(broken, bottom).LoadFile("b.slang")
	if code := errors.StatusOf(err); code != errors.EInvalidArg {
		t.Errorf("broken layer StatusOf = %v, want E_INVALIDARG", code)
	}
}

func TestLogged(t *testing.T) {
	checkNoLeaks(t)

	core, logs := observer.New(zapcore.DebugLevel)
	fsys := Logged(NewMapFS(map[string][]byte{"a.slang": []byte("abc")}), zap.New(core))

	if _, err := load(t, fsys, "a.slang"); err != nil {
		t.Fatal(err)
	}
	if _, err := fsys.LoadFile("missing.slang"); err == nil {
		t.Fatal("expected error")
	}

	entries := logs.FilterMessage("load file").All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	if entries[0].ContextMap()["bytes"] != int64(3) {
		t.Errorf("first entry = %v", entries[0].ContextMap())
	}
	if _, ok := entries[1].ContextMap()["error"]; !ok {
		t.Errorf("second entry = %v", entries[1].ContextMap())
	}
}
