package native

import (
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/wippyai/slang-bridge/errors"
)

func TestStructSizes(t *testing.T) {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("descriptor layouts are pinned for 64-bit targets")
	}

	tests := []struct {
		s    Struct
		want uintptr
	}{
		{StructUUID, 16},
		{StructOptionValue, 32},
		{StructOptionEntry, 40},
		{StructTargetDesc, 48},
		{StructMacroDesc, 16},
		{StructSessionDesc, 96},
		{StructHostObject, 40},
	}
	for _, tt := range tests {
		if got := Sizeof(tt.s); got != tt.want {
			t.Errorf("Sizeof(%d) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestArenaOptions(t *testing.T) {
	var a Arena
	defer a.Free()

	opts := []OptionEntry{
		{Name: 15, Kind: OptionKindString, String0: "spirv_1_5"},
		{Name: 0, Kind: OptionKindString, String0: "FOO", String1: "1"},
		{Name: 48, Kind: OptionKindInt, Int0: 2},
		{Name: 2, Kind: OptionKindString, String0: ""},
	}
	p, n := a.Options(opts)
	if n != uint32(len(opts)) {
		t.Fatalf("count = %d", n)
	}
	if diff := cmp.Diff(opts, ReadOptions(p, n)); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}

	if p, n := a.Options(nil); p != nil || n != 0 {
		t.Errorf("empty options = %p, %d", p, n)
	}
}

func TestArenaSession(t *testing.T) {
	var a Arena
	defer a.Free()

	fs := NewFileSystem(mapLoader{})
	defer Release(fs)

	desc := &SessionDesc{
		Targets: []TargetDesc{
			{Format: 6, Profile: 42, Options: []OptionEntry{{Name: 49, Kind: OptionKindInt, Int0: 1}}},
			{Format: 10},
		},
		SearchPaths:             []string{"shaders", "vendor/include"},
		Macros:                  []Macro{{Name: "USE_FAST_MATH", Value: "1"}, {Name: "EMPTY", Value: ""}},
		Options:                 []OptionEntry{{Name: 8, Kind: OptionKindInt, Int0: 1}},
		DefaultMatrixLayoutMode: 2,
		AllowGLSLSyntax:         true,
		FileSystem:              fs,
	}

	got := ReadSession(a.Session(desc))
	want := SessionView{
		SearchPaths:  desc.SearchPaths,
		Macros:       desc.Macros,
		Options:      desc.Options,
		StructSize:   Sizeof(StructSessionDesc),
		MatrixLayout: 2,
		FileSystem:   fs,
		AllowGLSL:    true,
		Targets: []TargetView{
			{StructSize: Sizeof(StructTargetDesc), Format: 6, Profile: 42, Options: desc.Targets[0].Options},
			{StructSize: Sizeof(StructTargetDesc), Format: 10},
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty(), cmp.Comparer(func(x, y unsafe.Pointer) bool { return x == y })); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestArenaEmptySession(t *testing.T) {
	var a Arena
	defer a.Free()

	got := ReadSession(a.Session(&SessionDesc{}))
	if got.StructSize != Sizeof(StructSessionDesc) {
		t.Errorf("StructSize = %d", got.StructSize)
	}
	if len(got.Targets) != 0 || len(got.SearchPaths) != 0 || len(got.Macros) != 0 || got.FileSystem != nil {
		t.Errorf("empty descriptor decoded as %+v", got)
	}
}

func TestIIDs(t *testing.T) {
	if got := IIDBlob.UUID(); got.Data1 != 0x8BA5FB08 || got.Data4[7] != 0x02 {
		t.Errorf("ISlangBlob = %+v", got)
	}
	if got := IIDUnknown.UUID(); got.Data1 != 0 || got.Data4[0] != 0xC0 || got.Data4[7] != 0x46 {
		t.Errorf("ISlangUnknown = %+v", got)
	}
	if got := IIDSession.UUID(); got.Data1 != 0x67618701 {
		t.Errorf("ISession = %+v", got)
	}
	if IIDModule.String() != "IModule" {
		t.Errorf("String() = %q", IIDModule.String())
	}
	if IID(99).UUID() != (UUID{}) {
		t.Error("unknown IID should have a zero UUID")
	}
}

func TestOpenMissingLibrary(t *testing.T) {
	_, err := Open("libslang-does-not-exist.so")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, errors.ENotAvailable) {
		t.Errorf("error %v should carry E_NOT_AVAILABLE", err)
	}
}

func TestCandidates(t *testing.T) {
	t.Setenv(EnvLibrary, "/opt/slang/lib/libslang.so")
	c := Candidates()
	if len(c) < 2 || c[0] != "/opt/slang/lib/libslang.so" {
		t.Fatalf("Candidates = %v", c)
	}
}
