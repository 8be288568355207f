package native

/*
#include <stdlib.h>
#include <string.h>
#include "bridge.h"
*/
import "C"

import (
	"unsafe"
)

// Struct identifies a C descriptor layout.
type Struct int

const (
	StructUUID        Struct = C.SB_SIZE_UUID
	StructOptionValue Struct = C.SB_SIZE_OPTION_VALUE
	StructOptionEntry Struct = C.SB_SIZE_OPTION_ENTRY
	StructTargetDesc  Struct = C.SB_SIZE_TARGET_DESC
	StructMacroDesc   Struct = C.SB_SIZE_MACRO_DESC
	StructSessionDesc Struct = C.SB_SIZE_SESSION_DESC
	StructHostObject  Struct = C.SB_SIZE_HOST_OBJECT
)

// Sizeof returns the C size of s.
func Sizeof(s Struct) uintptr {
	return uintptr(C.sb_sizeof(C.int(s)))
}

// Option value kinds.
const (
	OptionKindInt    int32 = 0
	OptionKindString int32 = 1
)

// OptionEntry is one compiler option as passed to the compiler.
type OptionEntry struct {
	String0 string
	String1 string
	Name    int32
	Kind    int32
	Int0    int32
	Int1    int32
}

// TargetDesc mirrors the compiler's target descriptor.
type TargetDesc struct {
	Options                     []OptionEntry
	Format                      int32
	Profile                     uint32
	Flags                       uint32
	FloatingPointMode           int32
	LineDirectiveMode           int32
	ForceGLSLScalarBufferLayout bool
}

// Macro is a preprocessor definition.
type Macro struct {
	Name  string
	Value string
}

// SessionDesc mirrors the compiler's session descriptor.
type SessionDesc struct {
	FileSystem              unsafe.Pointer
	Targets                 []TargetDesc
	SearchPaths             []string
	Macros                  []Macro
	Options                 []OptionEntry
	Flags                   uint32
	DefaultMatrixLayoutMode int32
	EnableEffectAnnotations bool
	AllowGLSLSyntax         bool
	SkipSPIRVValidation     bool
}

// Arena owns the C memory built for a single native call. Everything it
// returns stays valid until Free.
type Arena struct {
	ptrs []unsafe.Pointer
}

// Alloc returns size zeroed bytes of C memory.
func (a *Arena) Alloc(size uintptr) unsafe.Pointer {
	if size == 0 {
		size = 1
	}
	p := C.calloc(1, C.size_t(size))
	if p == nil {
		panic("slang: out of C memory")
	}
	a.ptrs = append(a.ptrs, p)
	return p
}

// CString copies s into C memory with a terminating NUL.
func (a *Arena) CString(s string) unsafe.Pointer {
	p := a.Alloc(uintptr(len(s)) + 1)
	if len(s) > 0 {
		C.memcpy(p, unsafe.Pointer(unsafe.StringData(s)), C.size_t(len(s)))
	}
	return p
}

// CStringOrNil is CString, except an empty string yields NULL.
func (a *Arena) CStringOrNil(s string) unsafe.Pointer {
	if s == "" {
		return nil
	}
	return a.CString(s)
}

// Pointers copies a pointer array into C memory.
func (a *Arena) Pointers(ps []unsafe.Pointer) unsafe.Pointer {
	if len(ps) == 0 {
		return nil
	}
	p := a.Alloc(uintptr(len(ps)) * ptrSize)
	for i, v := range ps {
		*(*unsafe.Pointer)(unsafe.Add(p, uintptr(i)*ptrSize)) = v
	}
	return p
}

// Options writes entries as a C array and returns it with its length.
func (a *Arena) Options(opts []OptionEntry) (unsafe.Pointer, uint32) {
	if len(opts) == 0 {
		return nil, 0
	}
	size := Sizeof(StructOptionEntry)
	base := a.Alloc(uintptr(len(opts)) * size)
	for i, o := range opts {
		e := (*C.sb_compiler_option_entry)(unsafe.Add(base, uintptr(i)*size))
		e.name = C.int32_t(o.Name)
		e.value.kind = C.int32_t(o.Kind)
		e.value.intValue0 = C.int32_t(o.Int0)
		e.value.intValue1 = C.int32_t(o.Int1)
		if o.Kind == OptionKindString {
			e.value.stringValue0 = (*C.char)(a.CString(o.String0))
		}
		e.value.stringValue1 = (*C.char)(a.CStringOrNil(o.String1))
	}
	return base, uint32(len(opts))
}

// Targets writes target descriptors as a C array.
func (a *Arena) Targets(targets []TargetDesc) unsafe.Pointer {
	if len(targets) == 0 {
		return nil
	}
	size := Sizeof(StructTargetDesc)
	base := a.Alloc(uintptr(len(targets)) * size)
	for i := range targets {
		t := &targets[i]
		d := (*C.sb_target_desc)(unsafe.Add(base, uintptr(i)*size))
		d.structureSize = C.size_t(size)
		d.format = C.int32_t(t.Format)
		d.profile = C.uint32_t(t.Profile)
		d.flags = C.uint32_t(t.Flags)
		d.floatingPointMode = C.int32_t(t.FloatingPointMode)
		d.lineDirectiveMode = C.int32_t(t.LineDirectiveMode)
		d.forceGLSLScalarBufferLayout = C.bool(t.ForceGLSLScalarBufferLayout)
		opts, n := a.Options(t.Options)
		d.compilerOptionEntries = (*C.sb_compiler_option_entry)(opts)
		d.compilerOptionEntryCount = C.uint32_t(n)
	}
	return base
}

// Session writes a session descriptor and everything it points to.
func (a *Arena) Session(desc *SessionDesc) unsafe.Pointer {
	size := Sizeof(StructSessionDesc)
	p := a.Alloc(size)
	d := (*C.sb_session_desc)(p)
	d.structureSize = C.size_t(size)

	d.targets = (*C.sb_target_desc)(a.Targets(desc.Targets))
	d.targetCount = C.int64_t(len(desc.Targets))
	d.flags = C.uint32_t(desc.Flags)
	d.defaultMatrixLayoutMode = C.int32_t(desc.DefaultMatrixLayoutMode)

	if len(desc.SearchPaths) > 0 {
		paths := make([]unsafe.Pointer, len(desc.SearchPaths))
		for i, s := range desc.SearchPaths {
			paths[i] = a.CString(s)
		}
		d.searchPaths = (**C.char)(a.Pointers(paths))
		d.searchPathCount = C.int64_t(len(paths))
	}

	if len(desc.Macros) > 0 {
		msize := Sizeof(StructMacroDesc)
		base := a.Alloc(uintptr(len(desc.Macros)) * msize)
		for i, m := range desc.Macros {
			md := (*C.sb_macro_desc)(unsafe.Add(base, uintptr(i)*msize))
			md.name = (*C.char)(a.CString(m.Name))
			md.value = (*C.char)(a.CString(m.Value))
		}
		d.preprocessorMacros = (*C.sb_macro_desc)(base)
		d.preprocessorMacroCount = C.int64_t(len(desc.Macros))
	}

	d.fileSystem = desc.FileSystem
	d.enableEffectAnnotations = C.bool(desc.EnableEffectAnnotations)
	d.allowGLSLSyntax = C.bool(desc.AllowGLSLSyntax)
	d.skipSPIRVValidation = C.bool(desc.SkipSPIRVValidation)

	opts, n := a.Options(desc.Options)
	d.compilerOptionEntries = (*C.sb_compiler_option_entry)(opts)
	d.compilerOptionEntryCount = C.uint32_t(n)
	return p
}

// Free releases every allocation made by the arena.
func (a *Arena) Free() {
	for _, p := range a.ptrs {
		C.free(p)
	}
	a.ptrs = nil
}

// readback helpers used by tests to inspect marshaled descriptors

// SessionView is a Go copy of a marshaled session descriptor.
type SessionView struct {
	SearchPaths  []string
	Macros       []Macro
	Targets      []TargetView
	Options      []OptionEntry
	StructSize   uintptr
	Flags        uint32
	MatrixLayout int32
	FileSystem   unsafe.Pointer
	AllowGLSL    bool
}

// TargetView is a Go copy of a marshaled target descriptor.
type TargetView struct {
	Options    []OptionEntry
	StructSize uintptr
	Format     int32
	Profile    uint32
}

// ReadSession decodes a descriptor written by Arena.Session.
func ReadSession(p unsafe.Pointer) SessionView {
	d := (*C.sb_session_desc)(p)
	v := SessionView{
		StructSize:   uintptr(d.structureSize),
		Flags:        uint32(d.flags),
		MatrixLayout: int32(d.defaultMatrixLayoutMode),
		FileSystem:   d.fileSystem,
		AllowGLSL:    bool(d.allowGLSLSyntax),
		Options:      readOptions(unsafe.Pointer(d.compilerOptionEntries), int(d.compilerOptionEntryCount)),
	}
	for i := range int(d.searchPathCount) {
		s := *(**C.char)(unsafe.Add(unsafe.Pointer(d.searchPaths), uintptr(i)*ptrSize))
		v.SearchPaths = append(v.SearchPaths, C.GoString(s))
	}
	msize := Sizeof(StructMacroDesc)
	for i := range int(d.preprocessorMacroCount) {
		md := (*C.sb_macro_desc)(unsafe.Add(unsafe.Pointer(d.preprocessorMacros), uintptr(i)*msize))
		v.Macros = append(v.Macros, Macro{Name: C.GoString(md.name), Value: C.GoString(md.value)})
	}
	tsize := Sizeof(StructTargetDesc)
	for i := range int(d.targetCount) {
		td := (*C.sb_target_desc)(unsafe.Add(unsafe.Pointer(d.targets), uintptr(i)*tsize))
		v.Targets = append(v.Targets, TargetView{
			StructSize: uintptr(td.structureSize),
			Format:     int32(td.format),
			Profile:    uint32(td.profile),
			Options:    readOptions(unsafe.Pointer(td.compilerOptionEntries), int(td.compilerOptionEntryCount)),
		})
	}
	return v
}

// ReadOptions decodes an option array written by Arena.Options.
func ReadOptions(p unsafe.Pointer, n uint32) []OptionEntry {
	return readOptions(p, int(n))
}

func readOptions(p unsafe.Pointer, n int) []OptionEntry {
	if p == nil || n == 0 {
		return nil
	}
	size := Sizeof(StructOptionEntry)
	out := make([]OptionEntry, n)
	for i := range n {
		e := (*C.sb_compiler_option_entry)(unsafe.Add(p, uintptr(i)*size))
		out[i] = OptionEntry{
			Name:    int32(e.name),
			Kind:    int32(e.value.kind),
			Int0:    int32(e.value.intValue0),
			Int1:    int32(e.value.intValue1),
			String0: GoString(unsafe.Pointer(e.value.stringValue0)),
			String1: GoString(unsafe.Pointer(e.value.stringValue1)),
		}
	}
	return out
}
