package reflection

import (
	"iter"
	"unsafe"

	"github.com/wippyai/slang-bridge/internal/native"
)

// ProgramLayout is the reflection view of a component type for one target.
// It is owned by the component type it came from and is valid while that
// component is alive.
type ProgramLayout struct {
	ptr unsafe.Pointer
}

// NewProgramLayout wraps a raw layout pointer. A nil pointer yields nil.
func NewProgramLayout(p unsafe.Pointer) *ProgramLayout {
	if p == nil {
		return nil
	}
	return &ProgramLayout{ptr: p}
}

// Raw returns the underlying pointer.
func (l *ProgramLayout) Raw() unsafe.Pointer {
	if l == nil {
		return nil
	}
	return l.ptr
}

func (l *ProgramLayout) raw() unsafe.Pointer { return l.Raw() }

// ParameterCount returns the number of global shader parameters.
func (l *ProgramLayout) ParameterCount() uint32 {
	return u32Of("spReflection_GetParameterCount", l.raw())
}

// ParameterByIndex returns a global parameter, or nil when out of range.
func (l *ProgramLayout) ParameterByIndex(i uint32) *VariableLayout {
	if i >= l.ParameterCount() {
		return nil
	}
	return newVariableLayout(ptrAt("spReflection_GetParameterByIndex", l.raw(), i))
}

// Parameters yields every global parameter.
func (l *ProgramLayout) Parameters() iter.Seq[*VariableLayout] {
	return func(yield func(*VariableLayout) bool) {
		n := l.ParameterCount()
		for i := range n {
			if !yield(l.ParameterByIndex(i)) {
				return
			}
		}
	}
}

// TypeParameterCount returns the number of global generic type parameters.
func (l *ProgramLayout) TypeParameterCount() uint32 {
	return u32Of("spReflection_GetTypeParameterCount", l.raw())
}

// TypeParameterByIndex returns a type parameter, or nil when out of range.
func (l *ProgramLayout) TypeParameterByIndex(i uint32) *TypeParameter {
	if i >= l.TypeParameterCount() {
		return nil
	}
	return newTypeParameter(ptrAt("spReflection_GetTypeParameterByIndex", l.raw(), i))
}

// TypeParameters yields every type parameter.
func (l *ProgramLayout) TypeParameters() iter.Seq[*TypeParameter] {
	return func(yield func(*TypeParameter) bool) {
		n := l.TypeParameterCount()
		for i := range n {
			if !yield(l.TypeParameterByIndex(i)) {
				return
			}
		}
	}
}

// FindTypeParameterByName returns the named type parameter or nil.
func (l *ProgramLayout) FindTypeParameterByName(name string) *TypeParameter {
	return newTypeParameter(ptrByName("spReflection_FindTypeParameter", l.raw(), name))
}

// EntryPointCount returns the number of entry points in the layout.
func (l *ProgramLayout) EntryPointCount() uint64 {
	return u64Of("spReflection_getEntryPointCount", l.raw())
}

// EntryPointByIndex returns an entry point layout, or nil when out of range.
func (l *ProgramLayout) EntryPointByIndex(i uint64) *EntryPoint {
	if i >= l.EntryPointCount() {
		return nil
	}
	return newEntryPoint(ptrAt64("spReflection_getEntryPointByIndex", l.raw(), i))
}

// EntryPoints yields every entry point layout.
func (l *ProgramLayout) EntryPoints() iter.Seq[*EntryPoint] {
	return func(yield func(*EntryPoint) bool) {
		n := l.EntryPointCount()
		for i := range n {
			if !yield(l.EntryPointByIndex(i)) {
				return
			}
		}
	}
}

// FindEntryPointByName returns the named entry point layout or nil.
func (l *ProgramLayout) FindEntryPointByName(name string) *EntryPoint {
	return newEntryPoint(ptrByName("spReflection_findEntryPointByName", l.raw(), name))
}

// GlobalConstantBufferBinding returns the binding index of the implicit
// global constant buffer.
func (l *ProgramLayout) GlobalConstantBufferBinding() uint64 {
	return u64Of("spReflection_getGlobalConstantBufferBinding", l.raw())
}

// GlobalConstantBufferSize returns the size in bytes of the implicit global
// constant buffer.
func (l *ProgramLayout) GlobalConstantBufferSize() uint64 {
	return u64Of("spReflection_getGlobalConstantBufferSize", l.raw())
}

// FindTypeByName resolves a type name in the program's scope, or nil.
func (l *ProgramLayout) FindTypeByName(name string) *Type {
	return newType(ptrByName("spReflection_FindTypeByName", l.raw(), name))
}

// FindFunctionByName resolves a function name in the program's scope, or nil.
func (l *ProgramLayout) FindFunctionByName(name string) *Function {
	return newFunction(ptrByName("spReflection_FindFunctionByName", l.raw(), name))
}

// FindFunctionByNameInType resolves a method of t, or nil.
func (l *ProgramLayout) FindFunctionByNameInType(t *Type, name string) *Function {
	return newFunction(byNameInType("spReflection_FindFunctionByNameInType", l.raw(), t.Raw(), name))
}

// FindVarByNameInType resolves a field of t, or nil.
func (l *ProgramLayout) FindVarByNameInType(t *Type, name string) *Variable {
	return newVariable(byNameInType("spReflection_FindVarByNameInType", l.raw(), t.Raw(), name))
}

func byNameInType(sym string, self, typ unsafe.Pointer, name string) unsafe.Pointer {
	f := native.MustSym(sym)
	if f == nil || self == nil || typ == nil {
		return nil
	}
	var a native.Arena
	defer a.Free()
	return native.FCallPPP(f, self, typ, a.CString(name))
}

// TypeLayout computes the layout of t under rules, or nil.
func (l *ProgramLayout) TypeLayout(t *Type, rules LayoutRules) *TypeLayout {
	f := native.MustSym("spReflection_GetTypeLayout")
	if f == nil || l.raw() == nil || t.Raw() == nil {
		return nil
	}
	return newTypeLayout(native.FCallPPU32(f, l.raw(), t.Raw(), uint32(rules)))
}

// HashedStringCount returns the number of strings recorded for
// getStringHash calls in shader code.
func (l *ProgramLayout) HashedStringCount() uint64 {
	return u64Of("spReflection_getHashedStringCount", l.raw())
}

// HashedString returns the recorded string at index i.
func (l *ProgramLayout) HashedString(i uint64) (string, bool) {
	if i >= l.HashedStringCount() {
		return "", false
	}
	f := native.MustSym("spReflection_getHashedString")
	if f == nil {
		return "", false
	}
	p, n := native.FCallPU64N(f, l.raw(), i)
	if p == nil {
		return "", false
	}
	return native.GoStringN(p, n), true
}

// HashedStrings yields every recorded string.
func (l *ProgramLayout) HashedStrings() iter.Seq[string] {
	return func(yield func(string) bool) {
		n := l.HashedStringCount()
		for i := range n {
			s, ok := l.HashedString(i)
			if !ok {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

// GlobalParamsTypeLayout returns the layout of the implicit struct holding
// all global parameters.
func (l *ProgramLayout) GlobalParamsTypeLayout() *TypeLayout {
	return newTypeLayout(ptrOf("spReflection_getGlobalParamsTypeLayout", l.raw()))
}

// GlobalParamsVarLayout returns the variable layout wrapping
// GlobalParamsTypeLayout.
func (l *ProgramLayout) GlobalParamsVarLayout() *VariableLayout {
	return newVariableLayout(ptrOf("spReflection_getGlobalParamsVarLayout", l.raw()))
}
