package reflection

import (
	"iter"
	"unsafe"
)

// VariableLayout is a variable together with its computed layout.
type VariableLayout struct{ ptr unsafe.Pointer }

func newVariableLayout(p unsafe.Pointer) *VariableLayout {
	if p == nil {
		return nil
	}
	return &VariableLayout{ptr: p}
}

// Raw returns the underlying pointer.
func (v *VariableLayout) Raw() unsafe.Pointer {
	if v == nil {
		return nil
	}
	return v.ptr
}

// Variable returns the variable being laid out.
func (v *VariableLayout) Variable() *Variable {
	return newVariable(ptrOf("spReflectionVariableLayout_GetVariable", v.Raw()))
}

// Name returns the variable's name.
func (v *VariableLayout) Name() string {
	return v.Variable().Name()
}

// TypeLayout returns the layout of the variable's type.
func (v *VariableLayout) TypeLayout() *TypeLayout {
	return newTypeLayout(ptrOf("spReflectionVariableLayout_GetTypeLayout", v.Raw()))
}

// Offset returns the variable's offset for category.
func (v *VariableLayout) Offset(category ParameterCategory) uint64 {
	return u64At("spReflectionVariableLayout_GetOffset", v.Raw(), uint32(category))
}

// Space returns the register space used for category.
func (v *VariableLayout) Space(category ParameterCategory) uint64 {
	return u64At("spReflectionVariableLayout_GetSpace", v.Raw(), uint32(category))
}

// Variable is a declared variable or parameter.
type Variable struct{ ptr unsafe.Pointer }

func newVariable(p unsafe.Pointer) *Variable {
	if p == nil {
		return nil
	}
	return &Variable{ptr: p}
}

// Raw returns the underlying pointer.
func (v *Variable) Raw() unsafe.Pointer {
	if v == nil {
		return nil
	}
	return v.ptr
}

// Name returns the variable's name.
func (v *Variable) Name() string {
	return strOf("spReflectionVariable_GetName", v.Raw())
}

// Type returns the variable's type.
func (v *Variable) Type() *Type {
	return newType(ptrOf("spReflectionVariable_GetType", v.Raw()))
}

// Type is a reflected type.
type Type struct{ ptr unsafe.Pointer }

func newType(p unsafe.Pointer) *Type {
	if p == nil {
		return nil
	}
	return &Type{ptr: p}
}

// Raw returns the underlying pointer.
func (t *Type) Raw() unsafe.Pointer {
	if t == nil {
		return nil
	}
	return t.ptr
}

// Name returns the type's name.
func (t *Type) Name() string {
	return strOf("spReflectionType_GetName", t.Raw())
}

// Kind classifies the type.
func (t *Type) Kind() TypeKind {
	return TypeKind(u32Of("spReflectionType_GetKind", t.Raw()))
}

// FieldCount returns the number of fields of a struct type.
func (t *Type) FieldCount() uint32 {
	return u32Of("spReflectionType_GetFieldCount", t.Raw())
}

// Field returns field i, or nil when out of range.
func (t *Type) Field(i uint32) *Variable {
	if i >= t.FieldCount() {
		return nil
	}
	return newVariable(ptrAt("spReflectionType_GetFieldByIndex", t.Raw(), i))
}

// Fields yields every field.
func (t *Type) Fields() iter.Seq[*Variable] {
	return func(yield func(*Variable) bool) {
		n := t.FieldCount()
		for i := range n {
			if !yield(t.Field(i)) {
				return
			}
		}
	}
}

// TypeLayout is a type with its computed layout.
type TypeLayout struct{ ptr unsafe.Pointer }

func newTypeLayout(p unsafe.Pointer) *TypeLayout {
	if p == nil {
		return nil
	}
	return &TypeLayout{ptr: p}
}

// Raw returns the underlying pointer.
func (t *TypeLayout) Raw() unsafe.Pointer {
	if t == nil {
		return nil
	}
	return t.ptr
}

// Type returns the type being laid out.
func (t *TypeLayout) Type() *Type {
	return newType(ptrOf("spReflectionTypeLayout_GetType", t.Raw()))
}

// Size returns the size consumed for category.
func (t *TypeLayout) Size(category ParameterCategory) uint64 {
	return u64At("spReflectionTypeLayout_GetSize", t.Raw(), uint32(category))
}

// TypeParameter is a global generic type parameter.
type TypeParameter struct{ ptr unsafe.Pointer }

func newTypeParameter(p unsafe.Pointer) *TypeParameter {
	if p == nil {
		return nil
	}
	return &TypeParameter{ptr: p}
}

// Raw returns the underlying pointer.
func (t *TypeParameter) Raw() unsafe.Pointer {
	if t == nil {
		return nil
	}
	return t.ptr
}

// Name returns the parameter's name.
func (t *TypeParameter) Name() string {
	return strOf("spReflectionTypeParameter_GetName", t.Raw())
}

// Index returns the parameter's position.
func (t *TypeParameter) Index() uint32 {
	return u32Of("spReflectionTypeParameter_GetIndex", t.Raw())
}

// EntryPoint is the layout of one entry point.
type EntryPoint struct{ ptr unsafe.Pointer }

func newEntryPoint(p unsafe.Pointer) *EntryPoint {
	if p == nil {
		return nil
	}
	return &EntryPoint{ptr: p}
}

// Raw returns the underlying pointer.
func (e *EntryPoint) Raw() unsafe.Pointer {
	if e == nil {
		return nil
	}
	return e.ptr
}

// Name returns the entry point's name.
func (e *EntryPoint) Name() string {
	return strOf("spReflectionEntryPoint_getName", e.Raw())
}

// Stage returns the pipeline stage.
func (e *EntryPoint) Stage() Stage {
	return Stage(u32Of("spReflectionEntryPoint_getStage", e.Raw()))
}

// ParameterCount returns the number of entry point parameters.
func (e *EntryPoint) ParameterCount() uint32 {
	return u32Of("spReflectionEntryPoint_getParameterCount", e.Raw())
}

// Parameter returns parameter i, or nil when out of range.
func (e *EntryPoint) Parameter(i uint32) *VariableLayout {
	if i >= e.ParameterCount() {
		return nil
	}
	return newVariableLayout(ptrAt("spReflectionEntryPoint_getParameterByIndex", e.Raw(), i))
}

// Parameters yields every entry point parameter.
func (e *EntryPoint) Parameters() iter.Seq[*VariableLayout] {
	return func(yield func(*VariableLayout) bool) {
		n := e.ParameterCount()
		for i := range n {
			if !yield(e.Parameter(i)) {
				return
			}
		}
	}
}

// Function returns the entry point's function declaration.
func (e *EntryPoint) Function() *Function {
	return newFunction(ptrOf("spReflectionEntryPoint_getFunction", e.Raw()))
}

// Function is a reflected function.
type Function struct{ ptr unsafe.Pointer }

func newFunction(p unsafe.Pointer) *Function {
	if p == nil {
		return nil
	}
	return &Function{ptr: p}
}

// NewFunction wraps a raw function reflection pointer. A nil pointer
// yields nil.
func NewFunction(p unsafe.Pointer) *Function {
	return newFunction(p)
}

// Raw returns the underlying pointer.
func (f *Function) Raw() unsafe.Pointer {
	if f == nil {
		return nil
	}
	return f.ptr
}

// Name returns the function's name.
func (f *Function) Name() string {
	return strOf("spReflectionFunction_GetName", f.Raw())
}

// ParameterCount returns the number of parameters.
func (f *Function) ParameterCount() uint32 {
	return u32Of("spReflectionFunction_GetParameterCount", f.Raw())
}

// Parameter returns parameter i, or nil when out of range.
func (f *Function) Parameter(i uint32) *Variable {
	if i >= f.ParameterCount() {
		return nil
	}
	return newVariable(ptrAt("spReflectionFunction_GetParameter", f.Raw(), i))
}

// ResultType returns the function's return type.
func (f *Function) ResultType() *Type {
	return newType(ptrOf("spReflectionFunction_GetResultType", f.Raw()))
}

// Decl is a node of a module's declaration tree.
type Decl struct{ ptr unsafe.Pointer }

// NewDecl wraps a raw declaration pointer. A nil pointer yields nil.
func NewDecl(p unsafe.Pointer) *Decl {
	if p == nil {
		return nil
	}
	return &Decl{ptr: p}
}

// Raw returns the underlying pointer.
func (d *Decl) Raw() unsafe.Pointer {
	if d == nil {
		return nil
	}
	return d.ptr
}

// Name returns the declaration's name.
func (d *Decl) Name() string {
	return strOf("spReflectionDecl_getName", d.Raw())
}

// Kind classifies the declaration.
func (d *Decl) Kind() DeclKind {
	return DeclKind(u32Of("spReflectionDecl_getKind", d.Raw()))
}

// ChildCount returns the number of child declarations.
func (d *Decl) ChildCount() uint32 {
	return u32Of("spReflectionDecl_getChildrenCount", d.Raw())
}

// Child returns child i, or nil when out of range.
func (d *Decl) Child(i uint32) *Decl {
	if i >= d.ChildCount() {
		return nil
	}
	return NewDecl(ptrAt("spReflectionDecl_getChild", d.Raw(), i))
}

// Children yields every child declaration.
func (d *Decl) Children() iter.Seq[*Decl] {
	return func(yield func(*Decl) bool) {
		n := d.ChildCount()
		for i := range n {
			if !yield(d.Child(i)) {
				return
			}
		}
	}
}
