package slang

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/internal/native"
	"github.com/wippyai/slang-bridge/reflection"
)

// IComponentType slots.
const (
	slotComponentGetSession                  native.Method = 3
	slotComponentGetLayout                   native.Method = 4
	slotComponentGetSpecializationParamCount native.Method = 5
	slotComponentGetEntryPointCode           native.Method = 6
	slotComponentGetEntryPointHash           native.Method = 8
	slotComponentLink                        native.Method = 10
	slotComponentRenameEntryPoint            native.Method = 12
	slotComponentLinkWithOptions             native.Method = 13
	slotComponentGetTargetCode               native.Method = 14
	slotComponentGetTargetMetadata           native.Method = 15
	slotComponentGetEntryPointMetadata       native.Method = 16
)

// IEntryPoint slots, following IComponentType.
const (
	slotEntryPointGetFunctionReflection native.Method = 17
)

// ComponentTyper is implemented by ComponentType and every type that embeds
// it.
type ComponentTyper interface {
	AsComponentType() *ComponentType
}

// ComponentType is a unit of code that can be composed, linked and
// compiled: a module, an entry point, a type conformance, or a composite.
type ComponentType struct {
	object
}

// ComponentTypeFromRaw wraps p, taking ownership of one reference.
func ComponentTypeFromRaw(p unsafe.Pointer) *ComponentType {
	if p == nil {
		return nil
	}
	c := &ComponentType{}
	c.init(p, "IComponentType")
	return c
}

// AsComponentType returns c itself.
func (c *ComponentType) AsComponentType() *ComponentType {
	return c
}

// Clone returns a second wrapper for the same component.
func (c *ComponentType) Clone() *ComponentType {
	p, err := c.base().retain(errors.PhaseRuntime)
	if err != nil {
		return nil
	}
	return ComponentTypeFromRaw(p)
}

// AsModule returns c as a Module when it is one.
func (c *ComponentType) AsModule() (*Module, bool) {
	m := ModuleFromRaw(c.base().query(native.IIDModule))
	return m, m != nil
}

// AsEntryPoint returns c as an EntryPoint when it is one.
func (c *ComponentType) AsEntryPoint() (*EntryPoint, bool) {
	e := EntryPointFromRaw(c.base().query(native.IIDEntryPoint))
	return e, e != nil
}

// AsTypeConformance returns c as a TypeConformance when it is one.
func (c *ComponentType) AsTypeConformance() (*TypeConformance, bool) {
	t := TypeConformanceFromRaw(c.base().query(native.IIDTypeConformance))
	return t, t != nil
}

// Session returns the session c belongs to.
func (c *ComponentType) Session() *Session {
	self, err := c.base().self(errors.PhaseRuntime)
	if err != nil {
		return nil
	}
	return SessionFromRaw(borrowed(native.CallPtr(self, slotComponentGetSession)))
}

// Layout returns the program layout for the target at index target. The
// layout is owned by c and valid while c is alive.
func (c *ComponentType) Layout(target int) (*reflection.ProgramLayout, error) {
	self, err := c.base().self(errors.PhaseLayout)
	if err != nil {
		return nil, err
	}
	var diag unsafe.Pointer
	p := native.CallPtrIP(self, slotComponentGetLayout, int64(target), unsafe.Pointer(&diag))
	if p == nil {
		return nil, &errors.DiagnosticError{Phase: errors.PhaseLayout, Code: errors.EFail, Diagnostics: takeDiagnostics(diag)}
	}
	if err := checkDiagnostics(errors.PhaseLayout, errors.OK, diag); err != nil {
		return nil, err
	}
	return reflection.NewProgramLayout(p), nil
}

// SpecializationParamCount returns the number of specialization parameters.
func (c *ComponentType) SpecializationParamCount() int {
	self, err := c.base().self(errors.PhaseRuntime)
	if err != nil {
		return 0
	}
	return int(native.CallInt(self, slotComponentGetSpecializationParamCount))
}

// Link resolves cross-module references. It must be called before code is
// requested.
func (c *ComponentType) Link() (*ComponentType, error) {
	self, err := c.base().self(errors.PhaseLink)
	if err != nil {
		return nil, err
	}
	var out, diag unsafe.Pointer
	r := native.CallStatusPP(self, slotComponentLink, unsafe.Pointer(&out), unsafe.Pointer(&diag))
	return linked(r, out, diag)
}

// LinkWithOptions is Link with additional compiler options.
func (c *ComponentType) LinkWithOptions(opts *CompilerOptions) (*ComponentType, error) {
	self, err := c.base().self(errors.PhaseLink)
	if err != nil {
		return nil, err
	}
	var arena native.Arena
	defer arena.Free()
	entries, n := arena.Options(opts.native())

	var out, diag unsafe.Pointer
	r := native.CallStatusPU32PP(self, slotComponentLinkWithOptions, unsafe.Pointer(&out), n, entries, unsafe.Pointer(&diag))
	return linked(r, out, diag)
}

func linked(r errors.Result, out, diag unsafe.Pointer) (*ComponentType, error) {
	if err := checkDiagnostics(errors.PhaseLink, r, diag); err != nil {
		if out != nil {
			native.Release(out)
		}
		return nil, err
	}
	if out == nil {
		return nil, errors.NilPointer(errors.PhaseLink, "IComponentType", "link")
	}
	Logger().Debug("component linked")
	return ComponentTypeFromRaw(out), nil
}

// RenameEntryPoint returns a copy of a single entry point component under
// a new name.
func (c *ComponentType) RenameEntryPoint(name string) (*ComponentType, error) {
	self, err := c.base().self(errors.PhaseCompose)
	if err != nil {
		return nil, err
	}
	var arena native.Arena
	defer arena.Free()

	var out unsafe.Pointer
	r := native.CallStatusPP(self, slotComponentRenameEntryPoint, arena.CString(name), unsafe.Pointer(&out))
	if err := errors.Check(errors.PhaseCompose, r); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.NilPointer(errors.PhaseCompose, "IComponentType", "renameEntryPoint")
	}
	return ComponentTypeFromRaw(out), nil
}

// TargetCode returns the code for the whole program on target.
func (c *ComponentType) TargetCode(target int) (*Blob, error) {
	self, err := c.base().self(errors.PhaseCodegen)
	if err != nil {
		return nil, err
	}
	var code, diag unsafe.Pointer
	r := native.CallStatusIPP(self, slotComponentGetTargetCode, int64(target), unsafe.Pointer(&code), unsafe.Pointer(&diag))
	return generated(r, code, diag, "getTargetCode")
}

// EntryPointCode returns the code for one entry point on target.
func (c *ComponentType) EntryPointCode(entryPoint, target int) (*Blob, error) {
	self, err := c.base().self(errors.PhaseCodegen)
	if err != nil {
		return nil, err
	}
	var code, diag unsafe.Pointer
	r := native.CallStatusIIPP(self, slotComponentGetEntryPointCode,
		int64(entryPoint), int64(target), unsafe.Pointer(&code), unsafe.Pointer(&diag))
	return generated(r, code, diag, "getEntryPointCode")
}

func generated(r errors.Result, code, diag unsafe.Pointer, method string) (*Blob, error) {
	if err := checkDiagnostics(errors.PhaseCodegen, r, diag); err != nil {
		if code != nil {
			native.Release(code)
		}
		return nil, err
	}
	if code == nil {
		return nil, errors.NilPointer(errors.PhaseCodegen, "IComponentType", method)
	}
	b := BlobFromRaw(code)
	Logger().Debug("code generated", zap.String("method", method), zap.Int("bytes", b.Len()))
	return b, nil
}

// EntryPointHash returns a hash identifying the code generated for one
// entry point on target.
func (c *ComponentType) EntryPointHash(entryPoint, target int) *Blob {
	self, err := c.base().self(errors.PhaseCodegen)
	if err != nil {
		return nil
	}
	var out unsafe.Pointer
	native.CallVoidIIP(self, slotComponentGetEntryPointHash, int64(entryPoint), int64(target), unsafe.Pointer(&out))
	return BlobFromRaw(out)
}

// TargetMetadata returns metadata for the whole program on target.
func (c *ComponentType) TargetMetadata(target int) (*Metadata, error) {
	self, err := c.base().self(errors.PhaseMetadata)
	if err != nil {
		return nil, err
	}
	var out, diag unsafe.Pointer
	r := native.CallStatusIPP(self, slotComponentGetTargetMetadata, int64(target), unsafe.Pointer(&out), unsafe.Pointer(&diag))
	return metadataResult(r, out, diag)
}

// EntryPointMetadata returns metadata for one entry point on target.
func (c *ComponentType) EntryPointMetadata(entryPoint, target int) (*Metadata, error) {
	self, err := c.base().self(errors.PhaseMetadata)
	if err != nil {
		return nil, err
	}
	var out, diag unsafe.Pointer
	r := native.CallStatusIIPP(self, slotComponentGetEntryPointMetadata,
		int64(entryPoint), int64(target), unsafe.Pointer(&out), unsafe.Pointer(&diag))
	return metadataResult(r, out, diag)
}

func metadataResult(r errors.Result, out, diag unsafe.Pointer) (*Metadata, error) {
	if err := checkDiagnostics(errors.PhaseMetadata, r, diag); err != nil {
		if out != nil {
			native.Release(out)
		}
		return nil, err
	}
	if out == nil {
		return nil, errors.NilPointer(errors.PhaseMetadata, "IComponentType", "getTargetMetadata")
	}
	return MetadataFromRaw(out), nil
}

// EntryPoint is a component for a single shader entry point.
type EntryPoint struct {
	ComponentType
}

// EntryPointFromRaw wraps p, taking ownership of one reference.
func EntryPointFromRaw(p unsafe.Pointer) *EntryPoint {
	if p == nil {
		return nil
	}
	e := &EntryPoint{}
	e.init(p, "IEntryPoint")
	return e
}

// AsComponentType returns the entry point's ComponentType view.
func (e *EntryPoint) AsComponentType() *ComponentType {
	if e == nil {
		return nil
	}
	return &e.ComponentType
}

// Clone returns a second wrapper for the same entry point.
func (e *EntryPoint) Clone() *EntryPoint {
	p, err := e.base().retain(errors.PhaseRuntime)
	if err != nil {
		return nil
	}
	return EntryPointFromRaw(p)
}

// FunctionReflection returns the entry point's function declaration.
func (e *EntryPoint) FunctionReflection() *reflection.Function {
	self, err := e.base().self(errors.PhaseReflect)
	if err != nil {
		return nil
	}
	return reflection.NewFunction(native.CallPtr(self, slotEntryPointGetFunctionReflection))
}

// TypeConformance is a component asserting that a type implements an
// interface.
type TypeConformance struct {
	ComponentType
}

// TypeConformanceFromRaw wraps p, taking ownership of one reference.
func TypeConformanceFromRaw(p unsafe.Pointer) *TypeConformance {
	if p == nil {
		return nil
	}
	t := &TypeConformance{}
	t.init(p, "ITypeConformance")
	return t
}

// AsComponentType returns the conformance's ComponentType view.
func (t *TypeConformance) AsComponentType() *ComponentType {
	if t == nil {
		return nil
	}
	return &t.ComponentType
}

// Clone returns a second wrapper for the same conformance.
func (t *TypeConformance) Clone() *TypeConformance {
	p, err := t.base().retain(errors.PhaseRuntime)
	if err != nil {
		return nil
	}
	return TypeConformanceFromRaw(p)
}
