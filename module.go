package slang

import (
	"iter"
	"unsafe"

	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/internal/native"
	"github.com/wippyai/slang-bridge/reflection"
)

// IModule slots, following IComponentType.
const (
	slotModuleFindEntryPointByName      native.Method = 17
	slotModuleGetDefinedEntryPointCount native.Method = 18
	slotModuleGetDefinedEntryPoint      native.Method = 19
	slotModuleSerialize                 native.Method = 20
	slotModuleWriteToFile               native.Method = 21
	slotModuleGetName                   native.Method = 22
	slotModuleGetFilePath               native.Method = 23
	slotModuleGetUniqueIdentity         native.Method = 24
	slotModuleFindAndCheckEntryPoint    native.Method = 25
	slotModuleGetDependencyFileCount    native.Method = 26
	slotModuleGetDependencyFilePath     native.Method = 27
	slotModuleGetModuleReflection       native.Method = 28
	slotModuleDisassemble               native.Method = 29
)

// Module is a loaded source or binary module.
type Module struct {
	ComponentType
}

// ModuleFromRaw wraps p, taking ownership of one reference.
func ModuleFromRaw(p unsafe.Pointer) *Module {
	if p == nil {
		return nil
	}
	m := &Module{}
	m.init(p, "IModule")
	return m
}

// AsComponentType returns the module's ComponentType view.
func (m *Module) AsComponentType() *ComponentType {
	if m == nil {
		return nil
	}
	return &m.ComponentType
}

// Clone returns a second wrapper for the same module.
func (m *Module) Clone() *Module {
	p, err := m.base().retain(errors.PhaseModule)
	if err != nil {
		return nil
	}
	return ModuleFromRaw(p)
}

// FindEntryPointByName returns the entry point declared with name, or nil.
// Only functions marked with a stage attribute are found.
func (m *Module) FindEntryPointByName(name string) *EntryPoint {
	self, err := m.base().self(errors.PhaseModule)
	if err != nil {
		return nil
	}
	var arena native.Arena
	defer arena.Free()

	var out unsafe.Pointer
	r := native.CallStatusPP(self, slotModuleFindEntryPointByName, arena.CString(name), unsafe.Pointer(&out))
	if r.Failed() {
		return nil
	}
	return EntryPointFromRaw(out)
}

// FindAndCheckEntryPoint finds name and checks it as an entry point for
// stage, which also works for functions without a stage attribute.
func (m *Module) FindAndCheckEntryPoint(name string, stage Stage) (*EntryPoint, error) {
	self, err := m.base().self(errors.PhaseModule)
	if err != nil {
		return nil, err
	}
	var arena native.Arena
	defer arena.Free()

	var out, diag unsafe.Pointer
	r := native.CallStatusPI32PP(self, slotModuleFindAndCheckEntryPoint,
		arena.CString(name), int32(stage), unsafe.Pointer(&out), unsafe.Pointer(&diag))
	if err := checkDiagnostics(errors.PhaseModule, r, diag); err != nil {
		if out != nil {
			native.Release(out)
		}
		return nil, err
	}
	if out == nil {
		return nil, errors.NotFound(errors.PhaseModule, "entry point", name)
	}
	return EntryPointFromRaw(out), nil
}

// EntryPointCount returns the number of entry points declared in m.
func (m *Module) EntryPointCount() int {
	self, err := m.base().self(errors.PhaseModule)
	if err != nil {
		return 0
	}
	return int(native.CallInt32(self, slotModuleGetDefinedEntryPointCount))
}

// EntryPointByIndex returns the i-th declared entry point.
func (m *Module) EntryPointByIndex(i int) (*EntryPoint, error) {
	self, err := m.base().self(errors.PhaseModule)
	if err != nil {
		return nil, err
	}
	var out unsafe.Pointer
	r := native.CallStatusI32P(self, slotModuleGetDefinedEntryPoint, int32(i), unsafe.Pointer(&out))
	if err := errors.Check(errors.PhaseModule, r); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.OutOfBounds(errors.PhaseModule, []string{"entry-points"}, i, m.EntryPointCount())
	}
	return EntryPointFromRaw(out), nil
}

// EntryPoints yields every declared entry point in order. Each step calls
// into the library; nothing is cached, so the sequence may be restarted.
// The caller releases each entry point.
func (m *Module) EntryPoints() iter.Seq2[*EntryPoint, error] {
	return func(yield func(*EntryPoint, error) bool) {
		n := m.EntryPointCount()
		for i := range n {
			if !yield(m.EntryPointByIndex(i)) {
				return
			}
		}
	}
}

// Serialize returns the module in binary form.
func (m *Module) Serialize() (*Blob, error) {
	return m.blobCall(slotModuleSerialize, "serialize")
}

// Disassemble returns a textual rendering of the module's IR.
func (m *Module) Disassemble() (*Blob, error) {
	return m.blobCall(slotModuleDisassemble, "disassemble")
}

func (m *Module) blobCall(slot native.Method, method string) (*Blob, error) {
	self, err := m.base().self(errors.PhaseModule)
	if err != nil {
		return nil, err
	}
	var out unsafe.Pointer
	if err := errors.Check(errors.PhaseModule, native.CallStatusP(self, slot, unsafe.Pointer(&out))); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.NilPointer(errors.PhaseModule, "IModule", method)
	}
	return BlobFromRaw(out), nil
}

// WriteToFile serializes the module to path.
func (m *Module) WriteToFile(path string) error {
	self, err := m.base().self(errors.PhaseModule)
	if err != nil {
		return err
	}
	var arena native.Arena
	defer arena.Free()
	return errors.Check(errors.PhaseModule, native.CallStatusP(self, slotModuleWriteToFile, arena.CString(path)))
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.stringCall(slotModuleGetName)
}

// FilePath returns the path the module was loaded from.
func (m *Module) FilePath() string {
	return m.stringCall(slotModuleGetFilePath)
}

// UniqueIdentity returns a string that identifies the module within its
// session.
func (m *Module) UniqueIdentity() string {
	return m.stringCall(slotModuleGetUniqueIdentity)
}

func (m *Module) stringCall(slot native.Method) string {
	self, err := m.base().self(errors.PhaseModule)
	if err != nil {
		return ""
	}
	return native.GoString(native.CallPtr(self, slot))
}

// DependencyFileCount returns the number of files m was built from.
func (m *Module) DependencyFileCount() int {
	self, err := m.base().self(errors.PhaseModule)
	if err != nil {
		return 0
	}
	return int(native.CallInt32(self, slotModuleGetDependencyFileCount))
}

// DependencyFilePath returns the i-th dependency path.
func (m *Module) DependencyFilePath(i int) string {
	self, err := m.base().self(errors.PhaseModule)
	if err != nil || i < 0 {
		return ""
	}
	return native.GoString(native.CallPtrI32(self, slotModuleGetDependencyFilePath, int32(i)))
}

// DependencyFilePaths yields every dependency path in order.
func (m *Module) DependencyFilePaths() iter.Seq[string] {
	return func(yield func(string) bool) {
		n := m.DependencyFileCount()
		for i := range n {
			if !yield(m.DependencyFilePath(i)) {
				return
			}
		}
	}
}

// ModuleReflection returns the module's declaration tree.
func (m *Module) ModuleReflection() *reflection.Decl {
	self, err := m.base().self(errors.PhaseReflect)
	if err != nil {
		return nil
	}
	return reflection.NewDecl(native.CallPtr(self, slotModuleGetModuleReflection))
}
