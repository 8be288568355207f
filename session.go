package slang

import (
	"iter"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/internal/native"
	"github.com/wippyai/slang-bridge/reflection"
)

// ISession slots.
const (
	slotSessionGetGlobalSession                   native.Method = 3
	slotSessionLoadModule                         native.Method = 4
	slotSessionLoadModuleFromSource               native.Method = 5
	slotSessionCreateCompositeComponentType       native.Method = 6
	slotSessionCreateTypeConformanceComponentType native.Method = 15
	slotSessionGetLoadedModuleCount               native.Method = 17
	slotSessionGetLoadedModule                    native.Method = 18
	slotSessionIsBinaryModuleUpToDate             native.Method = 19
	slotSessionLoadModuleFromSourceString         native.Method = 20
)

// Session is a compilation scope with fixed targets, search paths and
// options. A session must not be used from several goroutines at once.
type Session struct {
	object
	fs unsafe.Pointer
}

// SessionFromRaw wraps p, taking ownership of one reference.
func SessionFromRaw(p unsafe.Pointer) *Session {
	if p == nil {
		return nil
	}
	s := &Session{}
	s.init(p, "ISession")
	return s
}

// Release gives back the session reference and the file system reference
// held for it.
func (s *Session) Release() {
	if s == nil || s.ptr == nil || !s.released.CompareAndSwap(false, true) {
		return
	}
	native.Release(s.ptr)
	if s.fs != nil {
		native.Release(s.fs)
	}
}

// Clone returns a second wrapper for the same session.
func (s *Session) Clone() *Session {
	p, err := s.base().retain(errors.PhaseSession)
	if err != nil {
		return nil
	}
	c := SessionFromRaw(p)
	if s.fs != nil {
		native.AddRef(s.fs)
		c.fs = s.fs
	}
	return c
}

// GlobalSession returns the global session that created s.
func (s *Session) GlobalSession() *GlobalSession {
	self, err := s.base().self(errors.PhaseSession)
	if err != nil {
		return nil
	}
	return GlobalSessionFromRaw(borrowed(native.CallPtr(self, slotSessionGetGlobalSession)))
}

// LoadModule loads a module by name through the session's search paths and
// file system. A module already loaded is returned again.
func (s *Session) LoadModule(name string) (*Module, error) {
	self, err := s.base().self(errors.PhaseModule)
	if err != nil {
		return nil, err
	}
	var arena native.Arena
	defer arena.Free()

	var diag unsafe.Pointer
	p := native.CallPtrPP(self, slotSessionLoadModule, arena.CString(name), unsafe.Pointer(&diag))
	return s.loaded(name, p, diag)
}

// LoadModuleFromSource compiles source as a module named name, reporting
// path in diagnostics.
func (s *Session) LoadModuleFromSource(name, path string, source []byte) (*Module, error) {
	self, err := s.base().self(errors.PhaseModule)
	if err != nil {
		return nil, err
	}
	var arena native.Arena
	defer arena.Free()

	blob := NewBlob(source)
	defer blob.Release()

	var diag unsafe.Pointer
	p := native.CallPtrPPPP(self, slotSessionLoadModuleFromSource,
		arena.CString(name), arena.CString(path), blob.Raw(), unsafe.Pointer(&diag))
	return s.loaded(name, p, diag)
}

// LoadModuleFromSourceString is LoadModuleFromSource for a string.
func (s *Session) LoadModuleFromSourceString(name, path, source string) (*Module, error) {
	self, err := s.base().self(errors.PhaseModule)
	if err != nil {
		return nil, err
	}
	var arena native.Arena
	defer arena.Free()

	var diag unsafe.Pointer
	p := native.CallPtrPPPP(self, slotSessionLoadModuleFromSourceString,
		arena.CString(name), arena.CString(path), arena.CString(source), unsafe.Pointer(&diag))
	return s.loaded(name, p, diag)
}

// loaded wraps the borrowed module pointer returned by a load call.
func (s *Session) loaded(name string, p, diag unsafe.Pointer) (*Module, error) {
	if p == nil {
		d := takeDiagnostics(diag)
		Logger().Debug("module load failed", zap.String("module", name))
		return nil, &errors.DiagnosticError{Phase: errors.PhaseModule, Code: errors.EFail, Diagnostics: d}
	}
	if err := checkDiagnostics(errors.PhaseModule, errors.OK, diag); err != nil {
		return nil, err
	}
	m := ModuleFromRaw(borrowed(p))
	Logger().Debug("module loaded", zap.String("module", name))
	return m, nil
}

// CreateCompositeComponentType combines components into one linkable unit.
func (s *Session) CreateCompositeComponentType(components ...ComponentTyper) (*ComponentType, error) {
	self, err := s.base().self(errors.PhaseCompose)
	if err != nil {
		return nil, err
	}
	ptrs := make([]unsafe.Pointer, 0, len(components))
	for i, c := range components {
		var ct *ComponentType
		if c != nil {
			ct = c.AsComponentType()
		}
		if ct == nil || ct.IsNil() {
			return nil, errors.New(errors.PhaseCompose, errors.KindNilPointer).
				Detail("component %d is nil", i).
				Code(errors.EPointer).
				Build()
		}
		p, err := ct.base().self(errors.PhaseCompose)
		if err != nil {
			return nil, err
		}
		ptrs = append(ptrs, p)
	}

	var arena native.Arena
	defer arena.Free()

	var out, diag unsafe.Pointer
	r := native.CallStatusPIPP(self, slotSessionCreateCompositeComponentType,
		arena.Pointers(ptrs), int64(len(ptrs)), unsafe.Pointer(&out), unsafe.Pointer(&diag))
	if err := checkDiagnostics(errors.PhaseCompose, r, diag); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.NilPointer(errors.PhaseCompose, "ISession", "createCompositeComponentType")
	}
	Logger().Debug("composite created", zap.Int("components", len(ptrs)))
	return ComponentTypeFromRaw(out), nil
}

// CreateTypeConformanceComponentType creates a component asserting that typ
// conforms to iface. idOverride fixes the conformance id; -1 lets the
// compiler choose.
func (s *Session) CreateTypeConformanceComponentType(typ, iface *reflection.Type, idOverride int64) (*TypeConformance, error) {
	self, err := s.base().self(errors.PhaseCompose)
	if err != nil {
		return nil, err
	}
	if typ.Raw() == nil || iface.Raw() == nil {
		return nil, errors.InvalidInput(errors.PhaseCompose, "type and interface are required")
	}

	var out, diag unsafe.Pointer
	r := native.CallStatusPPPIP(self, slotSessionCreateTypeConformanceComponentType,
		typ.Raw(), iface.Raw(), unsafe.Pointer(&out), idOverride, unsafe.Pointer(&diag))
	if err := checkDiagnostics(errors.PhaseCompose, r, diag); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.NilPointer(errors.PhaseCompose, "ISession", "createTypeConformanceComponentType")
	}
	return TypeConformanceFromRaw(out), nil
}

// LoadedModuleCount returns the number of modules loaded into s.
func (s *Session) LoadedModuleCount() int {
	self, err := s.base().self(errors.PhaseSession)
	if err != nil {
		return 0
	}
	return int(native.CallInt(self, slotSessionGetLoadedModuleCount))
}

// LoadedModule returns the i-th loaded module, or nil.
func (s *Session) LoadedModule(i int) *Module {
	self, err := s.base().self(errors.PhaseSession)
	if err != nil || i < 0 {
		return nil
	}
	return ModuleFromRaw(borrowed(native.CallPtrI(self, slotSessionGetLoadedModule, int64(i))))
}

// LoadedModules yields every loaded module. The caller releases each one.
func (s *Session) LoadedModules() iter.Seq[*Module] {
	return func(yield func(*Module) bool) {
		n := s.LoadedModuleCount()
		for i := range n {
			m := s.LoadedModule(i)
			if m == nil {
				continue
			}
			if !yield(m) {
				return
			}
		}
	}
}

// IsBinaryModuleUpToDate reports whether the serialized module in blob,
// stored at path, is current with respect to its sources.
func (s *Session) IsBinaryModuleUpToDate(path string, blob *Blob) bool {
	self, err := s.base().self(errors.PhaseModule)
	if err != nil || blob == nil || blob.IsNil() {
		return false
	}
	var arena native.Arena
	defer arena.Free()
	return native.CallBoolPP(self, slotSessionIsBinaryModuleUpToDate, arena.CString(path), blob.Raw())
}

// borrowed adds the reference a wrapper needs around a pointer the callee
// did not add one for.
func borrowed(p unsafe.Pointer) unsafe.Pointer {
	if p != nil {
		native.AddRef(p)
	}
	return p
}
