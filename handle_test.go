package slang

import (
	"testing"

	"github.com/wippyai/slang-bridge/errors"
)

func TestWidening(t *testing.T) {
	m := &Module{}
	if m.AsComponentType() != &m.ComponentType {
		t.Error("Module.AsComponentType() should return the embedded base")
	}
	e := &EntryPoint{}
	if e.AsComponentType() != &e.ComponentType {
		t.Error("EntryPoint.AsComponentType() should return the embedded base")
	}
	tc := &TypeConformance{}
	if tc.AsComponentType() != &tc.ComponentType {
		t.Error("TypeConformance.AsComponentType() should return the embedded base")
	}
	c := &ComponentType{}
	if c.AsComponentType() != c {
		t.Error("ComponentType.AsComponentType() should return itself")
	}

	var nilModule *Module
	if nilModule.AsComponentType() != nil {
		t.Error("nil module should widen to nil")
	}

	var _ ComponentTyper = m
	var _ ComponentTyper = e
	var _ ComponentTyper = tc
	var _ Object = m
	var _ Object = (*Blob)(nil)
	var _ Object = (*Session)(nil)
	var _ Object = (*GlobalSession)(nil)
	var _ Object = (*Metadata)(nil)
}

func TestFromRawNil(t *testing.T) {
	if BlobFromRaw(nil) != nil ||
		GlobalSessionFromRaw(nil) != nil ||
		SessionFromRaw(nil) != nil ||
		ComponentTypeFromRaw(nil) != nil ||
		EntryPointFromRaw(nil) != nil ||
		TypeConformanceFromRaw(nil) != nil ||
		ModuleFromRaw(nil) != nil ||
		MetadataFromRaw(nil) != nil {
		t.Error("wrapping nil should yield nil")
	}
}

func TestEmptyWrappers(t *testing.T) {
	m := &Module{}
	if _, ok := m.AsEntryPoint(); ok {
		t.Error("empty module narrowed")
	}
	if m.Name() != "" || m.EntryPointCount() != 0 || m.FindEntryPointByName("main") != nil {
		t.Error("empty module should answer empty")
	}
	if _, err := m.Link(); !errors.Is(err, errors.EPointer) {
		t.Errorf("Link on empty module error = %v", err)
	}
	for ep := range m.EntryPoints() {
		t.Errorf("empty module yielded %v", ep)
	}

	s := &Session{}
	_, err := s.LoadModule("a")
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindNilPointer || e.Phase != errors.PhaseModule {
		t.Errorf("LoadModule on empty session error = %v", err)
	}
	s.Release()

	g := &GlobalSession{}
	if _, err := g.CreateSession(nil); err == nil {
		t.Error("CreateSession on empty global session should fail")
	}
	if g.FindProfile("sm_6_0") != ProfileUnknown {
		t.Error("FindProfile on empty global session")
	}
	if g.BuildTagString() != "" || g.Version() != "" {
		t.Error("empty global session reported a version")
	}

	md := &Metadata{}
	if used, ok := md.IsParameterLocationUsed(0, 0, 0); used || ok {
		t.Error("empty metadata answered")
	}
}

func TestCreateComposite_RejectsNilComponent(t *testing.T) {
	// A live session pointer is never dereferenced when argument checks fail.
	s := SessionFromRaw(NewBlobString("stand-in").Raw())
	defer s.Release()

	tests := []struct {
		name string
		arg  ComponentTyper
	}{
		{"untyped nil", nil},
		{"typed nil", (*Module)(nil)},
		{"empty", &EntryPoint{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateCompositeComponentType(tt.arg)
			var e *errors.Error
			if !errors.As(err, &e) || e.Kind != errors.KindNilPointer || e.Phase != errors.PhaseCompose {
				t.Errorf("error = %v, want compose nil pointer", err)
			}
		})
	}
}

func TestNilWrappers(t *testing.T) {
	wrappers := map[string]Object{
		"Blob":            (*Blob)(nil),
		"GlobalSession":   (*GlobalSession)(nil),
		"Session":         (*Session)(nil),
		"ComponentType":   (*ComponentType)(nil),
		"Module":          (*Module)(nil),
		"EntryPoint":      (*EntryPoint)(nil),
		"TypeConformance": (*TypeConformance)(nil),
		"Metadata":        (*Metadata)(nil),
	}
	for name, w := range wrappers {
		t.Run(name, func(t *testing.T) {
			if !w.IsNil() {
				t.Error("IsNil() = false on nil wrapper")
			}
			if w.Raw() != nil {
				t.Error("Raw() != nil on nil wrapper")
			}
			w.Release()
			w.Release()
		})
	}

	var b *Blob
	if b.Len() != 0 || b.Bytes() != nil || b.Clone() != nil {
		t.Error("nil blob should be empty")
	}
	if text, err := b.Text(); text != "" || err != nil {
		t.Errorf("nil blob Text() = %q, %v", text, err)
	}

	var e *EntryPoint
	defer e.Release()
	if e.Clone() != nil || e.FunctionReflection() != nil {
		t.Error("nil entry point should yield nil")
	}

	var m *Module
	if m.Name() != "" || m.EntryPointCount() != 0 || m.FindEntryPointByName("main") != nil {
		t.Error("nil module should be empty")
	}

	var md *Metadata
	if _, ok := md.IsParameterLocationUsed(0, 0, 0); ok {
		t.Error("nil metadata answered a location query")
	}
}
