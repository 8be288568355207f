package slang

import (
	"sync/atomic"
	"unsafe"

	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/internal/native"
)

// Object is implemented by every wrapper around a native object.
type Object interface {
	Raw() unsafe.Pointer
	IsNil() bool
	Release()
}

// object owns exactly one reference to a native object. The reference is
// given back by Release, at most once.
type object struct {
	ptr      unsafe.Pointer
	iface    string
	released atomic.Bool
}

func (o *object) init(p unsafe.Pointer, iface string) {
	o.ptr = p
	o.iface = iface
}

// Raw returns the native object pointer. It stays valid until Release.
func (o *object) Raw() unsafe.Pointer {
	if o == nil {
		return nil
	}
	return o.ptr
}

// IsNil reports whether the wrapper holds no object.
func (o *object) IsNil() bool {
	return o == nil || o.ptr == nil
}

// Release gives back the wrapper's reference. Later calls do nothing.
func (o *object) Release() {
	if o == nil || o.ptr == nil {
		return
	}
	if !o.released.CompareAndSwap(false, true) {
		return
	}
	native.Release(o.ptr)
}

// self returns the live pointer or an error naming the phase that tried to
// use a released or empty wrapper.
func (o *object) self(phase errors.Phase) (unsafe.Pointer, error) {
	if o == nil || o.ptr == nil {
		return nil, errors.NilPointer(phase, o.name(), "")
	}
	if o.released.Load() {
		return nil, errors.Released(phase, o.name())
	}
	return o.ptr, nil
}

// retain adds a reference for a new wrapper of the same object.
func (o *object) retain(phase errors.Phase) (unsafe.Pointer, error) {
	p, err := o.self(phase)
	if err != nil {
		return nil, err
	}
	native.AddRef(p)
	return p, nil
}

func (o *object) name() string {
	if o == nil || o.iface == "" {
		return "IUnknown"
	}
	return o.iface
}

// query returns the object's iid interface with one new reference, or nil.
func (o *object) query(iid native.IID) unsafe.Pointer {
	p, err := o.self(errors.PhaseRuntime)
	if err != nil {
		return nil
	}
	out, r := native.QueryInterface(p, iid)
	if r.Failed() {
		return nil
	}
	return out
}

// The methods below shadow the promoted object methods so that they also
// work on nil wrappers, which several lookups return for absence.

func (b *Blob) base() *object {
	if b == nil {
		return nil
	}
	return &b.object
}

// Raw returns the native object pointer, or nil.
func (b *Blob) Raw() unsafe.Pointer { return b.base().Raw() }

// IsNil reports whether b holds no object.
func (b *Blob) IsNil() bool { return b.base().IsNil() }

// Release gives back b's reference. It is a no-op on nil.
func (b *Blob) Release() { b.base().Release() }

func (g *GlobalSession) base() *object {
	if g == nil {
		return nil
	}
	return &g.object
}

// Raw returns the native object pointer, or nil.
func (g *GlobalSession) Raw() unsafe.Pointer { return g.base().Raw() }

// IsNil reports whether g holds no object.
func (g *GlobalSession) IsNil() bool { return g.base().IsNil() }

// Release gives back g's reference. It is a no-op on nil.
func (g *GlobalSession) Release() { g.base().Release() }

func (s *Session) base() *object {
	if s == nil {
		return nil
	}
	return &s.object
}

// Raw returns the native object pointer, or nil.
func (s *Session) Raw() unsafe.Pointer { return s.base().Raw() }

// IsNil reports whether s holds no object.
func (s *Session) IsNil() bool { return s.base().IsNil() }

func (m *Metadata) base() *object {
	if m == nil {
		return nil
	}
	return &m.object
}

// Raw returns the native object pointer, or nil.
func (m *Metadata) Raw() unsafe.Pointer { return m.base().Raw() }

// IsNil reports whether m holds no object.
func (m *Metadata) IsNil() bool { return m.base().IsNil() }

// Release gives back m's reference. It is a no-op on nil.
func (m *Metadata) Release() { m.base().Release() }

func (c *ComponentType) base() *object {
	if c == nil {
		return nil
	}
	return &c.object
}

// Raw returns the native object pointer, or nil.
func (c *ComponentType) Raw() unsafe.Pointer { return c.base().Raw() }

// IsNil reports whether c holds no object.
func (c *ComponentType) IsNil() bool { return c.base().IsNil() }

// Release gives back c's reference. It is a no-op on nil.
func (c *ComponentType) Release() { c.base().Release() }

func (m *Module) base() *object { return m.AsComponentType().base() }

// Raw returns the native object pointer, or nil.
func (m *Module) Raw() unsafe.Pointer { return m.base().Raw() }

// IsNil reports whether m holds no object.
func (m *Module) IsNil() bool { return m.base().IsNil() }

// Release gives back m's reference. It is a no-op on nil.
func (m *Module) Release() { m.base().Release() }

func (e *EntryPoint) base() *object { return e.AsComponentType().base() }

// Raw returns the native object pointer, or nil.
func (e *EntryPoint) Raw() unsafe.Pointer { return e.base().Raw() }

// IsNil reports whether e holds no object.
func (e *EntryPoint) IsNil() bool { return e.base().IsNil() }

// Release gives back e's reference. It is a no-op on nil.
func (e *EntryPoint) Release() { e.base().Release() }

func (t *TypeConformance) base() *object { return t.AsComponentType().base() }

// Raw returns the native object pointer, or nil.
func (t *TypeConformance) Raw() unsafe.Pointer { return t.base().Raw() }

// IsNil reports whether t holds no object.
func (t *TypeConformance) IsNil() bool { return t.base().IsNil() }

// Release gives back t's reference. It is a no-op on nil.
func (t *TypeConformance) Release() { t.base().Release() }
