package reflection

import (
	"unsafe"

	"github.com/wippyai/slang-bridge/internal/native"
)

// Helpers over the flat reflection API. A missing symbol or a nil receiver
// yields the zero value, which callers report as absence.

func ptrOf(sym string, self unsafe.Pointer) unsafe.Pointer {
	f := native.MustSym(sym)
	if f == nil || self == nil {
		return nil
	}
	return native.FCallP(f, self)
}

func ptrAt(sym string, self unsafe.Pointer, i uint32) unsafe.Pointer {
	f := native.MustSym(sym)
	if f == nil || self == nil {
		return nil
	}
	return native.FCallPU32(f, self, i)
}

func ptrAt64(sym string, self unsafe.Pointer, i uint64) unsafe.Pointer {
	f := native.MustSym(sym)
	if f == nil || self == nil {
		return nil
	}
	return native.FCallPU64(f, self, i)
}

func ptrByName(sym string, self unsafe.Pointer, name string) unsafe.Pointer {
	f := native.MustSym(sym)
	if f == nil || self == nil {
		return nil
	}
	var a native.Arena
	defer a.Free()
	return native.FCallPP(f, self, a.CString(name))
}

func u32Of(sym string, self unsafe.Pointer) uint32 {
	f := native.MustSym(sym)
	if f == nil || self == nil {
		return 0
	}
	return native.FCallU32(f, self)
}

func u64Of(sym string, self unsafe.Pointer) uint64 {
	f := native.MustSym(sym)
	if f == nil || self == nil {
		return 0
	}
	return native.FCallU64(f, self)
}

func u64At(sym string, self unsafe.Pointer, i uint32) uint64 {
	f := native.MustSym(sym)
	if f == nil || self == nil {
		return 0
	}
	return native.FCallU64U32(f, self, i)
}

func strOf(sym string, self unsafe.Pointer) string {
	return native.GoString(ptrOf(sym, self))
}
