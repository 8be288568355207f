package native

/*
#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/slang-bridge/errors"
)

// Flat-function shims. fn is a symbol resolved from the library; a nil fn
// is the caller's responsibility to check.

// FCallStatusIP calls result(int64_t, void*).
func FCallStatusIP(fn unsafe.Pointer, a int64, b unsafe.Pointer) errors.Result {
	return errors.Result(C.sb_fcall_status_ip(fn, C.int64_t(a), b))
}

// FCallP calls void*(const void*).
func FCallP(fn, a unsafe.Pointer) unsafe.Pointer {
	return C.sb_fcall_p_p(fn, a)
}

// FCallPP calls void*(const void*, const void*).
func FCallPP(fn, a, b unsafe.Pointer) unsafe.Pointer {
	return C.sb_fcall_p_pp(fn, a, b)
}

// FCallPPP calls void*(const void*, const void*, const void*).
func FCallPPP(fn, a, b, c unsafe.Pointer) unsafe.Pointer {
	return C.sb_fcall_p_ppp(fn, a, b, c)
}

// FCallPU32 calls void*(const void*, uint32_t).
func FCallPU32(fn, a unsafe.Pointer, b uint32) unsafe.Pointer {
	return C.sb_fcall_p_pu32(fn, a, C.uint32_t(b))
}

// FCallPU64 calls void*(const void*, uint64_t).
func FCallPU64(fn, a unsafe.Pointer, b uint64) unsafe.Pointer {
	return C.sb_fcall_p_pu64(fn, a, C.uint64_t(b))
}

// FCallPPU32 calls void*(const void*, const void*, uint32_t).
func FCallPPU32(fn, a, b unsafe.Pointer, c uint32) unsafe.Pointer {
	return C.sb_fcall_p_ppu32(fn, a, b, C.uint32_t(c))
}

// FCallPU64N calls void*(const void*, uint64_t, size_t*) and returns the
// pointer with the length written through the last argument.
func FCallPU64N(fn, a unsafe.Pointer, b uint64) (unsafe.Pointer, int) {
	var n C.size_t
	p := C.sb_fcall_p_pu64p(fn, a, C.uint64_t(b), &n)
	return p, int(n)
}

// FCallU32 calls uint32_t(const void*).
func FCallU32(fn, a unsafe.Pointer) uint32 {
	return uint32(C.sb_fcall_u32_p(fn, a))
}

// FCallU64 calls uint64_t(const void*).
func FCallU64(fn, a unsafe.Pointer) uint64 {
	return uint64(C.sb_fcall_u64_p(fn, a))
}

// FCallU64U32 calls uint64_t(const void*, uint32_t).
func FCallU64U32(fn, a unsafe.Pointer, b uint32) uint64 {
	return uint64(C.sb_fcall_u64_pu32(fn, a, C.uint32_t(b)))
}

// FCallU32U64 calls uint32_t(const void*, uint64_t).
func FCallU32U64(fn, a unsafe.Pointer, b uint64) uint32 {
	return uint32(C.sb_fcall_u32_pu64(fn, a, C.uint64_t(b)))
}
