package native

/*
#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/slang-bridge/errors"
)

// Method is a zero-based vtable slot index.
type Method uintptr

// Slots shared by every interface.
const (
	SlotQueryInterface Method = 0
	SlotAddRef         Method = 1
	SlotRelease        Method = 2
)

const ptrSize = unsafe.Sizeof(uintptr(0))

// Slot returns the function pointer stored at slot m of obj's vtable.
// The vtable pointer is the first word of every object.
func Slot(obj unsafe.Pointer, m Method) unsafe.Pointer {
	vtbl := *(*unsafe.Pointer)(obj)
	return *(*unsafe.Pointer)(unsafe.Add(vtbl, uintptr(m)*ptrSize))
}

// AddRef increments obj's reference count.
func AddRef(obj unsafe.Pointer) uint32 {
	return CallRef(obj, SlotAddRef)
}

// Release decrements obj's reference count.
func Release(obj unsafe.Pointer) uint32 {
	return CallRef(obj, SlotRelease)
}

// QueryInterface asks obj for the interface iid. On success the result
// carries one new reference.
func QueryInterface(obj unsafe.Pointer, iid IID) (unsafe.Pointer, errors.Result) {
	var out unsafe.Pointer
	r := CallStatusPP(obj, SlotQueryInterface, iid.ptr(), unsafe.Pointer(&out))
	if r.Failed() {
		return nil, r
	}
	return out, r
}

// CallRef calls uint32_t(self).
func CallRef(obj unsafe.Pointer, m Method) uint32 {
	return uint32(C.sb_call_ref(Slot(obj, m), obj))
}

// CallPtr calls void*(self).
func CallPtr(obj unsafe.Pointer, m Method) unsafe.Pointer {
	return C.sb_call_ptr(Slot(obj, m), obj)
}

// CallSize calls size_t(self).
func CallSize(obj unsafe.Pointer, m Method) uintptr {
	return uintptr(C.sb_call_size(Slot(obj, m), obj))
}

// CallInt calls int64_t(self).
func CallInt(obj unsafe.Pointer, m Method) int64 {
	return int64(C.sb_call_int(Slot(obj, m), obj))
}

// CallInt32 calls int32_t(self).
func CallInt32(obj unsafe.Pointer, m Method) int32 {
	return int32(C.sb_call_int32(Slot(obj, m), obj))
}

// CallStatusP calls result(self, void*).
func CallStatusP(obj unsafe.Pointer, m Method, a unsafe.Pointer) errors.Result {
	return errors.Result(C.sb_call_status_p(Slot(obj, m), obj, a))
}

// CallStatusPP calls result(self, const void*, void*).
func CallStatusPP(obj unsafe.Pointer, m Method, a, b unsafe.Pointer) errors.Result {
	return errors.Result(C.sb_call_status_pp(Slot(obj, m), obj, a, b))
}

// CallStatusI32 calls result(self, int32_t).
func CallStatusI32(obj unsafe.Pointer, m Method, a int32) errors.Result {
	return errors.Result(C.sb_call_status_i32(Slot(obj, m), obj, C.int32_t(a)))
}

// CallVoidI32P calls void(self, int32_t, const void*).
func CallVoidI32P(obj unsafe.Pointer, m Method, a int32, b unsafe.Pointer) {
	C.sb_call_void_i32p(Slot(obj, m), obj, C.int32_t(a), b)
}

// CallInt32P calls int32_t(self, const void*).
func CallInt32P(obj unsafe.Pointer, m Method, a unsafe.Pointer) int32 {
	return int32(C.sb_call_int32_p(Slot(obj, m), obj, a))
}

// CallPtrP calls void*(self, const void*).
func CallPtrP(obj unsafe.Pointer, m Method, a unsafe.Pointer) unsafe.Pointer {
	return C.sb_call_ptr_p(Slot(obj, m), obj, a)
}

// CastAs calls castAs on an ISlangCastable. The result carries no new
// reference.
func CastAs(obj unsafe.Pointer, m Method, iid IID) unsafe.Pointer {
	return CallPtrP(obj, m, iid.ptr())
}

// CallPtrPP calls void*(self, const void*, void*).
func CallPtrPP(obj unsafe.Pointer, m Method, a, b unsafe.Pointer) unsafe.Pointer {
	return C.sb_call_ptr_pp(Slot(obj, m), obj, a, b)
}

// CallPtrPPPP calls void*(self, const void*, const void*, const void*, void*).
func CallPtrPPPP(obj unsafe.Pointer, m Method, a, b, c, d unsafe.Pointer) unsafe.Pointer {
	return C.sb_call_ptr_pppp(Slot(obj, m), obj, a, b, c, d)
}

// CallStatusPIPP calls result(self, const void*, int64_t, void*, void*).
func CallStatusPIPP(obj unsafe.Pointer, m Method, a unsafe.Pointer, b int64, c, d unsafe.Pointer) errors.Result {
	return errors.Result(C.sb_call_status_pipp(Slot(obj, m), obj, a, C.int64_t(b), c, d))
}

// CallStatusPPPIP calls result(self, const void*, const void*, void*, int64_t, void*).
func CallStatusPPPIP(obj unsafe.Pointer, m Method, a, b, c unsafe.Pointer, d int64, e unsafe.Pointer) errors.Result {
	return errors.Result(C.sb_call_status_pppip(Slot(obj, m), obj, a, b, c, C.int64_t(d), e))
}

// CallPtrIP calls void*(self, int64_t, void*).
func CallPtrIP(obj unsafe.Pointer, m Method, a int64, b unsafe.Pointer) unsafe.Pointer {
	return C.sb_call_ptr_ip(Slot(obj, m), obj, C.int64_t(a), b)
}

// CallPtrI calls void*(self, int64_t).
func CallPtrI(obj unsafe.Pointer, m Method, a int64) unsafe.Pointer {
	return C.sb_call_ptr_i(Slot(obj, m), obj, C.int64_t(a))
}

// CallPtrI32 calls void*(self, int32_t).
func CallPtrI32(obj unsafe.Pointer, m Method, a int32) unsafe.Pointer {
	return C.sb_call_ptr_i32(Slot(obj, m), obj, C.int32_t(a))
}

// CallStatusIIPP calls result(self, int64_t, int64_t, void*, void*).
func CallStatusIIPP(obj unsafe.Pointer, m Method, a, b int64, c, d unsafe.Pointer) errors.Result {
	return errors.Result(C.sb_call_status_iipp(Slot(obj, m), obj, C.int64_t(a), C.int64_t(b), c, d))
}

// CallStatusIPP calls result(self, int64_t, void*, void*).
func CallStatusIPP(obj unsafe.Pointer, m Method, a int64, b, c unsafe.Pointer) errors.Result {
	return errors.Result(C.sb_call_status_ipp(Slot(obj, m), obj, C.int64_t(a), b, c))
}

// CallVoidIIP calls void(self, int64_t, int64_t, void*).
func CallVoidIIP(obj unsafe.Pointer, m Method, a, b int64, c unsafe.Pointer) {
	C.sb_call_void_iip(Slot(obj, m), obj, C.int64_t(a), C.int64_t(b), c)
}

// CallStatusPU32PP calls result(self, void*, uint32_t, const void*, void*).
func CallStatusPU32PP(obj unsafe.Pointer, m Method, a unsafe.Pointer, b uint32, c, d unsafe.Pointer) errors.Result {
	return errors.Result(C.sb_call_status_pupp(Slot(obj, m), obj, a, C.uint32_t(b), c, d))
}

// CallStatusI32P calls result(self, int32_t, void*).
func CallStatusI32P(obj unsafe.Pointer, m Method, a int32, b unsafe.Pointer) errors.Result {
	return errors.Result(C.sb_call_status_i32p(Slot(obj, m), obj, C.int32_t(a), b))
}

// CallStatusPI32PP calls result(self, const void*, int32_t, void*, void*).
func CallStatusPI32PP(obj unsafe.Pointer, m Method, a unsafe.Pointer, b int32, c, d unsafe.Pointer) errors.Result {
	return errors.Result(C.sb_call_status_pi32pp(Slot(obj, m), obj, a, C.int32_t(b), c, d))
}

// CallStatusU32U64U64B calls result(self, uint32_t, uint64_t, uint64_t, bool*)
// and returns the status with the boolean out parameter.
func CallStatusU32U64U64B(obj unsafe.Pointer, m Method, a uint32, b, c uint64) (bool, errors.Result) {
	var out C.bool
	r := C.sb_call_status_uuup(Slot(obj, m), obj, C.uint32_t(a), C.uint64_t(b), C.uint64_t(c), &out)
	return bool(out), errors.Result(r)
}

// CallBoolPP calls bool(self, const void*, const void*).
func CallBoolPP(obj unsafe.Pointer, m Method, a, b unsafe.Pointer) bool {
	return bool(C.sb_call_bool_pp(Slot(obj, m), obj, a, b))
}

// GoString copies a NUL-terminated C string. A nil pointer yields "".
func GoString(p unsafe.Pointer) string {
	if p == nil {
		return ""
	}
	return C.GoString((*C.char)(p))
}

// GoStringN copies n bytes starting at p as a string.
func GoStringN(p unsafe.Pointer, n int) string {
	if p == nil || n <= 0 {
		return ""
	}
	return C.GoStringN((*C.char)(p), C.int(n))
}

// GoBytes copies n bytes starting at p.
func GoBytes(p unsafe.Pointer, n int) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	return C.GoBytes(p, C.int(n))
}
