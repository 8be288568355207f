package reflection

import (
	"unsafe"

	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/internal/native"
)

// HashString computes the string hash the compiler uses for getStringHash.
// Bytes are treated as signed, matching the native implementation.
func HashString(s string) uint32 {
	var hash uint32
	for i := 0; i < len(s); i++ {
		hash = uint32(int32(int8(s[i]))) + (hash << 6) + (hash << 16) - hash
	}
	return hash
}

// ComputeStringHash calls the native hash function.
func ComputeStringHash(s string) (uint32, error) {
	lib, err := native.Default()
	if err != nil {
		return 0, err
	}
	f, err := lib.Sym("spComputeStringHash")
	if err != nil {
		return 0, errors.Wrap(errors.PhaseReflect, errors.KindSymbol, err, "string hash unavailable")
	}

	var a native.Arena
	defer a.Free()
	var p unsafe.Pointer
	if len(s) > 0 {
		p = a.CString(s)
	}
	return native.FCallU32U64(f, p, uint64(len(s))), nil
}
