package slang

import (
	"unsafe"

	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/internal/native"
)

// IMetadata slots.
const (
	slotMetadataIsParameterLocationUsed native.Method = 4
	slotMetadataGetDebugBuildIdentifier native.Method = 5
)

// Metadata describes generated code.
type Metadata struct {
	object
}

// MetadataFromRaw wraps p, taking ownership of one reference.
func MetadataFromRaw(p unsafe.Pointer) *Metadata {
	if p == nil {
		return nil
	}
	m := &Metadata{}
	m.init(p, "IMetadata")
	return m
}

// IsParameterLocationUsed reports whether the binding at space and
// register in category is used by the generated code. ok is false when the
// library could not answer.
func (m *Metadata) IsParameterLocationUsed(category ParameterCategory, space, register uint64) (used, ok bool) {
	self, err := m.base().self(errors.PhaseMetadata)
	if err != nil {
		return false, false
	}
	used, r := native.CallStatusU32U64U64B(self, slotMetadataIsParameterLocationUsed, uint32(category), space, register)
	if r.Failed() {
		return false, false
	}
	return used, true
}

// DebugBuildIdentifier returns the identifier tying the code to its
// separate debug information, or "".
func (m *Metadata) DebugBuildIdentifier() string {
	self, err := m.base().self(errors.PhaseMetadata)
	if err != nil {
		return ""
	}
	return native.GoString(native.CallPtr(self, slotMetadataGetDebugBuildIdentifier))
}
