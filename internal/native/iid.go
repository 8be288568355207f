package native

/*
#include "bridge.h"
*/
import "C"

import "unsafe"

// IID selects one of the interface identifiers known to the bridge.
type IID int

const (
	IIDUnknown         IID = C.SB_IID_UNKNOWN
	IIDBlob            IID = C.SB_IID_BLOB
	IIDCastable        IID = C.SB_IID_CASTABLE
	IIDFileSystem      IID = C.SB_IID_FILE_SYSTEM
	IIDGlobalSession   IID = C.SB_IID_GLOBAL_SESSION
	IIDSession         IID = C.SB_IID_SESSION
	IIDComponentType   IID = C.SB_IID_COMPONENT_TYPE
	IIDEntryPoint      IID = C.SB_IID_ENTRY_POINT
	IIDTypeConformance IID = C.SB_IID_TYPE_CONFORMANCE
	IIDModule          IID = C.SB_IID_MODULE
	IIDMetadata        IID = C.SB_IID_METADATA
)

var iidNames = map[IID]string{
	IIDUnknown:         "ISlangUnknown",
	IIDBlob:            "ISlangBlob",
	IIDCastable:        "ISlangCastable",
	IIDFileSystem:      "ISlangFileSystem",
	IIDGlobalSession:   "IGlobalSession",
	IIDSession:         "ISession",
	IIDComponentType:   "IComponentType",
	IIDEntryPoint:      "IEntryPoint",
	IIDTypeConformance: "ITypeConformance",
	IIDModule:          "IModule",
	IIDMetadata:        "IMetadata",
}

func (i IID) String() string {
	if name, ok := iidNames[i]; ok {
		return name
	}
	return "unknown interface"
}

// UUID is the in-memory form of an interface identifier.
type UUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// UUID returns the identifier's bytes.
func (i IID) UUID() UUID {
	p := C.sb_iid(C.int(i))
	if p == nil {
		return UUID{}
	}
	return *(*UUID)(unsafe.Pointer(p))
}

func (i IID) ptr() unsafe.Pointer {
	return unsafe.Pointer(C.sb_iid(C.int(i)))
}
