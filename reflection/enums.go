package reflection

import "strings"

// Stage is a shader pipeline stage.
type Stage uint32

const (
	StageNone Stage = iota
	StageVertex
	StageHull
	StageDomain
	StageGeometry
	StageFragment
	StageCompute
	StageRayGeneration
	StageIntersection
	StageAnyHit
	StageClosestHit
	StageMiss
	StageCallable
	StageMesh
	StageAmplification
)

var stageNames = []string{
	"none", "vertex", "hull", "domain", "geometry", "fragment", "compute",
	"raygeneration", "intersection", "anyhit", "closesthit", "miss",
	"callable", "mesh", "amplification",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// ParseStage returns the stage with the given name. "pixel" is accepted
// for fragment.
func ParseStage(name string) (Stage, bool) {
	name = strings.ToLower(name)
	if name == "pixel" {
		return StageFragment, true
	}
	for i, n := range stageNames {
		if n == name {
			return Stage(i), true
		}
	}
	return StageNone, false
}

// ParameterCategory is a kind of binding resource consumed by a parameter.
type ParameterCategory uint32

const (
	CategoryNone ParameterCategory = iota
	CategoryMixed
	CategoryConstantBuffer
	CategoryShaderResource
	CategoryUnorderedAccess
	CategoryVaryingInput
	CategoryVaryingOutput
	CategorySamplerState
	CategoryUniform
	CategoryDescriptorTableSlot
	CategorySpecializationConstant
	CategoryPushConstantBuffer
	CategoryRegisterSpace
	CategoryGeneric
	CategoryRayPayload
	CategoryHitAttributes
	CategoryCallablePayload
	CategoryShaderRecord
	CategoryExistentialTypeParam
	CategoryExistentialObjectParam
	CategorySubElementRegisterSpace
	CategorySubpass
	CategoryMetalArgumentBufferElement
	CategoryMetalAttribute
	CategoryMetalPayload
)

var categoryNames = []string{
	"none", "mixed", "constant-buffer", "shader-resource", "unordered-access",
	"varying-input", "varying-output", "sampler-state", "uniform",
	"descriptor-table-slot", "specialization-constant", "push-constant-buffer",
	"register-space", "generic", "ray-payload", "hit-attributes",
	"callable-payload", "shader-record", "existential-type-param",
	"existential-object-param", "sub-element-register-space", "subpass",
	"metal-argument-buffer-element", "metal-attribute", "metal-payload",
}

func (c ParameterCategory) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// TypeKind classifies a reflected type.
type TypeKind uint32

const (
	KindNone TypeKind = iota
	KindStruct
	KindArray
	KindMatrix
	KindVector
	KindScalar
	KindConstantBuffer
	KindResource
	KindSamplerState
	KindTextureBuffer
	KindShaderStorageBuffer
	KindParameterBlock
	KindGenericTypeParameter
	KindInterface
	KindOutputStream
	KindMeshOutput
	KindSpecialized
	KindFeedback
	KindPointer
	KindDynamicResource
)

var typeKindNames = []string{
	"none", "struct", "array", "matrix", "vector", "scalar",
	"constant-buffer", "resource", "sampler-state", "texture-buffer",
	"shader-storage-buffer", "parameter-block", "generic-type-parameter",
	"interface", "output-stream", "mesh-output", "specialized", "feedback",
	"pointer", "dynamic-resource",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return "unknown"
}

// LayoutRules selects the rules used to compute a type layout.
type LayoutRules uint32

const (
	LayoutRulesDefault LayoutRules = iota
	LayoutRulesMetalArgumentBufferTier2
)

// DeclKind classifies a reflected declaration.
type DeclKind uint32

const (
	DeclUnsupported DeclKind = iota
	DeclStruct
	DeclFunc
	DeclModule
	DeclGeneric
	DeclVariable
	DeclNamespace
)

var declKindNames = []string{"unsupported", "struct", "func", "module", "generic", "variable", "namespace"}

func (k DeclKind) String() string {
	if int(k) < len(declKindNames) {
		return declKindNames[k]
	}
	return "unknown"
}
