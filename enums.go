package slang

import (
	"strings"

	"github.com/wippyai/slang-bridge/reflection"
)

// CompileTarget is an output format.
type CompileTarget int32

const (
	TargetUnknown CompileTarget = iota
	TargetNone
	TargetGLSL
	targetGLSLVulkanDeprecated
	targetGLSLVulkanOneDescDeprecated
	TargetHLSL
	TargetSPIRV
	TargetSPIRVAsm
	TargetDXBC
	TargetDXBCAsm
	TargetDXIL
	TargetDXILAsm
	TargetCSource
	TargetCPPSource
	TargetHostExecutable
	TargetShaderSharedLibrary
	TargetShaderHostCallable
	TargetCUDASource
	TargetPTX
	TargetCUDAObjectCode
	TargetObjectCode
	TargetHostCPPSource
	TargetHostHostCallable
	TargetCPPPytorchBinding
	TargetMetal
	TargetMetalLib
	TargetMetalLibAsm
	TargetHostSharedLibrary
	TargetWGSL
	TargetWGSLSPIRVAsm
	TargetWGSLSPIRV
)

var targetNames = map[CompileTarget]string{
	TargetUnknown:             "unknown",
	TargetNone:                "none",
	TargetGLSL:                "glsl",
	TargetHLSL:                "hlsl",
	TargetSPIRV:               "spirv",
	TargetSPIRVAsm:            "spirv-asm",
	TargetDXBC:                "dxbc",
	TargetDXBCAsm:             "dxbc-asm",
	TargetDXIL:                "dxil",
	TargetDXILAsm:             "dxil-asm",
	TargetCSource:             "c",
	TargetCPPSource:           "cpp",
	TargetHostExecutable:      "exe",
	TargetShaderSharedLibrary: "shader-sharedlib",
	TargetShaderHostCallable:  "callable",
	TargetCUDASource:          "cuda",
	TargetPTX:                 "ptx",
	TargetCUDAObjectCode:      "cuobj",
	TargetObjectCode:          "object-code",
	TargetHostCPPSource:       "host-cpp",
	TargetHostHostCallable:    "host-callable",
	TargetCPPPytorchBinding:   "torch-binding",
	TargetMetal:               "metal",
	TargetMetalLib:            "metallib",
	TargetMetalLibAsm:         "metallib-asm",
	TargetHostSharedLibrary:   "sharedlib",
	TargetWGSL:                "wgsl",
	TargetWGSLSPIRVAsm:        "wgsl-spirv-asm",
	TargetWGSLSPIRV:           "wgsl-spirv",
}

func (t CompileTarget) String() string {
	if name, ok := targetNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseCompileTarget returns the target with the given name, as accepted
// by the command line compiler.
func ParseCompileTarget(name string) (CompileTarget, bool) {
	name = strings.ToLower(name)
	for t, n := range targetNames {
		if n == name && t != TargetUnknown {
			return t, true
		}
	}
	return TargetUnknown, false
}

// SourceLanguage identifies the language of a source file.
type SourceLanguage int32

const (
	LanguageUnknown SourceLanguage = iota
	LanguageSlang
	LanguageHLSL
	LanguageGLSL
	LanguageC
	LanguageCPP
	LanguageCUDA
	LanguageSPIRV
	LanguageMetal
	LanguageWGSL
)

// OptimizationLevel controls how aggressively code is optimized.
type OptimizationLevel int32

const (
	OptimizationNone OptimizationLevel = iota
	OptimizationDefault
	OptimizationHigh
	OptimizationMaximal
)

// DebugInfoLevel controls how much debug information is emitted.
type DebugInfoLevel int32

const (
	DebugInfoNone DebugInfoLevel = iota
	DebugInfoMinimal
	DebugInfoStandard
	DebugInfoMaximal
)

// FloatingPointMode controls floating point code generation.
type FloatingPointMode int32

const (
	FloatingPointDefault FloatingPointMode = iota
	FloatingPointFast
	FloatingPointPrecise
)

// LineDirectiveMode controls #line emission in source targets.
type LineDirectiveMode int32

const (
	LineDirectiveDefault LineDirectiveMode = iota
	LineDirectiveNone
	LineDirectiveStandard
	LineDirectiveGLSL
	LineDirectiveSourceMap
)

// MatrixLayoutMode selects the default matrix storage order.
type MatrixLayoutMode int32

const (
	MatrixLayoutUnknown MatrixLayoutMode = iota
	MatrixLayoutRowMajor
	MatrixLayoutColumnMajor
)

// PassThrough identifies a downstream compiler.
type PassThrough int32

const (
	PassThroughNone PassThrough = iota
	PassThroughFXC
	PassThroughDXC
	PassThroughGLSLang
	PassThroughSPIRVDis
	PassThroughClang
	PassThroughVisualStudio
	PassThroughGCC
	PassThroughGenericCCPP
	PassThroughNVRTC
	PassThroughLLVM
	PassThroughSPIRVOpt
	PassThroughMetal
	PassThroughTint
	PassThroughSPIRVLink
)

// ProfileID identifies a target profile, as returned by FindProfile.
type ProfileID uint32

// ProfileUnknown is returned for unrecognized profile names.
const ProfileUnknown ProfileID = 0

// CapabilityID identifies a capability, as returned by FindCapability.
type CapabilityID int32

// CapabilityUnknown is returned for unrecognized capability names.
const CapabilityUnknown CapabilityID = 0

// Stage is a shader pipeline stage.
type Stage = reflection.Stage

const (
	StageNone          = reflection.StageNone
	StageVertex        = reflection.StageVertex
	StageHull          = reflection.StageHull
	StageDomain        = reflection.StageDomain
	StageGeometry      = reflection.StageGeometry
	StageFragment      = reflection.StageFragment
	StageCompute       = reflection.StageCompute
	StageRayGeneration = reflection.StageRayGeneration
	StageIntersection  = reflection.StageIntersection
	StageAnyHit        = reflection.StageAnyHit
	StageClosestHit    = reflection.StageClosestHit
	StageMiss          = reflection.StageMiss
	StageCallable      = reflection.StageCallable
	StageMesh          = reflection.StageMesh
	StageAmplification = reflection.StageAmplification
)

// ParameterCategory is a kind of binding resource.
type ParameterCategory = reflection.ParameterCategory
