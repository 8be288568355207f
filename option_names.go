package slang

// CompilerOptionName identifies a compiler option. Values follow the
// native enumeration and are append-only.
type CompilerOptionName int32

const (
	OptionMacroDefine CompilerOptionName = iota
	OptionDepFile
	OptionEntryPointName
	OptionSpecialize
	OptionHelp
	OptionHelpStyle
	OptionInclude
	OptionLanguage
	OptionMatrixLayoutColumn
	OptionMatrixLayoutRow
	OptionZeroInitialize
	OptionIgnoreCapabilities
	OptionRestrictiveCapabilityCheck
	OptionModuleName
	OptionOutput
	OptionProfile
	OptionStage
	OptionTarget
	OptionVersion
	OptionWarningsAsErrors
	OptionDisableWarnings
	OptionEnableWarning
	OptionDisableWarning
	OptionDumpWarningDiagnostics
	OptionInputFilesRemain
	OptionEmitIR
	OptionReportDownstreamTime
	OptionReportPerfBenchmark
	OptionReportCheckpointIntermediates
	OptionSkipSPIRVValidation
	OptionSourceEmbedStyle
	OptionSourceEmbedName
	OptionSourceEmbedLanguage
	OptionDisableShortCircuit
	OptionMinimumSlangOptimization
	OptionDisableNonEssentialValidations
	OptionDisableSourceMap
	OptionUnscopedEnum
	OptionPreserveParameters

	// Target

	OptionCapability
	OptionDefaultImageFormatUnknown
	OptionDisableDynamicDispatch
	OptionDisableSpecialization
	OptionFloatingPointMode
	OptionDebugInformation
	OptionLineDirectiveMode
	OptionOptimization
	OptionObfuscate
	OptionVulkanBindShift
	OptionVulkanBindGlobals
	OptionVulkanInvertY
	OptionVulkanUseDxPositionW
	OptionVulkanUseEntryPointName
	OptionVulkanUseGLLayout
	OptionVulkanEmitReflection
	OptionGLSLForceScalarLayout
	OptionEnableEffectAnnotations
	OptionEmitSpirvViaGLSL
	OptionEmitSpirvDirectly
	OptionSPIRVCoreGrammarJSON
	OptionIncompleteLibrary

	// Downstream

	OptionCompilerPath
	OptionDefaultDownstreamCompiler
	OptionDownstreamArgs
	OptionPassThrough

	// Repro

	OptionDumpRepro
	OptionDumpReproOnError
	OptionExtractRepro
	OptionLoadRepro
	OptionLoadReproDirectory
	OptionReproFallbackDirectory

	// Debugging

	OptionDumpAst
	OptionDumpIntermediatePrefix
	OptionDumpIntermediates
	OptionDumpIR
	OptionDumpIRIds
	OptionPreprocessorOutput
	OptionOutputIncludes
	OptionReproFileSystem
	OptionSerialIR
	OptionSkipCodeGen
	OptionValidateIR
	OptionVerbosePaths
	OptionVerifyDebugSerialIR
	OptionNoCodeGen

	// Experimental

	OptionFileSystem
	OptionHeterogeneous
	OptionNoMangle
	OptionNoHLSLBinding
	OptionNoHLSLPackConstantBufferElements
	OptionValidateUniformity
	OptionAllowGLSL
	OptionEnableExperimentalPasses

	// Internal

	OptionArchiveType
	OptionCompileCoreModule
	OptionDoc
	OptionIRCompression
	OptionLoadCoreModule
	OptionReferenceModule
	OptionSaveCoreModule
	OptionSaveCoreModuleBinSource
	OptionTrackLiveness
	OptionLoopInversion
)
