package slang

import "github.com/wippyai/slang-bridge/internal/native"

// OptionValueKind tags the payload of a compiler option.
type OptionValueKind int32

const (
	OptionValueInt    OptionValueKind = OptionValueKind(native.OptionKindInt)
	OptionValueString OptionValueKind = OptionValueKind(native.OptionKindString)
)

// CompilerOption is one entry of a CompilerOptions list.
type CompilerOption struct {
	String0 string
	String1 string
	Name    CompilerOptionName
	Kind    OptionValueKind
	Int0    int32
	Int1    int32
}

// CompilerOptions is an ordered list of compiler options. Every setter
// appends exactly one entry and returns the receiver for chaining. Integer
// options never carry strings and string options never carry integers.
type CompilerOptions struct {
	entries []CompilerOption
}

// NewCompilerOptions returns an empty option list.
func NewCompilerOptions() *CompilerOptions {
	return &CompilerOptions{}
}

// Entries returns a copy of the accumulated options.
func (o *CompilerOptions) Entries() []CompilerOption {
	if o == nil {
		return nil
	}
	out := make([]CompilerOption, len(o.entries))
	copy(out, o.entries)
	return out
}

// Len returns the number of entries.
func (o *CompilerOptions) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}

func (o *CompilerOptions) pushInts(name CompilerOptionName, i0, i1 int32) *CompilerOptions {
	o.entries = append(o.entries, CompilerOption{Name: name, Kind: OptionValueInt, Int0: i0, Int1: i1})
	return o
}

func (o *CompilerOptions) pushStrings(name CompilerOptionName, s0, s1 string) *CompilerOptions {
	o.entries = append(o.entries, CompilerOption{Name: name, Kind: OptionValueString, String0: s0, String1: s1})
	return o
}

func (o *CompilerOptions) pushBool(name CompilerOptionName, enable bool) *CompilerOptions {
	var v int32
	if enable {
		v = 1
	}
	return o.pushInts(name, v, 0)
}

// Int appends an integer option by name.
func (o *CompilerOptions) Int(name CompilerOptionName, i0, i1 int32) *CompilerOptions {
	return o.pushInts(name, i0, i1)
}

// String appends a string option by name.
func (o *CompilerOptions) String(name CompilerOptionName, s0, s1 string) *CompilerOptions {
	return o.pushStrings(name, s0, s1)
}

// General

func (o *CompilerOptions) MacroDefine(key, value string) *CompilerOptions {
	return o.pushStrings(OptionMacroDefine, key, value)
}

func (o *CompilerOptions) Include(path string) *CompilerOptions {
	return o.pushStrings(OptionInclude, path, "")
}

func (o *CompilerOptions) Language(language SourceLanguage) *CompilerOptions {
	return o.pushInts(OptionLanguage, int32(language), 0)
}

func (o *CompilerOptions) MatrixLayoutColumn(enable bool) *CompilerOptions {
	return o.pushBool(OptionMatrixLayoutColumn, enable)
}

func (o *CompilerOptions) MatrixLayoutRow(enable bool) *CompilerOptions {
	return o.pushBool(OptionMatrixLayoutRow, enable)
}

func (o *CompilerOptions) ZeroInitialize(enable bool) *CompilerOptions {
	return o.pushBool(OptionZeroInitialize, enable)
}

func (o *CompilerOptions) IgnoreCapabilities(enable bool) *CompilerOptions {
	return o.pushBool(OptionIgnoreCapabilities, enable)
}

func (o *CompilerOptions) ModuleName(name string) *CompilerOptions {
	return o.pushStrings(OptionModuleName, name, "")
}

func (o *CompilerOptions) Profile(profile ProfileID) *CompilerOptions {
	return o.pushInts(OptionProfile, int32(profile), 0)
}

func (o *CompilerOptions) Stage(stage Stage) *CompilerOptions {
	return o.pushInts(OptionStage, int32(stage), 0)
}

func (o *CompilerOptions) Target(target CompileTarget) *CompilerOptions {
	return o.pushInts(OptionTarget, int32(target), 0)
}

func (o *CompilerOptions) WarningsAsErrors(warningCodes string) *CompilerOptions {
	return o.pushStrings(OptionWarningsAsErrors, warningCodes, "")
}

func (o *CompilerOptions) DisableWarnings(warningCodes string) *CompilerOptions {
	return o.pushStrings(OptionDisableWarnings, warningCodes, "")
}

func (o *CompilerOptions) EnableWarning(warningCode string) *CompilerOptions {
	return o.pushStrings(OptionEnableWarning, warningCode, "")
}

func (o *CompilerOptions) DisableWarning(warningCode string) *CompilerOptions {
	return o.pushStrings(OptionDisableWarning, warningCode, "")
}

func (o *CompilerOptions) ReportDownstreamTime(enable bool) *CompilerOptions {
	return o.pushBool(OptionReportDownstreamTime, enable)
}

func (o *CompilerOptions) ReportPerfBenchmark(enable bool) *CompilerOptions {
	return o.pushBool(OptionReportPerfBenchmark, enable)
}

func (o *CompilerOptions) SkipSPIRVValidation(enable bool) *CompilerOptions {
	return o.pushBool(OptionSkipSPIRVValidation, enable)
}

func (o *CompilerOptions) MinimumSlangOptimization(enable bool) *CompilerOptions {
	return o.pushBool(OptionMinimumSlangOptimization, enable)
}

func (o *CompilerOptions) PreserveParameters(enable bool) *CompilerOptions {
	return o.pushBool(OptionPreserveParameters, enable)
}

// Target

func (o *CompilerOptions) Capability(capability CapabilityID) *CompilerOptions {
	return o.pushInts(OptionCapability, int32(capability), 0)
}

func (o *CompilerOptions) DefaultImageFormatUnknown(enable bool) *CompilerOptions {
	return o.pushBool(OptionDefaultImageFormatUnknown, enable)
}

func (o *CompilerOptions) DisableDynamicDispatch(enable bool) *CompilerOptions {
	return o.pushBool(OptionDisableDynamicDispatch, enable)
}

func (o *CompilerOptions) DisableSpecialization(enable bool) *CompilerOptions {
	return o.pushBool(OptionDisableSpecialization, enable)
}

func (o *CompilerOptions) FloatingPointMode(mode FloatingPointMode) *CompilerOptions {
	return o.pushInts(OptionFloatingPointMode, int32(mode), 0)
}

func (o *CompilerOptions) DebugInformation(level DebugInfoLevel) *CompilerOptions {
	return o.pushInts(OptionDebugInformation, int32(level), 0)
}

func (o *CompilerOptions) LineDirectiveMode(mode LineDirectiveMode) *CompilerOptions {
	return o.pushInts(OptionLineDirectiveMode, int32(mode), 0)
}

func (o *CompilerOptions) Optimization(level OptimizationLevel) *CompilerOptions {
	return o.pushInts(OptionOptimization, int32(level), 0)
}

func (o *CompilerOptions) Obfuscate(enable bool) *CompilerOptions {
	return o.pushBool(OptionObfuscate, enable)
}

func (o *CompilerOptions) VulkanInvertY(enable bool) *CompilerOptions {
	return o.pushBool(OptionVulkanInvertY, enable)
}

func (o *CompilerOptions) VulkanUseEntryPointName(enable bool) *CompilerOptions {
	return o.pushBool(OptionVulkanUseEntryPointName, enable)
}

func (o *CompilerOptions) VulkanUseGLLayout(enable bool) *CompilerOptions {
	return o.pushBool(OptionVulkanUseGLLayout, enable)
}

func (o *CompilerOptions) GLSLForceScalarLayout(enable bool) *CompilerOptions {
	return o.pushBool(OptionGLSLForceScalarLayout, enable)
}

func (o *CompilerOptions) EmitSpirvViaGLSL(enable bool) *CompilerOptions {
	return o.pushBool(OptionEmitSpirvViaGLSL, enable)
}

func (o *CompilerOptions) EmitSpirvDirectly(enable bool) *CompilerOptions {
	return o.pushBool(OptionEmitSpirvDirectly, enable)
}

func (o *CompilerOptions) IncompleteLibrary(enable bool) *CompilerOptions {
	return o.pushBool(OptionIncompleteLibrary, enable)
}

// Downstream

func (o *CompilerOptions) DownstreamArgs(compiler, args string) *CompilerOptions {
	return o.pushStrings(OptionDownstreamArgs, compiler, args)
}

// Debugging

func (o *CompilerOptions) DumpIntermediates(enable bool) *CompilerOptions {
	return o.pushBool(OptionDumpIntermediates, enable)
}

func (o *CompilerOptions) DumpIntermediatePrefix(prefix string) *CompilerOptions {
	return o.pushStrings(OptionDumpIntermediatePrefix, prefix, "")
}

func (o *CompilerOptions) ValidateIR(enable bool) *CompilerOptions {
	return o.pushBool(OptionValidateIR, enable)
}

func (o *CompilerOptions) VerbosePaths(enable bool) *CompilerOptions {
	return o.pushBool(OptionVerbosePaths, enable)
}

func (o *CompilerOptions) NoCodeGen(enable bool) *CompilerOptions {
	return o.pushBool(OptionNoCodeGen, enable)
}

// Experimental

func (o *CompilerOptions) NoMangle(enable bool) *CompilerOptions {
	return o.pushBool(OptionNoMangle, enable)
}

func (o *CompilerOptions) ValidateUniformity(enable bool) *CompilerOptions {
	return o.pushBool(OptionValidateUniformity, enable)
}

func (o *CompilerOptions) AllowGLSL(enable bool) *CompilerOptions {
	return o.pushBool(OptionAllowGLSL, enable)
}

func (o *CompilerOptions) native() []native.OptionEntry {
	if o == nil || len(o.entries) == 0 {
		return nil
	}
	out := make([]native.OptionEntry, len(o.entries))
	for i, e := range o.entries {
		out[i] = native.OptionEntry{
			Name:    int32(e.Name),
			Kind:    int32(e.Kind),
			Int0:    e.Int0,
			Int1:    e.Int1,
			String0: e.String0,
			String1: e.String1,
		}
	}
	return out
}
