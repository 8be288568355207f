package slang

import (
	"github.com/wippyai/slang-bridge/internal/native"
)

// Session flags.
const (
	SessionFlagNone uint32 = 0
)

// Target flags.
const (
	TargetFlagParameterBlocksUseRegisterSpaces uint32 = 1 << 4
	TargetFlagGenerateWholeProgram             uint32 = 1 << 8
	TargetFlagDumpIR                           uint32 = 1 << 9
	TargetFlagGenerateSPIRVDirectly            uint32 = 1 << 10
)

// TargetDesc describes one code generation target of a session.
type TargetDesc struct {
	Options                     *CompilerOptions
	Format                      CompileTarget
	Profile                     ProfileID
	Flags                       uint32
	FloatingPointMode           FloatingPointMode
	LineDirectiveMode           LineDirectiveMode
	ForceGLSLScalarBufferLayout bool
}

// NewTargetDesc returns a target descriptor for format. Every other field
// is zero.
func NewTargetDesc(format CompileTarget) *TargetDesc {
	return &TargetDesc{Format: format}
}

// WithProfile sets the target profile, such as one returned by FindProfile.
func (t *TargetDesc) WithProfile(p ProfileID) *TargetDesc {
	t.Profile = p
	return t
}

// WithFlags sets the target flags.
func (t *TargetDesc) WithFlags(flags uint32) *TargetDesc {
	t.Flags = flags
	return t
}

// WithFloatingPointMode sets the floating point mode for generated code.
func (t *TargetDesc) WithFloatingPointMode(m FloatingPointMode) *TargetDesc {
	t.FloatingPointMode = m
	return t
}

// WithLineDirectiveMode sets how #line directives are emitted.
func (t *TargetDesc) WithLineDirectiveMode(m LineDirectiveMode) *TargetDesc {
	t.LineDirectiveMode = m
	return t
}

// WithForceGLSLScalarBufferLayout forces scalar layout for GLSL buffers.
func (t *TargetDesc) WithForceGLSLScalarBufferLayout(v bool) *TargetDesc {
	t.ForceGLSLScalarBufferLayout = v
	return t
}

// WithOptions sets compiler options that apply to this target only.
func (t *TargetDesc) WithOptions(o *CompilerOptions) *TargetDesc {
	t.Options = o
	return t
}

func (t *TargetDesc) native() native.TargetDesc {
	return native.TargetDesc{
		Options:                     t.Options.native(),
		Format:                      int32(t.Format),
		Profile:                     uint32(t.Profile),
		Flags:                       t.Flags,
		FloatingPointMode:           int32(t.FloatingPointMode),
		LineDirectiveMode:           int32(t.LineDirectiveMode),
		ForceGLSLScalarBufferLayout: t.ForceGLSLScalarBufferLayout,
	}
}

// Macro is a preprocessor definition.
type Macro struct {
	Name  string
	Value string
}

// SessionDesc describes a session. The descriptor is copied into native
// memory for the duration of CreateSession only.
type SessionDesc struct {
	FileSystem              FileSystem
	Options                 *CompilerOptions
	Targets                 []*TargetDesc
	SearchPaths             []string
	Macros                  []Macro
	Flags                   uint32
	DefaultMatrixLayoutMode MatrixLayoutMode
	EnableEffectAnnotations bool
	AllowGLSLSyntax         bool
	SkipSPIRVValidation     bool
}

// NewSessionDesc returns an empty session descriptor.
func NewSessionDesc() *SessionDesc {
	return &SessionDesc{}
}

// WithTargets appends targets. Target indices follow the order of appends.
func (d *SessionDesc) WithTargets(targets ...*TargetDesc) *SessionDesc {
	d.Targets = append(d.Targets, targets...)
	return d
}

// WithSearchPaths appends module search paths.
func (d *SessionDesc) WithSearchPaths(paths ...string) *SessionDesc {
	d.SearchPaths = append(d.SearchPaths, paths...)
	return d
}

// WithMacro appends a preprocessor definition.
func (d *SessionDesc) WithMacro(name, value string) *SessionDesc {
	d.Macros = append(d.Macros, Macro{Name: name, Value: value})
	return d
}

// WithOptions sets compiler options that apply to every target.
func (d *SessionDesc) WithOptions(o *CompilerOptions) *SessionDesc {
	d.Options = o
	return d
}

// WithFileSystem sets the file system used to load sources. Nil keeps the
// compiler default.
func (d *SessionDesc) WithFileSystem(fs FileSystem) *SessionDesc {
	d.FileSystem = fs
	return d
}

// WithFlags sets the session flags.
func (d *SessionDesc) WithFlags(flags uint32) *SessionDesc {
	d.Flags = flags
	return d
}

// WithDefaultMatrixLayoutMode sets the matrix layout used when source does not specify one.
func (d *SessionDesc) WithDefaultMatrixLayoutMode(m MatrixLayoutMode) *SessionDesc {
	d.DefaultMatrixLayoutMode = m
	return d
}

// WithEffectAnnotations enables parsing of effect annotations.
func (d *SessionDesc) WithEffectAnnotations(v bool) *SessionDesc {
	d.EnableEffectAnnotations = v
	return d
}

// WithGLSLSyntax allows GLSL syntax in source.
func (d *SessionDesc) WithGLSLSyntax(v bool) *SessionDesc {
	d.AllowGLSLSyntax = v
	return d
}

// WithSkipSPIRVValidation disables validation of generated SPIR-V.
func (d *SessionDesc) WithSkipSPIRVValidation(v bool) *SessionDesc {
	d.SkipSPIRVValidation = v
	return d
}

// native converts d, leaving FileSystem for the caller to fill in.
func (d *SessionDesc) native() native.SessionDesc {
	out := native.SessionDesc{
		SearchPaths:             d.SearchPaths,
		Options:                 d.Options.native(),
		Flags:                   d.Flags,
		DefaultMatrixLayoutMode: int32(d.DefaultMatrixLayoutMode),
		EnableEffectAnnotations: d.EnableEffectAnnotations,
		AllowGLSLSyntax:         d.AllowGLSLSyntax,
		SkipSPIRVValidation:     d.SkipSPIRVValidation,
	}
	for _, t := range d.Targets {
		if t != nil {
			out.Targets = append(out.Targets, t.native())
		}
	}
	for _, m := range d.Macros {
		out.Macros = append(out.Macros, native.Macro{Name: m.Name, Value: m.Value})
	}
	return out
}
