package config

import (
	"fmt"

	slang "github.com/wippyai/slang-bridge"
	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/reflection"
)

// Resolver answers the name lookups a configuration needs. A
// *slang.GlobalSession is a Resolver.
type Resolver interface {
	FindProfile(name string) slang.ProfileID
	FindCapability(name string) slang.CapabilityID
	RequireVersion(min string) error
}

var (
	optimizationLevels = map[string]slang.OptimizationLevel{
		"none":    slang.OptimizationNone,
		"default": slang.OptimizationDefault,
		"high":    slang.OptimizationHigh,
		"maximal": slang.OptimizationMaximal,
	}
	debugInfoLevels = map[string]slang.DebugInfoLevel{
		"none":     slang.DebugInfoNone,
		"minimal":  slang.DebugInfoMinimal,
		"standard": slang.DebugInfoStandard,
		"maximal":  slang.DebugInfoMaximal,
	}
	floatingPointModes = map[string]slang.FloatingPointMode{
		"default": slang.FloatingPointDefault,
		"fast":    slang.FloatingPointFast,
		"precise": slang.FloatingPointPrecise,
	}
	lineDirectiveModes = map[string]slang.LineDirectiveMode{
		"default":    slang.LineDirectiveDefault,
		"none":       slang.LineDirectiveNone,
		"standard":   slang.LineDirectiveStandard,
		"glsl":       slang.LineDirectiveGLSL,
		"source-map": slang.LineDirectiveSourceMap,
	}
	matrixLayouts = map[string]slang.MatrixLayoutMode{
		"":       slang.MatrixLayoutUnknown,
		"row":    slang.MatrixLayoutRowMajor,
		"column": slang.MatrixLayoutColumnMajor,
	}
)

// SessionDesc builds a session descriptor from c. Names are resolved with r,
// which also checks MinVersion.
func (c *Config) SessionDesc(r Resolver) (*slang.SessionDesc, error) {
	if c.MinVersion != "" {
		if err := r.RequireVersion(c.MinVersion); err != nil {
			return nil, err
		}
	}

	desc := slang.NewSessionDesc().
		WithSearchPaths(c.SearchPaths...).
		WithDefaultMatrixLayoutMode(matrixLayouts[c.MatrixLayout])

	for _, name := range c.MacroNames() {
		desc.WithMacro(name, c.Macros[name])
	}

	opts, err := c.Options.Compiler(r)
	if err != nil {
		return nil, err
	}
	if opts.Len() > 0 {
		desc.WithOptions(opts)
	}

	for i, t := range c.Targets {
		td, err := t.Desc(r)
		if err != nil {
			return nil, fieldError(fmt.Sprintf("targets[%d]", i), err)
		}
		desc.WithTargets(td)
	}
	return desc, nil
}

// Desc builds a target descriptor.
func (t Target) Desc(r Resolver) (*slang.TargetDesc, error) {
	format, ok := slang.ParseCompileTarget(t.Format)
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseConfig, "unknown target format "+t.Format)
	}
	td := slang.NewTargetDesc(format).
		WithFloatingPointMode(floatingPointModes[t.FloatingPoint]).
		WithLineDirectiveMode(lineDirectiveModes[t.LineDirectives]).
		WithForceGLSLScalarBufferLayout(t.ForceScalarLayout)

	if t.Profile != "" {
		p := r.FindProfile(t.Profile)
		if p == slang.ProfileUnknown {
			return nil, errors.NotFound(errors.PhaseConfig, "profile", t.Profile)
		}
		td.WithProfile(p)
	}
	if t.Options != nil {
		opts, err := t.Options.Compiler(r)
		if err != nil {
			return nil, err
		}
		td.WithOptions(opts)
	}
	return td, nil
}

// Compiler converts o to compiler options. Unset fields add no entries.
func (o Options) Compiler(r Resolver) (*slang.CompilerOptions, error) {
	opts := slang.NewCompilerOptions()
	if o.Optimization != "" {
		opts.Optimization(optimizationLevels[o.Optimization])
	}
	if o.DebugInfo != "" {
		opts.DebugInformation(debugInfoLevels[o.DebugInfo])
	}
	if o.WarningsAsErrors != "" {
		opts.WarningsAsErrors(o.WarningsAsErrors)
	}
	for _, w := range o.DisableWarnings {
		opts.DisableWarning(w)
	}
	for _, w := range o.EnableWarnings {
		opts.EnableWarning(w)
	}
	for _, name := range o.Capabilities {
		c := r.FindCapability(name)
		if c == slang.CapabilityUnknown {
			return nil, errors.NotFound(errors.PhaseConfig, "capability", name)
		}
		opts.Capability(c)
	}
	if o.MatrixLayoutRow {
		opts.MatrixLayoutRow(true)
	}
	if o.MatrixLayoutColumn {
		opts.MatrixLayoutColumn(true)
	}
	if o.SkipSPIRVValidation {
		opts.SkipSPIRVValidation(true)
	}
	if o.EmitSpirvDirectly {
		opts.EmitSpirvDirectly(true)
	}
	if o.VulkanUseEntryPointName {
		opts.VulkanUseEntryPointName(true)
	}
	if o.GLSLForceScalarLayout {
		opts.GLSLForceScalarLayout(true)
	}
	if o.Obfuscate {
		opts.Obfuscate(true)
	}
	if o.ValidateUniformity {
		opts.ValidateUniformity(true)
	}
	return opts, nil
}

// ResolveStage returns the entry point's stage, StageNone when unset.
func (e EntryPoint) ResolveStage() (slang.Stage, error) {
	if e.Stage == "" {
		return slang.StageNone, nil
	}
	s, ok := reflection.ParseStage(e.Stage)
	if !ok {
		return slang.StageNone, errors.InvalidInput(errors.PhaseConfig, "unknown stage "+e.Stage)
	}
	return s, nil
}

func fieldError(field string, err error) error {
	return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
		Path(field).
		Code(errors.StatusOf(err)).
		Cause(err).
		Build()
}
